// Package grid holds the finished glyph grid and per-render metadata.
package grid

import (
	"image/color"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Cell is one rendered glyph with an optional foreground color.
type Cell struct {
	Glyph    rune
	Color    color.NRGBA
	HasColor bool
}

// Grid is a fixed-size, row-major glyph grid. Row order is top-to-bottom,
// matching the source image.
type Grid struct {
	Columns, Rows int
	cells         []Cell
}

// New packs row-major cells into a grid. The cell count must match the
// dimensions; a mismatch is a bug in the caller, not a user error.
func New(cols, rows int, cells []Cell) *Grid {
	if len(cells) != cols*rows {
		panic("grid: cell count does not match dimensions")
	}
	return &Grid{Columns: cols, Rows: rows, cells: cells}
}

// Cell returns the cell at (col, row). No bounds checking.
func (g *Grid) Cell(col, row int) Cell {
	return g.cells[row*g.Columns+col]
}

// Row returns one row of cells. The slice aliases the grid; treat it as
// read-only.
func (g *Grid) Row(row int) []Cell {
	return g.cells[row*g.Columns : (row+1)*g.Columns]
}

// Line renders one row as a printable string of glyphs, colors stripped.
func (g *Grid) Line(row int) string {
	var b strings.Builder
	b.Grow(g.Columns)
	for _, c := range g.Row(row) {
		b.WriteRune(c.Glyph)
	}
	return b.String()
}

// Lines renders every row top-to-bottom.
func (g *Grid) Lines() []string {
	lines := make([]string, g.Rows)
	for r := 0; r < g.Rows; r++ {
		lines[r] = g.Line(r)
	}
	return lines
}

// LineWidth reports the terminal cell width of one row, accounting for
// wide runes in the ramp.
func (g *Grid) LineWidth(row int) int {
	return runewidth.StringWidth(g.Line(row))
}

// Output is one rendered frame plus its provenance.
type Output struct {
	Grid             *Grid
	SourceW, SourceH int
	Columns, Rows    int
	// Timestamp is the presentation time of this frame within an animation;
	// zero for still images.
	Timestamp time.Duration
}
