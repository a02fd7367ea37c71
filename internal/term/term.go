// Package term renders glyph grids as ANSI escape sequences for terminal
// display and colored text export.
package term

import (
	"strconv"
	"strings"

	"github.com/glyphcast/glyphcast/internal/grid"
	"github.com/glyphcast/glyphcast/internal/quant"
)

const reset = "\x1b[0m"

// Renderer emits grid rows with the escape dialect matching a color mode.
// The zero value renders plain glyphs.
type Renderer struct {
	Mode    quant.ColorMode
	Palette quant.Palette
}

// Frame renders the whole grid, rows joined by newlines. Each colored row
// ends with a reset so trailing terminal state never leaks.
func (r Renderer) Frame(g *grid.Grid) string {
	var b strings.Builder
	b.Grow(g.Columns * g.Rows * 2)
	for row := 0; row < g.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		r.writeRow(&b, g, row)
	}
	return b.String()
}

// Line renders a single row.
func (r Renderer) Line(g *grid.Grid, row int) string {
	var b strings.Builder
	r.writeRow(&b, g, row)
	return b.String()
}

func (r Renderer) writeRow(b *strings.Builder, g *grid.Grid, row int) {
	if r.Mode == quant.ModeMono {
		b.WriteString(g.Line(row))
		return
	}

	colored := false
	var prev string
	for _, c := range g.Row(row) {
		if !c.HasColor {
			if colored {
				b.WriteString(reset)
				colored = false
				prev = ""
			}
			b.WriteRune(c.Glyph)
			continue
		}
		esc := r.escape(c)
		if esc != prev {
			b.WriteString(esc)
			prev = esc
			colored = true
		}
		b.WriteRune(c.Glyph)
	}
	if colored {
		b.WriteString(reset)
	}
}

func (r Renderer) escape(c grid.Cell) string {
	if r.Mode == quant.ModePalette && len(r.Palette) > 0 {
		idx := r.Palette.NearestIndex(c.Color)
		return "\x1b[38;5;" + strconv.Itoa(idx) + "m"
	}
	return "\x1b[38;2;" + strconv.Itoa(int(c.Color.R)) + ";" +
		strconv.Itoa(int(c.Color.G)) + ";" + strconv.Itoa(int(c.Color.B)) + "m"
}
