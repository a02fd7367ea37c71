// Package layout derives output glyph-grid dimensions from the source image
// shape, a sizing policy, and the assumed terminal cell aspect ratio.
package layout

import (
	"errors"
	"math"
)

// ErrInvalidLayout indicates a policy constructed with non-positive dimensions.
var ErrInvalidLayout = errors.New("layout: requested dimensions must be positive")

// DefaultCellAspect is the width/height ratio assumed for one terminal cell.
// Character cells are roughly twice as tall as they are wide.
const DefaultCellAspect = 0.5

type kind int

const (
	fixedColumns kind = iota
	fixedRows
	fixedDimensions
	fitWithin
)

// Policy selects how the target grid size is derived from the source.
type Policy struct {
	kind       kind
	cols, rows int
}

// FixedColumns pins the column count; rows follow the source aspect ratio.
func FixedColumns(n int) Policy { return Policy{kind: fixedColumns, cols: n} }

// FixedRows pins the row count; columns follow the source aspect ratio.
func FixedRows(n int) Policy { return Policy{kind: fixedRows, rows: n} }

// FixedDimensions pins both dimensions and accepts distortion.
func FixedDimensions(cols, rows int) Policy {
	return Policy{kind: fixedDimensions, cols: cols, rows: rows}
}

// FitWithin yields the largest aspect-preserving grid within the given bounds.
func FitWithin(maxCols, maxRows int) Policy {
	return Policy{kind: fitWithin, cols: maxCols, rows: maxRows}
}

// Resolve computes the target (columns, rows) for a source with the given
// width/height aspect ratio. Results are always at least 1x1; cellAspect
// corrects for non-square glyphs.
func (p Policy) Resolve(sourceAspect, cellAspect float64) (int, int, error) {
	if cellAspect <= 0 {
		cellAspect = DefaultCellAspect
	}

	switch p.kind {
	case fixedColumns:
		if p.cols <= 0 {
			return 0, 0, ErrInvalidLayout
		}
		rows := roundAtLeastOne(float64(p.cols) / sourceAspect * cellAspect)
		return p.cols, rows, nil

	case fixedRows:
		if p.rows <= 0 {
			return 0, 0, ErrInvalidLayout
		}
		cols := roundAtLeastOne(float64(p.rows) * sourceAspect / cellAspect)
		return cols, p.rows, nil

	case fixedDimensions:
		if p.cols <= 0 || p.rows <= 0 {
			return 0, 0, ErrInvalidLayout
		}
		return p.cols, p.rows, nil

	case fitWithin:
		if p.cols <= 0 || p.rows <= 0 {
			return 0, 0, ErrInvalidLayout
		}
		return p.fit(sourceAspect, cellAspect)
	}

	return 0, 0, ErrInvalidLayout
}

func (p Policy) fit(sourceAspect, cellAspect float64) (int, int, error) {
	maxCols, maxRows := p.cols, p.rows

	// Widest fit first, rounding down, then fall back to the row bound.
	cols := maxCols
	rows := floorAtLeastOne(float64(cols) / sourceAspect * cellAspect)
	if rows > maxRows {
		rows = maxRows
		cols = floorAtLeastOne(float64(rows) * sourceAspect / cellAspect)
		if cols > maxCols {
			cols = maxCols
		}
	}

	// Re-expand the dimension sitting further below its bound; flooring both
	// axes can otherwise waste nearly a full row or column.
	colSlack := float64(cols) / float64(maxCols)
	rowSlack := float64(rows) / float64(maxRows)
	if colSlack < rowSlack {
		c := roundAtLeastOne(float64(rows) * sourceAspect / cellAspect)
		if c > cols && c <= maxCols {
			cols = c
		}
	} else if rowSlack < colSlack {
		r := roundAtLeastOne(float64(cols) / sourceAspect * cellAspect)
		if r > rows && r <= maxRows {
			rows = r
		}
	}

	return cols, rows, nil
}

func roundAtLeastOne(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}

func floorAtLeastOne(v float64) int {
	n := int(math.Floor(v))
	if n < 1 {
		return 1
	}
	return n
}
