package grid

import (
	"image/color"
	"testing"
)

func TestGridRowsAndLines(t *testing.T) {
	cells := []Cell{
		{Glyph: 'a'}, {Glyph: 'b'},
		{Glyph: 'c'}, {Glyph: 'd'},
		{Glyph: 'e'}, {Glyph: 'f'},
	}
	g := New(2, 3, cells)

	lines := g.Lines()
	want := []string{"ab", "cd", "ef"}
	for i, l := range want {
		if lines[i] != l {
			t.Errorf("row %d: expected %q, got %q", i, l, lines[i])
		}
	}

	if got := g.Cell(1, 2).Glyph; got != 'f' {
		t.Errorf("cell (1,2): expected 'f', got %q", got)
	}
}

func TestGridDimensionMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched cell count")
		}
	}()
	New(2, 2, make([]Cell, 3))
}

func TestLineWidthCountsWideRunes(t *testing.T) {
	g := New(2, 1, []Cell{{Glyph: '全'}, {Glyph: 'x'}})
	if w := g.LineWidth(0); w != 3 {
		t.Errorf("expected width 3, got %d", w)
	}
}

func TestRowAliasesCells(t *testing.T) {
	cells := []Cell{{Glyph: 'x', Color: color.NRGBA{R: 1}, HasColor: true}}
	g := New(1, 1, cells)
	row := g.Row(0)
	if !row[0].HasColor || row[0].Color.R != 1 {
		t.Error("row should carry cell color alongside the glyph")
	}
}
