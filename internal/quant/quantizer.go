// Package quant maps per-cell aggregate samples onto glyphs and terminal
// colors.
package quant

import (
	"image/color"
	"math"

	"github.com/glyphcast/glyphcast/internal/grid"
	"github.com/glyphcast/glyphcast/internal/raster"
)

// Cells with average alpha at or below this render as blank space.
const transparentAlpha = 0.001

// Quantizer turns aggregate luminance (and color) into grid cells.
// One Quantizer is safe for concurrent use; each Cells call owns its own
// dither state.
type Quantizer struct {
	Ramp    Ramp
	Gamma   float64 // positive; 1.0 leaves luminance untouched
	Dither  bool
	Mode    ColorMode
	Palette Palette
}

// Cells quantizes row-major samples into cells. The sample count must match
// cols*rows.
func (q Quantizer) Cells(samples []raster.Sample, cols, rows int) []grid.Cell {
	if len(samples) != cols*rows {
		panic("quant: sample count does not match grid dimensions")
	}

	cells := make([]grid.Cell, len(samples))
	invGamma := 1.0
	if q.Gamma > 0 {
		invGamma = 1 / q.Gamma
	}

	// Error diffusion carries the quantization remainder forward in raster
	// order, so the accumulator lives and dies inside this call.
	var carry []float64
	if q.Dither {
		carry = make([]float64, len(samples))
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x
			s := samples[i]

			adjusted := s.Luma
			if invGamma != 1 {
				adjusted = math.Pow(adjusted, invGamma)
			}
			if q.Dither {
				adjusted += carry[i]
			}

			idx := q.Ramp.Index(adjusted)
			if q.Dither {
				q.diffuse(carry, adjusted-q.Ramp.Level(idx), x, y, cols, rows)
			}

			cells[i] = q.cell(idx, s)
		}
	}
	return cells
}

// EdgeCell builds a cell for a caller-chosen glyph (edge strokes bypass the
// ramp) while keeping the color and transparency treatment consistent.
func (q Quantizer) EdgeCell(glyph rune, s raster.Sample) grid.Cell {
	if s.A <= transparentAlpha {
		return grid.Cell{Glyph: ' '}
	}
	c := q.cell(0, s)
	c.Glyph = glyph
	return c
}

func (q Quantizer) cell(idx int, s raster.Sample) grid.Cell {
	if s.A <= transparentAlpha {
		return grid.Cell{Glyph: ' '}
	}

	c := grid.Cell{Glyph: q.Ramp.Glyph(idx)}
	switch q.Mode {
	case ModeTruecolor:
		c.Color = sampleColor(s)
		c.HasColor = true
	case ModePalette:
		if len(q.Palette) > 0 {
			c.Color = q.Palette.Nearest(sampleColor(s))
			c.HasColor = true
		}
	}
	return c
}

// Floyd-Steinberg weights, restricted to not-yet-visited neighbors.
func (q Quantizer) diffuse(carry []float64, err float64, x, y, cols, rows int) {
	if x+1 < cols {
		carry[y*cols+x+1] += err * 7 / 16
	}
	if y+1 < rows {
		if x > 0 {
			carry[(y+1)*cols+x-1] += err * 3 / 16
		}
		carry[(y+1)*cols+x] += err * 5 / 16
		if x+1 < cols {
			carry[(y+1)*cols+x+1] += err * 1 / 16
		}
	}
}

func sampleColor(s raster.Sample) color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp01(s.R) * 255)),
		G: uint8(math.Round(clamp01(s.G) * 255)),
		B: uint8(math.Round(clamp01(s.B) * 255)),
		A: uint8(math.Round(clamp01(s.A) * 255)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
