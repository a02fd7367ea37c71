// Package edges detects edges on a sampled luminance grid so they can be
// drawn with directional glyphs or fed back through the tone ramp.
package edges

import "math"

// Mode selects the edge treatment applied between resampling and
// quantization.
type Mode int

const (
	// ModeNone renders tone directly.
	ModeNone Mode = iota
	// ModeIntensity replaces luminance with thresholded edge magnitude.
	ModeIntensity
	// ModeOrientation draws detected edges with directional glyphs.
	ModeOrientation
)

func (m Mode) String() string {
	switch m {
	case ModeIntensity:
		return "sobel"
	case ModeOrientation:
		return "outline"
	default:
		return "none"
	}
}

// Sample is one cell's edge response.
type Sample struct {
	Active    bool
	Magnitude float64 // normalized to [0,1]
	Angle     float64 // gradient angle in degrees, [0,180)
}

// Intensity runs a Sobel pass over a row-major luminance grid and returns
// the normalized magnitude per cell, zeroed below threshold. Grids smaller
// than 3x3 have no interior and come back all zero.
func Intensity(luma []float64, cols, rows int, threshold float64) []float64 {
	out := make([]float64, len(luma))
	if cols < 3 || rows < 3 {
		return out
	}
	threshold = clamp01(threshold)

	for y := 1; y < rows-1; y++ {
		for x := 1; x < cols-1; x++ {
			gx, gy := gradientAt(luma, cols, x, y)
			mag := clamp01(math.Sqrt(gx*gx+gy*gy) / 4)
			if mag >= threshold {
				out[y*cols+x] = mag
			}
		}
	}
	return out
}

// Orientation runs the same Sobel pass but keeps the gradient direction so
// edges can be drawn with -, /, | and \ glyphs.
func Orientation(luma []float64, cols, rows int, threshold float64) []Sample {
	out := make([]Sample, len(luma))
	if cols < 3 || rows < 3 {
		return out
	}
	threshold = clamp01(threshold)

	for y := 1; y < rows-1; y++ {
		for x := 1; x < cols-1; x++ {
			gx, gy := gradientAt(luma, cols, x, y)
			mag := clamp01(math.Sqrt(gx*gx+gy*gy) / 4)
			if mag < threshold {
				continue
			}
			angle := math.Atan2(gy, gx) * 180 / math.Pi
			angle = math.Mod(angle+180, 180)
			out[y*cols+x] = Sample{Active: true, Magnitude: mag, Angle: angle}
		}
	}
	return out
}

// Glyph maps a gradient angle to the stroke drawn across it. The gradient
// points across the edge, so the glyph runs perpendicular to it.
func Glyph(angle float64) rune {
	angle = math.Mod(angle, 180)
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return '|'
	case angle < 67.5:
		return '\\'
	case angle < 112.5:
		return '-'
	default:
		return '/'
	}
}

func gradientAt(luma []float64, cols, x, y int) (gx, gy float64) {
	a := luma[(y-1)*cols+x-1]
	b := luma[(y-1)*cols+x]
	c := luma[(y-1)*cols+x+1]
	d := luma[y*cols+x-1]
	f := luma[y*cols+x+1]
	g := luma[(y+1)*cols+x-1]
	h := luma[(y+1)*cols+x]
	i := luma[(y+1)*cols+x+1]

	gx = -a + c - 2*d + 2*f - g + i
	gy = -a - 2*b - c + g + 2*h + i
	return gx, gy
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
