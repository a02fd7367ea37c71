package quant

import (
	"errors"
	"math"
)

// ErrEmptyRamp indicates a glyph ramp with fewer than two entries.
var ErrEmptyRamp = errors.New("quant: glyph ramp needs at least two glyphs")

// Ramp is an ordered glyph sequence, darkest first. Index zero renders
// zero luminance.
type Ramp struct {
	glyphs []rune
}

// NewRamp builds a ramp from a glyph string.
func NewRamp(s string) (Ramp, error) {
	glyphs := []rune(s)
	if len(glyphs) < 2 {
		return Ramp{}, ErrEmptyRamp
	}
	return Ramp{glyphs: glyphs}, nil
}

// MustRamp is NewRamp for compile-time constant ramps.
func MustRamp(s string) Ramp {
	r, err := NewRamp(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Ramp presets carried over from the ascii tradition.
func Detailed() Ramp {
	return MustRamp(`$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\|()1{}[]?-_+~<>i!lI;:,"^` + "`" + `'. `)
}

func Standard() Ramp { return MustRamp("@%#*+=-:. ") }

func Blocks() Ramp { return MustRamp("█▓▒░ ") }

func Binary() Ramp { return MustRamp("01") }

// RampByName resolves a preset name, falling back to treating the argument
// as a literal glyph string.
func RampByName(name string) (Ramp, error) {
	switch name {
	case "detailed":
		return Detailed(), nil
	case "standard":
		return Standard(), nil
	case "blocks":
		return Blocks(), nil
	case "binary":
		return Binary(), nil
	default:
		return NewRamp(name)
	}
}

func (r Ramp) Len() int { return len(r.glyphs) }

func (r Ramp) Valid() bool { return len(r.glyphs) >= 2 }

// Index quantizes a luminance in [0,1] to a glyph index, clamped to the
// ramp bounds.
func (r Ramp) Index(v float64) int {
	max := len(r.glyphs) - 1
	idx := int(math.Floor(v*float64(max) + 0.5))
	if idx < 0 {
		return 0
	}
	if idx > max {
		return max
	}
	return idx
}

// Glyph returns the glyph at idx, clamped.
func (r Ramp) Glyph(idx int) rune {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r.glyphs) {
		idx = len(r.glyphs) - 1
	}
	return r.glyphs[idx]
}

// Level is the luminance a glyph index represents, the inverse of Index.
func (r Ramp) Level(idx int) float64 {
	return float64(idx) / float64(len(r.glyphs)-1)
}

func (r Ramp) String() string { return string(r.glyphs) }
