package quant

import "image/color"

// ColorMode selects how cell colors are produced.
type ColorMode int

const (
	// ModeMono emits glyphs only.
	ModeMono ColorMode = iota
	// ModeTruecolor passes the averaged cell color through unchanged.
	ModeTruecolor
	// ModePalette snaps the averaged color to the nearest palette entry.
	ModePalette
)

func (m ColorMode) String() string {
	switch m {
	case ModeTruecolor:
		return "truecolor"
	case ModePalette:
		return "palette"
	default:
		return "mono"
	}
}

// Palette is a fixed set of representative colors for ModePalette.
type Palette []color.NRGBA

// Nearest returns the palette entry with minimum squared Euclidean distance
// to c. Ties keep the earliest entry.
func (p Palette) Nearest(c color.NRGBA) color.NRGBA {
	return p[p.NearestIndex(c)]
}

// NearestIndex is Nearest for callers that need the palette slot, such as
// terminal escape emitters.
func (p Palette) NearestIndex(c color.NRGBA) int {
	best := 0
	bestDist := 1 << 30
	for i, e := range p {
		dr := int(e.R) - int(c.R)
		dg := int(e.G) - int(c.G)
		db := int(e.B) - int(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// ANSI16 is the classic 16-color terminal palette.
var ANSI16 = Palette{
	{0, 0, 0, 255}, {128, 0, 0, 255}, {0, 128, 0, 255}, {128, 128, 0, 255},
	{0, 0, 128, 255}, {128, 0, 128, 255}, {0, 128, 128, 255}, {192, 192, 192, 255},
	{128, 128, 128, 255}, {255, 0, 0, 255}, {0, 255, 0, 255}, {255, 255, 0, 255},
	{0, 0, 255, 255}, {255, 0, 255, 255}, {0, 255, 255, 255}, {255, 255, 255, 255},
}

// ANSI256 is the xterm 256-color palette: the 16 base colors, the 6x6x6
// color cube, and the 24-step gray ramp.
var ANSI256 = buildANSI256()

func buildANSI256() Palette {
	p := make(Palette, 0, 256)
	p = append(p, ANSI16...)

	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	for _, r := range steps {
		for _, g := range steps {
			for _, b := range steps {
				p = append(p, color.NRGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		p = append(p, color.NRGBA{R: v, G: v, B: v, A: 255})
	}
	return p
}
