package render

import (
	"fmt"

	"github.com/glyphcast/glyphcast/internal/edges"
	"github.com/glyphcast/glyphcast/internal/layout"
	"github.com/glyphcast/glyphcast/internal/quant"
	"github.com/glyphcast/glyphcast/internal/raster"
)

// Options configures one render or animate call. Options are read-only for
// the duration of the call.
type Options struct {
	// Ramp orders glyphs darkest to brightest; at least two entries.
	Ramp quant.Ramp
	// Mode selects monochrome, truecolor or palette output.
	Mode quant.ColorMode
	// Palette backs ModePalette; ignored otherwise.
	Palette quant.Palette
	// Gamma applies luminance^(1/Gamma) before quantization. Zero means 1.0.
	Gamma float64
	// Dither enables error-diffusion dithering. Off by default because it
	// makes a cell's glyph depend on its already-processed neighbors.
	Dither bool
	// CellAspect is the terminal cell width/height ratio. Zero means 0.5.
	CellAspect float64
	// Adjust is the optional invert/brightness/contrast pass.
	Adjust raster.Adjust
	// Edges selects the Sobel treatment; EdgeThreshold gates weak responses.
	Edges         edges.Mode
	EdgeThreshold float64
	// Workers caps concurrent per-frame rendering in batch animation.
	// Zero or one keeps rendering sequential.
	Workers int
}

// DefaultOptions is a monochrome configuration on the standard ramp.
func DefaultOptions() Options {
	return Options{
		Ramp:          quant.Standard(),
		Gamma:         1.0,
		CellAspect:    layout.DefaultCellAspect,
		EdgeThreshold: 0.2,
		Workers:       1,
	}
}

// normalized fills zero values with their documented defaults.
func (o Options) normalized() Options {
	if o.Gamma == 0 {
		o.Gamma = 1.0
	}
	if o.CellAspect == 0 {
		o.CellAspect = layout.DefaultCellAspect
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Mode == quant.ModePalette && len(o.Palette) == 0 {
		o.Palette = quant.ANSI256
	}
	return o
}

func (o Options) validate() error {
	if !o.Ramp.Valid() {
		return quant.ErrEmptyRamp
	}
	if o.Gamma < 0 {
		return fmt.Errorf("render: gamma must be positive, got %v", o.Gamma)
	}
	if o.CellAspect < 0 {
		return fmt.Errorf("render: cell aspect must be positive, got %v", o.CellAspect)
	}
	return nil
}
