// Package glyphcast converts raster images and animations into terminal
// glyph grids.
//
// The pipeline decodes a source into pixel frames, resolves a grid geometry
// that preserves the source aspect ratio under non-square terminal cells,
// area-averages each cell, and quantizes the result onto a glyph ramp with
// optional gamma correction, dithering, and color.
//
//	src, err := glyphcast.Open("clip.gif", 100*time.Millisecond)
//	if err != nil { ... }
//	anim, err := glyphcast.Animate(ctx, src, glyphcast.FixedColumns(80), glyphcast.DefaultOptions(), 0)
package glyphcast

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/glyphcast/glyphcast/internal/edges"
	"github.com/glyphcast/glyphcast/internal/grid"
	"github.com/glyphcast/glyphcast/internal/layout"
	"github.com/glyphcast/glyphcast/internal/quant"
	"github.com/glyphcast/glyphcast/internal/raster"
	"github.com/glyphcast/glyphcast/internal/render"
	"github.com/glyphcast/glyphcast/internal/source"
)

type (
	// Source yields pixel frames until io.EOF.
	Source = source.Source
	Frame  = source.Frame

	// Policy decides the output grid geometry from the source aspect ratio.
	Policy = layout.Policy

	Options    = render.Options
	Animation  = render.Animation
	FrameError = render.FrameError

	Output = grid.Output
	Grid   = grid.Grid
	Cell   = grid.Cell

	Ramp      = quant.Ramp
	ColorMode = quant.ColorMode
	Palette   = quant.Palette
	EdgeMode  = edges.Mode
	Adjust    = raster.Adjust
)

const (
	ModeMono      = quant.ModeMono
	ModeTruecolor = quant.ModeTruecolor
	ModePalette   = quant.ModePalette

	EdgesNone        = edges.ModeNone
	EdgesIntensity   = edges.ModeIntensity
	EdgesOrientation = edges.ModeOrientation

	DefaultCellAspect = layout.DefaultCellAspect
)

var (
	ErrDecode            = source.ErrDecode
	ErrUnsupportedFormat = source.ErrUnsupportedFormat
	ErrNoFrames          = source.ErrNoFrames
	ErrInvalidLayout     = layout.ErrInvalidLayout
	ErrEmptyRamp         = quant.ErrEmptyRamp

	ANSI16  = quant.ANSI16
	ANSI256 = quant.ANSI256
)

func DefaultOptions() Options { return render.DefaultOptions() }

// Layout policies.

func FixedColumns(cols int) Policy        { return layout.FixedColumns(cols) }
func FixedRows(rows int) Policy           { return layout.FixedRows(rows) }
func FixedDimensions(cols, rows int) Policy { return layout.FixedDimensions(cols, rows) }
func FitWithin(maxCols, maxRows int) Policy { return layout.FitWithin(maxCols, maxRows) }

// Sources.

// Open builds a source from a still image file, an animated GIF, or a
// directory of frames played at dirDelay per frame.
func Open(path string, dirDelay time.Duration) (Source, error) {
	return source.Open(path, dirDelay)
}

func Decode(r io.Reader) (Source, error) { return source.Decode(r) }

func DecodeGIF(r io.Reader) (Source, error) { return source.DecodeGIF(r) }

func FromImage(img image.Image) Source { return source.FromImage(img) }

// Ramps.

func NewRamp(glyphs string) (Ramp, error) { return quant.NewRamp(glyphs) }

func RampByName(name string) (Ramp, error) { return quant.RampByName(name) }

// Rendering.

// Render converts the first frame of src into a glyph grid.
func Render(src Source, policy Policy, opts Options) (*Output, error) {
	return render.Render(src, policy, opts)
}

// Animate renders every frame of src, optionally retimed to targetFPS.
// A zero targetFPS keeps the source timing.
func Animate(ctx context.Context, src Source, policy Policy, opts Options, targetFPS float64) (*Animation, error) {
	return render.Animate(ctx, src, policy, opts, targetFPS)
}

// AnimateStream renders frames one at a time, handing each to emit as soon
// as it is ready. Emit returns false to stop early.
func AnimateStream(ctx context.Context, src Source, policy Policy, opts Options, targetFPS float64, emit func(*Output) bool) error {
	return render.AnimateStream(ctx, src, policy, opts, targetFPS, emit)
}
