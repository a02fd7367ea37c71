// Package render drives the frame pipeline: resolve the target geometry
// once, then resample, quantize and assemble every frame, with optional
// retiming onto a uniform frame rate.
package render

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/glyphcast/glyphcast/internal/edges"
	"github.com/glyphcast/glyphcast/internal/grid"
	"github.com/glyphcast/glyphcast/internal/layout"
	"github.com/glyphcast/glyphcast/internal/quant"
	"github.com/glyphcast/glyphcast/internal/raster"
	"github.com/glyphcast/glyphcast/internal/source"
)

// Animation is the ordered result of one animate call. Frame timestamps are
// strictly increasing.
type Animation struct {
	Frames        []*grid.Output
	Columns, Rows int
	// Duration is the total presentation time of the sequence.
	Duration time.Duration
}

func (a *Animation) Len() int { return len(a.Frames) }

// FrameIndexAt maps an elapsed wall-clock time onto a frame index, wrapping
// around the total duration for looped playback.
func (a *Animation) FrameIndexAt(elapsed time.Duration) int {
	if len(a.Frames) == 0 {
		return -1
	}
	if len(a.Frames) == 1 || a.Duration <= 0 {
		return 0
	}
	elapsed = elapsed % a.Duration
	// First frame whose timestamp exceeds elapsed, minus one.
	i := sort.Search(len(a.Frames), func(i int) bool {
		return a.Frames[i].Timestamp > elapsed
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// FrameAt returns the frame on display at the given elapsed time.
func (a *Animation) FrameAt(elapsed time.Duration) *grid.Output {
	i := a.FrameIndexAt(elapsed)
	if i < 0 {
		return nil
	}
	return a.Frames[i]
}

// Render converts the first (or only) frame of src into a glyph grid.
func Render(src source.Source, policy layout.Policy, opts Options) (*grid.Output, error) {
	opts = opts.normalized()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	frame, err := src.Next()
	if err == io.EOF {
		return nil, source.ErrNoFrames
	}
	if err != nil {
		return nil, err
	}

	fr, err := newFrameRenderer(frame.Pixels, policy, opts)
	if err != nil {
		return nil, err
	}
	return fr.render(frame.Pixels, 0), nil
}

// Animate converts every frame of src, retiming onto targetFPS when it is
// positive. The call is all-or-nothing: any failure discards completed
// frames and returns a FrameError naming the failing frame.
func Animate(ctx context.Context, src source.Source, policy layout.Policy, opts Options, targetFPS float64) (*Animation, error) {
	opts = opts.normalized()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var (
		fr        *frameRenderer
		jobs      []frameJob
		duration  time.Duration
		layoutErr error
	)
	err := schedule(ctx, src, targetFPS, func(index int, f *source.Frame, stamps []time.Duration) bool {
		if fr == nil {
			// Geometry locks to the first frame even if retiming drops it.
			r, rerr := newFrameRenderer(f.Pixels, policy, opts)
			if rerr != nil {
				layoutErr = rerr
				return false
			}
			fr = r
		}
		d := f.Delay
		if index > 0 {
			// Multi-frame sources coerce zero delays the way passthrough
			// timing does; a lone still keeps its zero duration.
			d = displayDelay(d)
		}
		if end := lastStamp(stamps) + d; end > duration {
			duration = end
		}
		if len(stamps) > 0 {
			jobs = append(jobs, frameJob{pixels: f.Pixels, stamps: stamps})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if layoutErr != nil {
		return nil, layoutErr
	}

	grids, err := renderJobs(ctx, fr, jobs, opts.Workers)
	if err != nil {
		return nil, err
	}

	anim := &Animation{Columns: fr.cols, Rows: fr.rows}
	for i, job := range jobs {
		for _, ts := range job.stamps {
			anim.Frames = append(anim.Frames, fr.output(grids[i], job.pixels, ts))
		}
	}
	if targetFPS > 0 {
		anim.Duration = time.Duration(float64(len(anim.Frames)) / targetFPS * float64(time.Second))
	} else {
		anim.Duration = duration
	}
	return anim, nil
}

// AnimateStream is the incremental variant of Animate: each finished frame
// is handed to emit as soon as it is rendered, so completed frames survive
// a later decode failure. emit returning false stops the stream early.
func AnimateStream(ctx context.Context, src source.Source, policy layout.Policy, opts Options, targetFPS float64, emit func(*grid.Output) bool) error {
	opts = opts.normalized()
	if err := opts.validate(); err != nil {
		return err
	}

	var (
		fr    *frameRenderer
		fail  error
		again = true
	)
	err := schedule(ctx, src, targetFPS, func(index int, f *source.Frame, stamps []time.Duration) bool {
		if fr == nil {
			r, rerr := newFrameRenderer(f.Pixels, policy, opts)
			if rerr != nil {
				fail = rerr
				return false
			}
			fr = r
		}
		if len(stamps) == 0 {
			return true
		}
		g := fr.renderGrid(f.Pixels)
		for _, ts := range stamps {
			if !emit(fr.output(g, f.Pixels, ts)) {
				again = false
				return false
			}
		}
		return again
	})
	if fail != nil {
		return fail
	}
	return err
}

func lastStamp(stamps []time.Duration) time.Duration {
	if len(stamps) == 0 {
		return 0
	}
	return stamps[len(stamps)-1]
}

// frameRenderer runs the per-frame pipeline against a geometry resolved once
// from the first frame. Safe for concurrent use across frames; dithering
// state lives inside each Cells call.
type frameRenderer struct {
	cols, rows int
	quantizer  quant.Quantizer
	adjust     raster.Adjust
	edgeMode   edges.Mode
	edgeThresh float64
	pool       *raster.SamplePool
}

func newFrameRenderer(first *raster.Buffer, policy layout.Policy, opts Options) (*frameRenderer, error) {
	aspect := float64(first.W) / float64(first.H)
	cols, rows, err := policy.Resolve(aspect, opts.CellAspect)
	if err != nil {
		return nil, err
	}

	return &frameRenderer{
		cols: cols,
		rows: rows,
		quantizer: quant.Quantizer{
			Ramp:    opts.Ramp,
			Gamma:   opts.Gamma,
			Dither:  opts.Dither,
			Mode:    opts.Mode,
			Palette: opts.Palette,
		},
		adjust:     opts.Adjust,
		edgeMode:   opts.Edges,
		edgeThresh: opts.EdgeThreshold,
		pool:       raster.NewSamplePool(cols * rows),
	}, nil
}

func (fr *frameRenderer) renderGrid(buf *raster.Buffer) *grid.Grid {
	samples := fr.pool.Get()
	defer fr.pool.Put(samples)

	raster.ResampleInto(samples, buf, fr.cols, fr.rows)
	fr.adjust.Apply(samples)

	switch fr.edgeMode {
	case edges.ModeIntensity:
		mags := edges.Intensity(lumaOf(samples), fr.cols, fr.rows, fr.edgeThresh)
		for i := range samples {
			samples[i].Luma = mags[i]
		}
	case edges.ModeOrientation:
		return fr.orientationGrid(samples)
	}

	return grid.New(fr.cols, fr.rows, fr.quantizer.Cells(samples, fr.cols, fr.rows))
}

// orientationGrid bypasses the tone ramp: active edges draw a directional
// stroke, everything else stays blank.
func (fr *frameRenderer) orientationGrid(samples []raster.Sample) *grid.Grid {
	responses := edges.Orientation(lumaOf(samples), fr.cols, fr.rows, fr.edgeThresh)
	cells := make([]grid.Cell, len(samples))
	for i, r := range responses {
		if !r.Active {
			cells[i] = grid.Cell{Glyph: ' '}
			continue
		}
		s := samples[i]
		s.Luma = r.Magnitude
		cells[i] = fr.quantizer.EdgeCell(edges.Glyph(r.Angle), s)
	}
	return grid.New(fr.cols, fr.rows, cells)
}

func (fr *frameRenderer) render(buf *raster.Buffer, ts time.Duration) *grid.Output {
	return fr.output(fr.renderGrid(buf), buf, ts)
}

func (fr *frameRenderer) output(g *grid.Grid, buf *raster.Buffer, ts time.Duration) *grid.Output {
	return &grid.Output{
		Grid:      g,
		SourceW:   buf.W,
		SourceH:   buf.H,
		Columns:   fr.cols,
		Rows:      fr.rows,
		Timestamp: ts,
	}
}

func lumaOf(samples []raster.Sample) []float64 {
	luma := make([]float64, len(samples))
	for i, s := range samples {
		luma[i] = s.Luma
	}
	return luma
}
