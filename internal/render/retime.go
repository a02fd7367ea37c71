package render

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/glyphcast/glyphcast/internal/source"
)

// minFrameDelay substitutes for a zero or negative delay between frames in
// passthrough timing, so multi-frame sources always produce strictly
// increasing timestamps. It matches the conventional fallback for animations
// encoded without delays.
const minFrameDelay = 100 * time.Millisecond

func displayDelay(d time.Duration) time.Duration {
	if d <= 0 {
		return minFrameDelay
	}
	return d
}

// schedule walks the source once and reports, for every decoded frame in
// order, the presentation timestamps that frame should occupy in the output.
//
// With fps <= 0 the source timing passes through: every frame gets exactly
// one stamp at the running sum of the preceding delays, with zero delays
// coerced to minFrameDelay so the stamps stay strictly increasing.
//
// With a positive fps, frames are re-sampled onto the uniform grid k/fps by
// nearest source timestamp: target ticks closer to the pending frame's start
// than to the next frame's belong to the pending frame. A frame may receive
// several stamps (duplication) or none (drop); the total stamp count is
// ceil(sourceDuration x fps), with a floor of one so a zero-duration source
// still renders.
//
// visit returning false stops the walk early with a nil error.
func schedule(ctx context.Context, src source.Source, fps float64, visit func(index int, f *source.Frame, stamps []time.Duration) bool) error {
	first, err := src.Next()
	if err == io.EOF {
		return source.ErrNoFrames
	}
	if err != nil {
		return &FrameError{Index: 0, Err: err}
	}

	if fps <= 0 {
		return passthrough(ctx, src, first, visit)
	}
	return retime(ctx, src, first, fps, visit)
}

func passthrough(ctx context.Context, src source.Source, first *source.Frame, visit func(int, *source.Frame, []time.Duration) bool) error {
	frame := first
	index := 0
	elapsed := time.Duration(0)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !visit(index, frame, []time.Duration{elapsed}) {
			return nil
		}

		next, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &FrameError{Index: index + 1, Err: err}
		}
		// Advance only between frames, so a still's zero delay never gets
		// coerced.
		elapsed += displayDelay(frame.Delay)
		frame = next
		index++
	}
}

func retime(ctx context.Context, src source.Source, first *source.Frame, fps float64, visit func(int, *source.Frame, []time.Duration) bool) error {
	tick := func(k int) time.Duration {
		return time.Duration(float64(k) / fps * float64(time.Second))
	}

	pending := first
	index := 0
	start := time.Duration(0) // presentation start of the pending frame
	k := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		next, err := src.Next()
		if err == io.EOF {
			// Draining: the remaining ticks up to the source duration all
			// land on the final frame.
			duration := start + pending.Delay
			total := int(math.Ceil(duration.Seconds() * fps))
			if total < 1 {
				total = 1
			}
			var stamps []time.Duration
			for ; k < total; k++ {
				stamps = append(stamps, tick(k))
			}
			visit(index, pending, stamps)
			return nil
		}
		if err != nil {
			return &FrameError{Index: index + 1, Err: err}
		}

		nextStart := start + pending.Delay
		mid := start + (nextStart-start)/2

		var stamps []time.Duration
		for tick(k) < mid {
			stamps = append(stamps, tick(k))
			k++
		}
		if !visit(index, pending, stamps) {
			return nil
		}

		pending = next
		start = nextStart
		index++
	}
}
