// Package source adapts still images and animations into a single lazy,
// forward-only frame sequence consumed by the renderer.
package source

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/glyphcast/glyphcast/internal/raster"

	// Stdlib decoders register themselves for image.Decode sniffing.
	_ "image/jpeg"
	_ "image/png"

	// Extended formats from golang.org/x/image.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Domain errors for frame acquisition.
var (
	// ErrDecode indicates the source bytes could not be parsed.
	ErrDecode = errors.New("source: cannot decode input")

	// ErrUnsupportedFormat indicates a structurally valid source whose pixel
	// layout cannot be normalized to 8-bit RGBA.
	ErrUnsupportedFormat = errors.New("source: unsupported pixel format")

	// ErrNoFrames indicates an animation source with nothing to render.
	ErrNoFrames = errors.New("source: no frames")
)

// Frame is one decoded frame plus its native display delay. Still images
// carry a zero delay.
type Frame struct {
	Pixels *raster.Buffer
	Delay  time.Duration
}

// Source yields frames one at a time until io.EOF. Sequences are finite,
// forward-only and not restartable; callers needing a second pass must
// buffer frames themselves.
type Source interface {
	Next() (*Frame, error)
}

// still is the single-frame adapter over a decoded image.
type still struct {
	frame *Frame
	done  bool
}

// FromImage wraps an already decoded image as a one-frame source.
func FromImage(img image.Image) Source {
	return &still{frame: &Frame{Pixels: raster.FromImage(img)}}
}

// FromBuffer wraps a pixel buffer directly, mainly for tests and embedders.
func FromBuffer(buf *raster.Buffer) Source {
	return &still{frame: &Frame{Pixels: buf}}
}

func (s *still) Next() (*Frame, error) {
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	if s.frame.Pixels.W == 0 || s.frame.Pixels.H == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedFormat)
	}
	return s.frame, nil
}

// Decode sniffs and decodes a still image from r.
func Decode(r io.Reader) (Source, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromImage(img), nil
}
