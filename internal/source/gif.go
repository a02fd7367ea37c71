package source

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/glyphcast/glyphcast/internal/raster"
)

// animation replays decoded GIF frames, compositing each onto the logical
// canvas so partial-frame updates and disposal methods come out as full
// frames.
type animation struct {
	frames   []*image.Paletted
	delays   []int // hundredths of a second, per GIF
	disposal []byte
	canvas   *image.NRGBA
	index    int
}

// DecodeGIF adapts an animated GIF stream into a frame source.
func DecodeGIF(r io.Reader) (Source, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	return &animation{
		frames:   g.Image,
		delays:   g.Delay,
		disposal: g.Disposal,
		canvas:   image.NewNRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

func (a *animation) Next() (*Frame, error) {
	if a.index >= len(a.frames) {
		return nil, io.EOF
	}

	frame := a.frames[a.index]
	var restore *image.NRGBA
	if a.disposalAt(a.index) == gif.DisposalPrevious {
		restore = cloneNRGBA(a.canvas)
	}

	draw.Draw(a.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	buf := raster.FromImage(a.canvas)

	switch a.disposalAt(a.index) {
	case gif.DisposalBackground:
		clearRect(a.canvas, frame.Bounds())
	case gif.DisposalPrevious:
		a.canvas = restore
	}

	delay := time.Duration(0)
	if a.index < len(a.delays) {
		delay = time.Duration(a.delays[a.index]) * 10 * time.Millisecond
	}
	// Animations encoded with zero delays play at the conventional 100ms
	// fallback, the same substitution browsers make.
	if delay == 0 && len(a.frames) > 1 {
		delay = 100 * time.Millisecond
	}

	a.index++
	return &Frame{Pixels: buf, Delay: delay}, nil
}

func (a *animation) disposalAt(i int) byte {
	if i < len(a.disposal) {
		return a.disposal[i]
	}
	return gif.DisposalNone
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

func clearRect(img *image.NRGBA, r image.Rectangle) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = 0
		}
	}
}
