package raster

import (
	"image"
	"image/color"
)

// Rec. 601 luma coefficients.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Luma returns the perceptual luminance of a linear RGB triple in [0,1].
func Luma(r, g, b float64) float64 {
	return lumaR*r + lumaG*g + lumaB*b
}

// Buffer is an 8-bit RGBA pixel buffer, row-major, immutable once filled.
type Buffer struct {
	W, H int
	Pix  []uint8 // 4*W*H bytes, RGBA order
}

func NewBuffer(w, h int) *Buffer {
	return &Buffer{W: w, H: h, Pix: make([]uint8, 4*w*h)}
}

// FromImage normalizes any image.Image into an 8-bit RGBA buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := NewBuffer(w, h)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+4*w]
			copy(buf.Pix[y*4*w:], row)
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := src.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				buf.set(x, y, n)
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				n := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				buf.set(x, y, n)
			}
		}
	}
	return buf
}

func (b *Buffer) set(x, y int, c color.NRGBA) {
	i := 4 * (y*b.W + x)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// At returns the pixel at (x, y). No bounds checking.
func (b *Buffer) At(x, y int) (r, g, bl, a uint8) {
	i := 4 * (y*b.W + x)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// LumaAt returns the luminance in [0,1] of the pixel at (x, y).
func (b *Buffer) LumaAt(x, y int) float64 {
	r, g, bl, _ := b.At(x, y)
	return Luma(float64(r)/255, float64(g)/255, float64(bl)/255)
}
