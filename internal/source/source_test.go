package source

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStillYieldsExactlyOneFrame(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src := FromImage(img)

	frame, err := src.Next()
	if err != nil {
		t.Fatalf("first frame failed: %v", err)
	}
	if frame.Pixels.W != 3 || frame.Pixels.H != 2 {
		t.Errorf("expected 3x2, got %dx%d", frame.Pixels.W, frame.Pixels.H)
	}
	if frame.Delay != 0 {
		t.Errorf("still frame delay should be zero, got %v", frame.Delay)
	}

	if _, err := src.Next(); err != io.EOF {
		t.Errorf("expected io.EOF after single frame, got %v", err)
	}
}

func TestDecodePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	src, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	frame, err := src.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	r, _, _, a := frame.Pixels.At(0, 0)
	if r != 255 || a != 255 {
		t.Errorf("expected red pixel, got r=%d a=%d", r, a)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("not an image at all"))
	if !errors.Is(err, ErrUnsupportedFormat) && !errors.Is(err, ErrDecode) {
		t.Errorf("expected a decode-class error, got %v", err)
	}
}

func encodeTestGIF(t *testing.T, delays []int) []byte {
	t.Helper()
	g := &gif.GIF{Config: image.Config{Width: 2, Height: 2}}
	pal := color.Palette{color.Black, color.White}
	for i, d := range delays {
		frame := image.NewPaletted(image.Rect(0, 0, 2, 2), pal)
		if i%2 == 1 {
			for p := range frame.Pix {
				frame.Pix[p] = 1
			}
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, d)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeGIFSequence(t *testing.T) {
	data := encodeTestGIF(t, []int{10, 10, 5})
	src, err := DecodeGIF(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gif decode failed: %v", err)
	}

	var frames []*Frame
	for {
		f, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next failed: %v", err)
		}
		frames = append(frames, f)
	}

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[0].Delay != 100*time.Millisecond {
		t.Errorf("expected 100ms delay, got %v", frames[0].Delay)
	}
	if frames[2].Delay != 50*time.Millisecond {
		t.Errorf("expected 50ms delay, got %v", frames[2].Delay)
	}

	// First frame dark, second composited bright.
	if l := frames[0].Pixels.LumaAt(0, 0); l > 0.1 {
		t.Errorf("frame 0 should be dark, got luma %v", l)
	}
	if l := frames[1].Pixels.LumaAt(0, 0); l < 0.9 {
		t.Errorf("frame 1 should be bright, got luma %v", l)
	}
}

func TestDecodeGIFZeroDelayFallback(t *testing.T) {
	data := encodeTestGIF(t, []int{0, 0})
	src, err := DecodeGIF(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gif decode failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		f, err := src.Next()
		if err != nil {
			t.Fatalf("frame %d failed: %v", i, err)
		}
		if f.Delay != 100*time.Millisecond {
			t.Errorf("frame %d: expected 100ms fallback delay, got %v", i, f.Delay)
		}
	}
}

func TestDecodeGIFSingleFrameKeepsZeroDelay(t *testing.T) {
	data := encodeTestGIF(t, []int{0})
	src, err := DecodeGIF(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gif decode failed: %v", err)
	}
	f, err := src.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if f.Delay != 0 {
		t.Errorf("single-frame gif should keep zero delay, got %v", f.Delay)
	}
}

// decodeAllFrames drains a source, failing the test on any error.
func decodeAllFrames(t *testing.T, src Source) []*Frame {
	t.Helper()
	var frames []*Frame
	for {
		f, err := src.Next()
		if err == io.EOF {
			return frames
		}
		if err != nil {
			t.Fatalf("frame %d failed: %v", len(frames), err)
		}
		frames = append(frames, f)
	}
}

func TestDecodeGIFDisposalBackground(t *testing.T) {
	pal := color.Palette{color.Black, color.White}

	full := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
	left := image.NewPaletted(image.Rect(0, 0, 2, 4), pal)
	for p := range left.Pix {
		left.Pix[p] = 1
	}

	g := &gif.GIF{
		Image:    []*image.Paletted{full, left},
		Delay:    []int{10, 10},
		Disposal: []byte{gif.DisposalBackground, gif.DisposalNone},
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatal(err)
	}

	src, err := DecodeGIF(&buf)
	if err != nil {
		t.Fatalf("gif decode failed: %v", err)
	}
	frames := decodeAllFrames(t, src)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}

	// Frame 0 disposes to background, so frame 1 shows only its own rect:
	// white left half over a cleared canvas.
	if r, _, _, a := frames[1].Pixels.At(0, 0); r != 255 || a != 255 {
		t.Errorf("left half should be painted white, got r=%d a=%d", r, a)
	}
	if _, _, _, a := frames[1].Pixels.At(3, 0); a != 0 {
		t.Errorf("right half should be cleared to transparent, got alpha %d", a)
	}
}

func TestDecodeGIFDisposalPrevious(t *testing.T) {
	pal := color.Palette{color.Black, color.White}

	full := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
	right := image.NewPaletted(image.Rect(2, 0, 4, 4), pal)
	for p := range right.Pix {
		right.Pix[p] = 1
	}
	dot := image.NewPaletted(image.Rect(0, 0, 1, 1), pal)
	dot.Pix[0] = 1

	g := &gif.GIF{
		Image:    []*image.Paletted{full, right, dot},
		Delay:    []int{10, 10, 10},
		Disposal: []byte{gif.DisposalNone, gif.DisposalPrevious, gif.DisposalNone},
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatal(err)
	}

	src, err := DecodeGIF(&buf)
	if err != nil {
		t.Fatalf("gif decode failed: %v", err)
	}
	frames := decodeAllFrames(t, src)
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}

	// Frame 1 paints the right half white on top of the black canvas.
	if r, _, _, _ := frames[1].Pixels.At(3, 0); r != 255 {
		t.Errorf("frame 1 right half should be white, got r=%d", r)
	}
	// Frame 1 restores the previous canvas, so frame 2 shows black where
	// the white rect was, plus its own single pixel.
	if r, _, _, a := frames[2].Pixels.At(3, 0); r != 0 || a != 255 {
		t.Errorf("frame 2 should restore black right half, got r=%d a=%d", r, a)
	}
	if r, _, _, _ := frames[2].Pixels.At(0, 0); r != 255 {
		t.Errorf("frame 2 should paint its own pixel white, got r=%d", r)
	}
}

func TestDecodeGIFGarbage(t *testing.T) {
	_, err := DecodeGIF(strings.NewReader("GIF89a broken"))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestOpenDir(t *testing.T) {
	tmp := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for _, name := range []string{"b.png", "a.png"} {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(tmp, name), buf.Bytes(), 0644); err != nil {
			t.Fatal(err)
		}
	}

	src, err := OpenDir(tmp, 80*time.Millisecond)
	if err != nil {
		t.Fatalf("open dir failed: %v", err)
	}

	n := 0
	for {
		f, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("frame %d failed: %v", n, err)
		}
		if f.Delay != 80*time.Millisecond {
			t.Errorf("frame %d: expected uniform delay, got %v", n, f.Delay)
		}
		n++
	}
	if n != 2 {
		t.Errorf("expected 2 frames, got %d", n)
	}
}

func TestOpenDirEmpty(t *testing.T) {
	_, err := OpenDir(t.TempDir(), time.Second)
	if !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestOpenDirBadFrameFailsMidStream(t *testing.T) {
	tmp := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "0.png"), buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "1.png"), []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := OpenDir(tmp, time.Second)
	if err != nil {
		t.Fatalf("open dir failed: %v", err)
	}
	if _, err := src.Next(); err != nil {
		t.Fatalf("first frame should decode: %v", err)
	}
	_, err = src.Next()
	if !errors.Is(err, ErrDecode) && !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected decode failure on second frame, got %v", err)
	}
}
