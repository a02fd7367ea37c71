package source

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glyphcast/glyphcast/internal/raster"
)

// Open adapts a path into a frame source. GIF files become animations,
// directories become frame sequences displayed at dirDelay per frame, and
// everything else is decoded as a still image.
func Open(path string, dirDelay time.Duration) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if info.IsDir() {
		return OpenDir(path, dirDelay)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return DecodeGIF(f)
	}
	return Decode(f)
}

// dir lazily decodes a lexically sorted directory of stills, one per Next
// call, each shown for a uniform delay.
type dir struct {
	paths []string
	delay time.Duration
	index int
}

// OpenDir treats every regular file in path as one animation frame.
func OpenDir(path string, delay time.Duration) (Source, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			paths = append(paths, filepath.Join(path, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no frame files in %s", ErrNoFrames, path)
	}
	sort.Strings(paths)

	return &dir{paths: paths, delay: delay}, nil
}

func (d *dir) Next() (*Frame, error) {
	if d.index >= len(d.paths) {
		return nil, io.EOF
	}
	path := d.paths[d.index]
	d.index++

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		if err == image.ErrFormat {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	return &Frame{Pixels: raster.FromImage(img), Delay: d.delay}, nil
}
