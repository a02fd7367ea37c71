package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glyphcast/glyphcast/internal/grid"
	"github.com/glyphcast/glyphcast/internal/render"
)

// Metadata describes a converted animation on disk, written alongside the
// frame files as metadata.json.
type Metadata struct {
	Source     string    `json:"source"`
	Created    time.Time `json:"created"`
	SourceW    int       `json:"source_width"`
	SourceH    int       `json:"source_height"`
	Columns    int       `json:"columns"`
	Rows       int       `json:"rows"`
	FrameCount int       `json:"frame_count"`
	FPS        float64   `json:"fps,omitempty"`
	Ramp       string    `json:"ramp"`
	Color      string    `json:"color"`
	Duration   float64   `json:"duration_seconds"`
	Timestamps []float64 `json:"timestamps_seconds"`
}

// Formatter turns a glyph grid into the text stored for one frame.
// The default formatter joins the grid's plain lines.
type Formatter func(*grid.Grid) string

func PlainFrame(g *grid.Grid) string {
	return strings.Join(g.Lines(), "\n")
}

// Write saves an animation under dir, one frame_NNNN.txt per frame plus
// metadata.json. The directory is created if needed.
func Write(dir string, meta Metadata, anim *render.Animation, format Formatter) error {
	if format == nil {
		format = PlainFrame
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	meta.Created = time.Now()
	meta.Columns = anim.Columns
	meta.Rows = anim.Rows
	meta.FrameCount = anim.Len()
	meta.Duration = anim.Duration.Seconds()
	meta.Timestamps = make([]float64, 0, anim.Len())
	for _, f := range anim.Frames {
		meta.Timestamps = append(meta.Timestamps, f.Timestamp.Seconds())
	}
	if anim.Len() > 0 {
		first := anim.Frames[0]
		meta.SourceW = first.SourceW
		meta.SourceH = first.SourceH
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	for i, f := range anim.Frames {
		name := filepath.Join(dir, fmt.Sprintf("frame_%04d.txt", i))
		if err := os.WriteFile(name, []byte(format(f.Grid)+"\n"), 0644); err != nil {
			return err
		}
	}
	return nil
}

// ReadMetadata loads a previously written metadata.json.
func ReadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Frames lists the frame files under dir in playback order.
func Frames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "frame_") && strings.HasSuffix(name, ".txt") {
			names = append(names, filepath.Join(dir, name))
		}
	}
	sort.Strings(names)
	return names, nil
}
