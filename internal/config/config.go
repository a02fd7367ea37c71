package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/glyphcast/glyphcast/internal/edges"
	"github.com/glyphcast/glyphcast/internal/layout"
	"github.com/glyphcast/glyphcast/internal/quant"
	"github.com/glyphcast/glyphcast/internal/raster"
	"github.com/glyphcast/glyphcast/internal/render"
)

const (
	DefaultWidth      = 120
	DefaultGamma      = 1.0
	DefaultCellAspect = layout.DefaultCellAspect
	DefaultThreshold  = 0.2
)

// Profile is the on-disk render configuration consumed by the CLI.
type Profile struct {
	Width         int     `yaml:"width"`
	Ramp          string  `yaml:"ramp"`
	Color         string  `yaml:"color"`
	Gamma         float64 `yaml:"gamma"`
	Dither        bool    `yaml:"dither"`
	CellAspect    float64 `yaml:"cell_aspect"`
	Invert        bool    `yaml:"invert"`
	Brightness    float64 `yaml:"brightness"`
	Contrast      float64 `yaml:"contrast"`
	Edges         string  `yaml:"edges"`
	EdgeThreshold float64 `yaml:"edge_threshold"`
	FPS           float64 `yaml:"fps"`
	Workers       int     `yaml:"workers"`
}

func DefaultProfile() *Profile {
	return &Profile{
		Width:         DefaultWidth,
		Ramp:          "standard",
		Color:         "mono",
		Gamma:         DefaultGamma,
		CellAspect:    DefaultCellAspect,
		Edges:         "none",
		EdgeThreshold: DefaultThreshold,
		Workers:       1,
	}
}

func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

func Save(path string, p *Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options translates the profile into renderer options.
func (p *Profile) Options() (render.Options, error) {
	opts := render.DefaultOptions()

	ramp, err := quant.RampByName(p.Ramp)
	if err != nil {
		return opts, err
	}
	opts.Ramp = ramp

	switch p.Color {
	case "", "mono":
		opts.Mode = quant.ModeMono
	case "truecolor":
		opts.Mode = quant.ModeTruecolor
	case "ansi16":
		opts.Mode = quant.ModePalette
		opts.Palette = quant.ANSI16
	case "ansi256":
		opts.Mode = quant.ModePalette
		opts.Palette = quant.ANSI256
	default:
		return opts, fmt.Errorf("config: unknown color mode %q", p.Color)
	}

	switch p.Edges {
	case "", "none":
		opts.Edges = edges.ModeNone
	case "sobel":
		opts.Edges = edges.ModeIntensity
	case "outline":
		opts.Edges = edges.ModeOrientation
	default:
		return opts, fmt.Errorf("config: unknown edge mode %q", p.Edges)
	}

	opts.Gamma = p.Gamma
	opts.Dither = p.Dither
	opts.CellAspect = p.CellAspect
	opts.EdgeThreshold = p.EdgeThreshold
	opts.Workers = p.Workers
	opts.Adjust = raster.Adjust{
		Invert:     p.Invert,
		Brightness: p.Brightness,
		Contrast:   p.Contrast,
	}
	return opts, nil
}
