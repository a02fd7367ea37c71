package config

// Presets are ready-made profiles for common kinds of source material.
var Presets = map[string]*Profile{
	"photo": {
		Width: 120, Ramp: "detailed", Color: "mono",
		Gamma: 1.2, CellAspect: DefaultCellAspect,
		Edges: "none", EdgeThreshold: DefaultThreshold, Workers: 1,
	},
	"photo-color": {
		Width: 120, Ramp: "detailed", Color: "truecolor",
		Gamma: 1.2, CellAspect: DefaultCellAspect,
		Edges: "none", EdgeThreshold: DefaultThreshold, Workers: 1,
	},
	"poster": {
		Width: 100, Ramp: "blocks", Color: "ansi256", Dither: true,
		Gamma: DefaultGamma, CellAspect: DefaultCellAspect,
		Edges: "none", EdgeThreshold: DefaultThreshold, Workers: 1,
	},
	"sketch": {
		Width: 120, Ramp: "standard", Color: "mono",
		Gamma: DefaultGamma, CellAspect: DefaultCellAspect,
		Edges: "outline", EdgeThreshold: 0.25, Workers: 1,
	},
	"newsprint": {
		Width: 140, Ramp: "binary", Color: "mono", Dither: true,
		Gamma: DefaultGamma, CellAspect: DefaultCellAspect,
		Edges: "none", EdgeThreshold: DefaultThreshold, Workers: 1,
	},
}

func GetPreset(name string) *Profile {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *p
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
