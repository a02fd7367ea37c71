package raster

// Adjust is the per-frame tone adjustment applied to sampled luminance
// before quantization. Brightness and Contrast are offsets in [-255, 255];
// zero values are no-ops. Colors are passed through untouched.
type Adjust struct {
	Invert     bool
	Brightness float64
	Contrast   float64
}

func (a Adjust) IsZero() bool {
	return !a.Invert && a.Brightness == 0 && a.Contrast == 0
}

// Apply rewrites the luminance of every sample in place.
func (a Adjust) Apply(samples []Sample) {
	if a.IsZero() {
		return
	}

	c := clampF(a.Contrast, -255, 255)
	factor := (259 * (c + 255)) / (255 * (259 - c))
	offset := clampF(a.Brightness/255, -1, 1)

	for i := range samples {
		l := samples[i].Luma
		if a.Invert {
			l = 1 - l
		}
		l = factor*(l-0.5) + 0.5 + offset
		samples[i].Luma = clampF(l, 0, 1)
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
