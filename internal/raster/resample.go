package raster

// Sample is the aggregate of all source pixels covered by one output cell.
// Channels and luminance are linear averages in [0,1].
type Sample struct {
	R, G, B, A float64
	Luma       float64
}

// span records how much of one source pixel falls inside one output cell
// along a single axis.
type span struct {
	first   int
	weights []float64
}

// axisSpans partitions src pixels into n equal intervals and returns, for
// each interval, the overlap weight of every pixel it touches. Weights along
// one axis sum to src/n.
func axisSpans(src, n int) []span {
	spans := make([]span, n)
	step := float64(src) / float64(n)
	for i := 0; i < n; i++ {
		lo := float64(i) * step
		hi := float64(i+1) * step
		first := int(lo)
		last := src - 1
		if hi < float64(src) {
			last = int(hi)
			if hi == float64(last) { // boundary lands exactly on a pixel edge
				last--
			}
		}
		if last < first {
			last = first
		}
		weights := make([]float64, last-first+1)
		for p := first; p <= last; p++ {
			l, h := float64(p), float64(p+1)
			if l < lo {
				l = lo
			}
			if h > hi {
				h = hi
			}
			weights[p-first] = h - l
		}
		spans[i] = span{first: first, weights: weights}
	}
	return spans
}

// Resample reduces buf to a cols×rows grid of samples using an area-average
// filter: every source pixel contributes to each cell in proportion to the
// area of their overlap under a uniform partition of the source plane.
// When the target matches or exceeds the source resolution each cell reduces
// to the single pixel it falls inside.
func Resample(buf *Buffer, cols, rows int) []Sample {
	return ResampleInto(make([]Sample, cols*rows), buf, cols, rows)
}

// ResampleInto is Resample writing into a caller-provided slice of length
// cols*rows, allowing per-frame buffer reuse.
func ResampleInto(dst []Sample, buf *Buffer, cols, rows int) []Sample {
	if len(dst) != cols*rows {
		panic("raster: sample slice does not match target dimensions")
	}
	xs := axisSpans(buf.W, cols)
	ys := axisSpans(buf.H, rows)

	for cy := 0; cy < rows; cy++ {
		yspan := ys[cy]
		for cx := 0; cx < cols; cx++ {
			xspan := xs[cx]
			var r, g, b, a, area float64
			for j, wy := range yspan.weights {
				py := yspan.first + j
				rowOff := 4 * py * buf.W
				for i, wx := range xspan.weights {
					px := xspan.first + i
					w := wx * wy
					o := rowOff + 4*px
					r += w * float64(buf.Pix[o])
					g += w * float64(buf.Pix[o+1])
					b += w * float64(buf.Pix[o+2])
					a += w * float64(buf.Pix[o+3])
					area += w
				}
			}
			inv := 1.0 / (255.0 * area)
			s := Sample{R: r * inv, G: g * inv, B: b * inv, A: a * inv}
			s.Luma = Luma(s.R, s.G, s.B)
			dst[cy*cols+cx] = s
		}
	}
	return dst
}
