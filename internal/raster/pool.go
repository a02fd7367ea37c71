package raster

import "sync"

// SamplePool recycles per-frame sample slices of a fixed grid size.
type SamplePool struct {
	pool sync.Pool
	size int
}

func NewSamplePool(size int) *SamplePool {
	return &SamplePool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]Sample, size)
			},
		},
	}
}

func (p *SamplePool) Get() []Sample {
	return p.pool.Get().([]Sample)
}

func (p *SamplePool) Put(s []Sample) {
	if len(s) == p.size {
		for i := range s {
			s[i] = Sample{}
		}
		p.pool.Put(s)
	}
}
