package render

import (
	"context"
	"sync"
	"time"

	"github.com/glyphcast/glyphcast/internal/grid"
	"github.com/glyphcast/glyphcast/internal/raster"
)

// frameJob is one source frame scheduled for rendering, with every output
// timestamp it occupies after retiming.
type frameJob struct {
	pixels *raster.Buffer
	stamps []time.Duration
}

// renderJobs renders every job, fanning out across workers when asked.
// Results land in a slice indexed by job, so output order stays in source
// order no matter which worker finishes first.
func renderJobs(ctx context.Context, fr *frameRenderer, jobs []frameJob, workers int) ([]*grid.Grid, error) {
	grids := make([]*grid.Grid, len(jobs))

	if workers <= 1 || len(jobs) < 2 {
		for i, job := range jobs {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			grids[i] = fr.renderGrid(job.pixels)
		}
		return grids, nil
	}

	if workers > len(jobs) {
		workers = len(jobs)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				grids[i] = fr.renderGrid(jobs[i].pixels)
			}
		}()
	}

	err := func() error {
		defer close(indices)
		for i := range jobs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case indices <- i:
			}
		}
		return nil
	}()
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return grids, nil
}
