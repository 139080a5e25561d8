// Package schedule builds the ordered frame-job list and dispatches it to
// a fixed-size worker pool. Jobs are constructed eagerly, before any
// parallel work, so final video ordering is fixed by frame index and never
// depends on worker completion order.
package schedule

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/slidecast/internal/config"
	"github.com/backmassage/slidecast/internal/reuse"
)

// RefsPerJob returns how many images one frame consumes in the given layout.
func RefsPerJob(layout config.LayoutMode) int {
	if layout == config.LayoutStacked {
		return 3
	}
	return 1
}

// FrameJob is the unit of work producing one composited output frame.
// Read-only after construction.
type FrameJob struct {
	Index      int
	ImagePaths []string
	Layout     config.LayoutMode
}

// BuildJobs pulls from the reuse queue once per frame and returns the full
// job list in frame-index order.
func BuildJobs(frameCount int, layout config.LayoutMode, q *reuse.Queue) []FrameJob {
	k := RefsPerJob(layout)
	jobs := make([]FrameJob, frameCount)
	for i := range jobs {
		jobs[i] = FrameJob{
			Index:      i,
			ImagePaths: q.Next(k),
			Layout:     layout,
		}
	}
	return jobs
}

// ResolveWorkers determines the worker pool size. An explicit positive
// override wins; otherwise the count follows GOMAXPROCS (adjusted by
// automaxprocs in containerized runs).
func ResolveWorkers(override int) int {
	if override > 0 {
		return override
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// Dispatch feeds jobs to workers parallel goroutines, each calling fn. fn
// must absorb per-job failures itself (recording them in stats); jobs are
// independent and one frame's failure never aborts its siblings. Dispatch
// returns once every job has resolved, or early with ctx.Err() when the
// run is cancelled.
func Dispatch(ctx context.Context, jobs []FrameJob, workers int, fn func(FrameJob)) error {
	jobCh := make(chan FrameJob)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for job := range jobCh {
				fn(job)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case jobCh <- job:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}
