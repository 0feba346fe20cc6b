package sim

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/hamsim/internal/dynamo"
	"github.com/san-kum/hamsim/internal/logging"
)

// Ensemble evolves independent jobs on a bounded worker pool.
type Ensemble struct {
	workers  int
	logger   *slog.Logger
	progress func(done, total int)
}

type Option func(*Ensemble)

// WithWorkers bounds concurrency. Values below one mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Ensemble) { e.workers = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Ensemble) { e.logger = l }
}

// WithProgress registers a callback invoked after each finished job. Calls
// are serialized.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Ensemble) { e.progress = fn }
}

func NewEnsemble(opts ...Option) *Ensemble {
	e := &Ensemble{}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	return e
}

func (e *Ensemble) Workers() int { return e.workers }

// Run evolves every job and returns results in job order. The first failing
// job cancels the rest and its error is returned; cancellation of ctx stops
// scheduling and returns ctx.Err(). No partial results are returned.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	for i, job := range jobs {
		if job.System == nil {
			return nil, dynamo.Configf("sim.Ensemble.Run", "job %d (%s) has no system", i, job.Name)
		}
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	var mu sync.Mutex
	done := 0

	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			job := jobs[i]
			res, err := run(job)
			if err != nil {
				e.logger.Warn("job failed", "job", job.Name, "error", err)
				return fmt.Errorf("job %d (%s): %w", i, job.Name, err)
			}
			results[i] = res
			e.logger.Debug("job done",
				"job", job.Name,
				"samples", res.Trajectory.Len(),
				"drift", res.Drift,
				"elapsed", res.Elapsed,
			)

			mu.Lock()
			done++
			if e.progress != nil {
				e.progress(done, len(jobs))
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
