package histogram

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool is the process-wide thread pool spec.md §5 describes: workers default
// to hardware_concurrency-1, constructed lazily and shared across every
// HistogramManager in the process. Grounded on golang.org/x/sync's
// errgroup+semaphore pairing (see other_examples/manifests/gazed-vu and
// intelligencedev-manifold, both of which depend on golang.org/x/sync).
type Pool struct {
	sem *semaphore.Weighted
}

var (
	defaultPool     *Pool
	defaultPoolOnce sync.Once
)

// DefaultPool returns the process-wide pool, constructing it on first use.
func DefaultPool() *Pool {
	defaultPoolOnce.Do(func() {
		defaultPool = NewPool(defaultWorkerCount())
	})
	return defaultPool
}

func defaultWorkerCount() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// NewPool builds a pool with an explicit worker cap, used by tests that need
// to pin the thread count to verify the thread-count-invariance property
// (spec.md §8).
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Run submits jobs and blocks until all complete (the "wait_for_tasks
// barrier" spec.md §5 calls the only suspension point in the manager). The
// first job error is returned; a job panic is not recovered, matching the
// teacher's fail-fast style elsewhere (no recover() anywhere in the example
// corpus).
func (p *Pool) Run(jobs []func() error) error {
	ctx := context.Background()
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		g.Go(func() error {
			defer p.sem.Release(1)
			return job()
		})
	}
	return g.Wait()
}
