package sim

import (
	"context"
	"sync"

	"github.com/wlldxn/orbitlab/internal/orbit"
)

// Ensemble runs the same scenario under a range of seeds, one goroutine per
// run. Each run builds its own System and metrics, so no simulation state is
// ever shared between goroutines.
type Ensemble struct {
	build     func(seed int64) (*orbit.System, error)
	metrics   func(g float64) []Metric
	numRuns   int
	seedStart int64
}

// NewEnsemble prepares numRuns runs with seeds seedStart, seedStart+1, ...
// build must return a fresh System for every call.
func NewEnsemble(build func(seed int64) (*orbit.System, error), numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics installs a factory invoked once per run, since metrics carry
// per-run state.
func (e *Ensemble) WithMetrics(factory func(g float64) []Metric) {
	e.metrics = factory
}

// Run executes all runs and returns their results in seed order. The first
// build or run error aborts the whole ensemble.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sys, err := e.build(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}

			runner := New(sys)
			if e.metrics != nil {
				for _, m := range e.metrics(sys.G()) {
					runner.AddMetric(m)
				}
			}

			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
