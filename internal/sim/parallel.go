package sim

import (
	"context"
	"sync"

	"github.com/san-kum/collide/internal/arena"
)

// Factory builds an independent world and its step configuration for one seed.
type Factory func(seed int64) (*arena.World, arena.Config, error)

// Ensemble runs the same scenario for consecutive seeds, one world per goroutine.
type Ensemble struct {
	factory   Factory
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory Factory, metrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w, arenaCfg, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}

			cfgCopy := cfg
			cfgCopy.Arena = arenaCfg

			s := New(w)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
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
