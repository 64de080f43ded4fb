package sim

import (
	"context"
	"fmt"

	"github.com/wlldxn/orbitlab/internal/orbit"
)

// Metric accumulates a scalar over a run from per-tick body snapshots.
type Metric interface {
	Name() string
	Observe(bodies []orbit.BodyView, tick int)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(bodies []orbit.BodyView, tick int)
}

// Config controls a batch run.
type Config struct {
	// Ticks is the number of simulation steps to advance.
	Ticks int
	// SampleEvery keeps every Nth snapshot in the result (1 = all).
	SampleEvery int
}

// Sample is a retained snapshot of the body set after a tick.
type Sample struct {
	Tick   int
	Bodies []orbit.BodyView
}

// Result holds the retained samples and final metric values of a run.
type Result struct {
	Samples  []Sample
	TicksRun int
	FinalLen int
	Metrics  map[string]float64
}

// Runner drives a System for a fixed number of ticks, feeding metrics and
// observers between steps. The System is mutated in place.
type Runner struct {
	sys       *orbit.System
	metrics   []Metric
	observers []Observer
}

func New(sys *orbit.System) *Runner {
	return &Runner{sys: sys}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances the system cfg.Ticks steps. Cancellation is honored between
// ticks only; a started tick always completes, so every retained sample is
// internally consistent.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Ticks <= 0 {
		return nil, fmt.Errorf("sim: ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.SampleEvery <= 0 {
		cfg.SampleEvery = 1
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Samples: make([]Sample, 0, cfg.Ticks/cfg.SampleEvery+1),
		Metrics: make(map[string]float64),
	}

	snapshot := r.sys.Bodies()
	for _, m := range r.metrics {
		m.Observe(snapshot, 0)
	}
	result.Samples = append(result.Samples, Sample{Tick: 0, Bodies: snapshot})

	for tick := 1; tick <= cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.sys.Tick()
		result.TicksRun++

		snapshot = r.sys.Bodies()
		for _, m := range r.metrics {
			m.Observe(snapshot, tick)
		}
		for _, obs := range r.observers {
			obs.OnTick(snapshot, tick)
		}

		if tick%cfg.SampleEvery == 0 {
			result.Samples = append(result.Samples, Sample{Tick: tick, Bodies: snapshot})
		}
	}

	result.FinalLen = r.sys.Len()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
