package sim

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/wlldxn/orbitlab/internal/orbit"
	"github.com/wlldxn/orbitlab/internal/vecmath"
)

func seededBuilder(t *testing.T) func(seed int64) (*orbit.System, error) {
	t.Helper()
	return func(seed int64) (*orbit.System, error) {
		sys := orbit.New(orbit.Options{Rand: rand.New(rand.NewSource(seed))})
		sun, err := sys.AddPrimary(1000, vecmath.Vec2{}, vecmath.Vec2{}, 10, "#ffcc00")
		if err != nil {
			return nil, err
		}
		if _, err := sys.AddSatellite(sun, 1, 2, "#88ccff", vecmath.Vec2{X: 100}, 1); err != nil {
			return nil, err
		}
		return sys, nil
	}
}

func TestEnsembleRunsAllSeeds(t *testing.T) {
	e := NewEnsemble(seededBuilder(t), 4, 10)

	results, err := e.Run(context.Background(), Config{Ticks: 20, SampleEvery: 20})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	for i, r := range results {
		if r.TicksRun != 20 {
			t.Errorf("run %d: ticks = %d, want 20", i, r.TicksRun)
		}
		if r.FinalLen != 2 {
			t.Errorf("run %d: final body count = %d, want 2", i, r.FinalLen)
		}
	}
}

func TestEnsembleMetricsPerRun(t *testing.T) {
	e := NewEnsemble(seededBuilder(t), 3, 1)
	e.WithMetrics(func(g float64) []Metric {
		return []Metric{&countingMetric{}}
	})

	results, err := e.Run(context.Background(), Config{Ticks: 10})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, r := range results {
		// Tick 0 plus 10 stepped observations, independent per run.
		if got := r.Metrics["observations"]; got != 11 {
			t.Errorf("run %d: observations = %v, want 11", i, got)
		}
	}
}

func TestEnsembleBuildErrorAborts(t *testing.T) {
	wantErr := errors.New("bad scenario")
	e := NewEnsemble(func(seed int64) (*orbit.System, error) {
		if seed == 2 {
			return nil, wantErr
		}
		return seededBuilder(t)(seed)
	}, 3, 1)

	if _, err := e.Run(context.Background(), Config{Ticks: 5}); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
