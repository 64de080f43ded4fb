package sim

import (
	"context"
	"math/rand"
	"testing"

	"github.com/wlldxn/orbitlab/internal/orbit"
	"github.com/wlldxn/orbitlab/internal/vecmath"
)

func buildSystem(t *testing.T) *orbit.System {
	t.Helper()
	sys := orbit.New(orbit.Options{Rand: rand.New(rand.NewSource(5))})
	sun, err := sys.AddPrimary(1000, vecmath.Vec2{}, vecmath.Vec2{}, 10, "#ffcc00")
	if err != nil {
		t.Fatalf("AddPrimary: %v", err)
	}
	if _, err := sys.AddSatellite(sun, 1, 2, "#88ccff", vecmath.Vec2{X: 100}, 1); err != nil {
		t.Fatalf("AddSatellite: %v", err)
	}
	return sys
}

type countingMetric struct {
	observations int
}

func (c *countingMetric) Name() string                      { return "observations" }
func (c *countingMetric) Observe(_ []orbit.BodyView, _ int) { c.observations++ }
func (c *countingMetric) Value() float64                    { return float64(c.observations) }
func (c *countingMetric) Reset()                            { c.observations = 0 }

func TestRunnerSampling(t *testing.T) {
	r := New(buildSystem(t))

	result, err := r.Run(context.Background(), Config{Ticks: 100, SampleEvery: 10})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.TicksRun != 100 {
		t.Errorf("ticks run = %d, want 100", result.TicksRun)
	}
	// Tick 0 plus one sample per 10 ticks.
	if len(result.Samples) != 11 {
		t.Errorf("samples = %d, want 11", len(result.Samples))
	}
	if result.Samples[1].Tick != 10 {
		t.Errorf("first retained tick = %d, want 10", result.Samples[1].Tick)
	}
	if result.FinalLen != 2 {
		t.Errorf("final body count = %d, want 2", result.FinalLen)
	}
}

func TestRunnerMetrics(t *testing.T) {
	r := New(buildSystem(t))
	m := &countingMetric{observations: 99} // Reset must clear this
	r.AddMetric(m)

	result, err := r.Run(context.Background(), Config{Ticks: 50})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Tick 0 plus 50 stepped observations.
	if got := result.Metrics["observations"]; got != 51 {
		t.Errorf("observations = %v, want 51", got)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := New(buildSystem(t))
	for _, ticks := range []int{0, -5} {
		if _, err := r.Run(context.Background(), Config{Ticks: ticks}); err == nil {
			t.Errorf("ticks=%d: expected error", ticks)
		}
	}
}

func TestRunnerCancellation(t *testing.T) {
	r := New(buildSystem(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, Config{Ticks: 1000})
	if err == nil {
		t.Fatal("expected context error")
	}
	if result == nil {
		t.Fatal("partial result expected on cancellation")
	}
	if result.TicksRun != 0 {
		t.Errorf("pre-canceled context should stop before the first tick, ran %d", result.TicksRun)
	}
}

type recordingObserver struct {
	ticks []int
}

func (r *recordingObserver) OnTick(_ []orbit.BodyView, tick int) {
	r.ticks = append(r.ticks, tick)
}

func TestRunnerObservers(t *testing.T) {
	r := New(buildSystem(t))
	obs := &recordingObserver{}
	r.AddObserver(obs)

	if _, err := r.Run(context.Background(), Config{Ticks: 3}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(obs.ticks) != 3 || obs.ticks[0] != 1 || obs.ticks[2] != 3 {
		t.Errorf("observer ticks = %v, want [1 2 3]", obs.ticks)
	}
}
