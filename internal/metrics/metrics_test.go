package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/wlldxn/orbitlab/internal/orbit"
	"github.com/wlldxn/orbitlab/internal/vecmath"
)

func twoBodySystem(t *testing.T) *orbit.System {
	t.Helper()
	sys := orbit.New(orbit.Options{Rand: rand.New(rand.NewSource(9))})
	sun, err := sys.AddPrimary(1000, vecmath.Vec2{}, vecmath.Vec2{}, 10, "")
	if err != nil {
		t.Fatalf("AddPrimary: %v", err)
	}
	if _, err := sys.AddSatellite(sun, 1, 1, "", vecmath.Vec2{X: 100}, 1); err != nil {
		t.Fatalf("AddSatellite: %v", err)
	}
	return sys
}

func TestSystemEnergy(t *testing.T) {
	sys := twoBodySystem(t)
	bodies := sys.Bodies()

	// KE = 0.5*m*v^2 for the satellite only; PE = -G*M*m/r.
	sat := bodies[1]
	wantKE := 0.5 * sat.Mass * sat.Vel.MagSq()
	wantPE := -sys.G() * 1000 * 1 / 100.0

	got := SystemEnergy(bodies, sys.G())
	if math.Abs(got-(wantKE+wantPE)) > 1e-9 {
		t.Errorf("energy = %v, want %v", got, wantKE+wantPE)
	}
}

func TestEnergyDriftCircularOrbit(t *testing.T) {
	sys := twoBodySystem(t)
	drift := NewEnergyDrift(sys.G())
	drift.Observe(sys.Bodies(), 0)

	for i := 1; i <= 600; i++ {
		sys.Tick()
		drift.Observe(sys.Bodies(), i)
	}

	if drift.Value() > 0.05 {
		t.Errorf("energy drift = %v over a circular orbit, want < 0.05", drift.Value())
	}
}

func TestAngularMomentumTracksSnapshot(t *testing.T) {
	sys := twoBodySystem(t)
	am := NewAngularMomentum()
	am.Observe(sys.Bodies(), 0)

	sat := sys.Bodies()[1]
	want := sat.Mass * sat.Pos.Cross(sat.Vel) // primary is at rest
	if math.Abs(am.Value()-want) > 1e-9 {
		t.Errorf("L = %v, want %v", am.Value(), want)
	}
}

func TestEccentricityDrift(t *testing.T) {
	sys := twoBodySystem(t)
	sat := sys.Bodies()[1]

	ed := NewEccentricityDrift(sat.ID)
	ed.Observe(sys.Bodies(), 0)
	for i := 1; i <= 300; i++ {
		sys.Tick()
		ed.Observe(sys.Bodies(), i)
	}

	if ed.Value() > 0.1 {
		t.Errorf("eccentricity drift = %v, want < 0.1 on a circular setup", ed.Value())
	}

	// Unknown bodies are ignored, not an error.
	missing := NewEccentricityDrift(orbit.BodyID(999))
	missing.Observe(sys.Bodies(), 0)
	if missing.Value() != 0 {
		t.Errorf("missing body drift = %v, want 0", missing.Value())
	}
}

func TestResetClearsState(t *testing.T) {
	sys := twoBodySystem(t)

	te := NewTotalEnergy(sys.G())
	te.Observe(sys.Bodies(), 0)
	if te.Value() == 0 {
		t.Fatal("expected nonzero energy before reset")
	}
	te.Reset()
	if te.Value() != 0 {
		t.Errorf("energy after reset = %v", te.Value())
	}
}
