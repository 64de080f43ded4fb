package metrics

import (
	"math"

	"github.com/wlldxn/orbitlab/internal/orbit"
)

// AngularMomentum tracks the latest total angular momentum about the origin,
// L = sum m * (x*vy - y*vx).
type AngularMomentum struct {
	name string
	last float64
}

func NewAngularMomentum() *AngularMomentum {
	return &AngularMomentum{name: "angular_momentum"}
}

func (a *AngularMomentum) Name() string { return a.name }

func (a *AngularMomentum) Observe(bodies []orbit.BodyView, tick int) {
	L := 0.0
	for _, b := range bodies {
		L += b.Mass * b.Pos.Cross(b.Vel)
	}
	a.last = L
}

func (a *AngularMomentum) Value() float64 { return a.last }

func (a *AngularMomentum) Reset() { a.last = 0 }

// EccentricityDrift follows one body and records the largest absolute
// deviation of its eccentricity from the first observed value. Disappears
// quietly if the body is removed mid-run.
type EccentricityDrift struct {
	name     string
	id       orbit.BodyID
	initial  float64
	maxDrift float64
	samples  int
}

func NewEccentricityDrift(id orbit.BodyID) *EccentricityDrift {
	return &EccentricityDrift{name: "eccentricity_drift", id: id}
}

func (e *EccentricityDrift) Name() string { return e.name }

func (e *EccentricityDrift) Observe(bodies []orbit.BodyView, tick int) {
	for _, b := range bodies {
		if b.ID != e.id {
			continue
		}
		if e.samples == 0 {
			e.initial = b.Ecc
		}
		e.samples++
		e.maxDrift = math.Max(e.maxDrift, math.Abs(b.Ecc-e.initial))
		return
	}
}

func (e *EccentricityDrift) Value() float64 { return e.maxDrift }

func (e *EccentricityDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
