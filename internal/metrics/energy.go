package metrics

import (
	"math"

	"github.com/wlldxn/orbitlab/internal/orbit"
)

// TotalEnergy tracks the latest kinetic-plus-potential energy of the body
// set under the gravitational constant it was built with.
type TotalEnergy struct {
	name string
	g    float64
	last float64
}

func NewTotalEnergy(g float64) *TotalEnergy {
	return &TotalEnergy{name: "energy", g: g}
}

func (e *TotalEnergy) Name() string { return e.name }

func (e *TotalEnergy) Observe(bodies []orbit.BodyView, tick int) {
	e.last = SystemEnergy(bodies, e.g)
}

func (e *TotalEnergy) Value() float64 { return e.last }

func (e *TotalEnergy) Reset() { e.last = 0 }

// EnergyDrift tracks the maximum relative deviation of the total energy
// from its value at the first observation. A regression guard for the
// integration order: interleaving the force and integration passes shows up
// here immediately.
type EnergyDrift struct {
	name     string
	g        float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", g: g}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []orbit.BodyView, tick int) {
	energy := SystemEnergy(bodies, e.g)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// SystemEnergy computes KE + PE over the snapshot. Coincident pairs are
// skipped the same way the force pass skips them.
func SystemEnergy(bodies []orbit.BodyView, g float64) float64 {
	ke := 0.0
	pe := 0.0

	for i, b := range bodies {
		ke += 0.5 * b.Mass * b.Vel.MagSq()

		for j := i + 1; j < len(bodies); j++ {
			o := bodies[j]
			r := o.Pos.Sub(b.Pos).Mag()
			if r == 0 {
				continue
			}
			pe -= g * b.Mass * o.Mass / r
		}
	}

	return ke + pe
}
