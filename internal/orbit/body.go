package orbit

import "github.com/wlldxn/orbitlab/internal/vecmath"

// BodyID is a stable handle for a body. IDs are assigned in insertion order
// starting at 1 and are never reused within a System, so a handle held by
// one body stays valid when other bodies are removed.
type BodyID int

// None marks a body that orbits nothing (a primary).
const None BodyID = 0

// Body is the mutable simulation entity. Presentation code never sees it
// directly; it reads BodyView snapshots instead.
type Body struct {
	ID   BodyID
	Mass float64

	Pos vecmath.Vec2
	Vel vecmath.Vec2
	Acc vecmath.Vec2

	// Presentation attributes, carried but never read by the physics.
	Size  float64
	Color string

	// Ref is the body the orbital elements are computed against. None for
	// a primary. Never equals ID.
	Ref BodyID

	// Derived orbital state, recomputed every tick while Ref is set. Mu is
	// taken from the current masses each time, not cached at construction.
	EccVec    vecmath.Vec2
	Ecc       float64
	SemiMajor float64
	SemiMinor float64
	Mu        float64

	// EscapeTimer counts down while the orbit is unbound and is reset to
	// the configured budget whenever it binds again.
	EscapeTimer int
}

// BodyView is the read-only projection of a body handed to presentation and
// analysis code between ticks.
type BodyView struct {
	ID    BodyID
	Mass  float64
	Pos   vecmath.Vec2
	Vel   vecmath.Vec2
	Size  float64
	Color string
	Ref   BodyID

	EccVec    vecmath.Vec2
	Ecc       float64
	SemiMajor float64
	SemiMinor float64
	Mu        float64

	EscapeTimer int
}

func (b *Body) view() BodyView {
	return BodyView{
		ID:          b.ID,
		Mass:        b.Mass,
		Pos:         b.Pos,
		Vel:         b.Vel,
		Size:        b.Size,
		Color:       b.Color,
		Ref:         b.Ref,
		EccVec:      b.EccVec,
		Ecc:         b.Ecc,
		SemiMajor:   b.SemiMajor,
		SemiMinor:   b.SemiMinor,
		Mu:          b.Mu,
		EscapeTimer: b.EscapeTimer,
	}
}
