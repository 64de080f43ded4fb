package orbit

import "github.com/wlldxn/orbitlab/internal/vecmath"

// applyGravity accumulates pairwise gravitational acceleration for every
// body from the tick-start positions of all others. It must finish for the
// whole set before integrate runs; interleaving the two passes would make
// the result depend on iteration order.
func (s *System) applyGravity() {
	for _, id := range s.order {
		b := s.bodies[id]
		b.Acc = vecmath.Vec2{}

		for _, oid := range s.order {
			if oid == id {
				continue
			}
			o := s.bodies[oid]

			d := o.Pos.Sub(b.Pos)
			r2 := d.MagSq()
			if r2 == 0 {
				// Coincident pair: zero contribution, not NaN.
				continue
			}
			force := s.opts.G * b.Mass * o.Mass / r2
			b.Acc = b.Acc.Add(d.WithMag(force / b.Mass))
		}
	}
}

// integrate applies one symplectic Euler step. The tick is the physics time
// unit, so no dt appears here and a fixed tick sequence is reproducible.
func (s *System) integrate() {
	for _, id := range s.order {
		b := s.bodies[id]
		b.Vel = b.Vel.Add(b.Acc)
		b.Pos = b.Pos.Add(b.Vel)
	}
}
