package orbit

import (
	"math"

	"github.com/wlldxn/orbitlab/internal/vecmath"
)

// computeElements recomputes b's Keplerian elements relative to its current
// reference and returns the eccentricity. A primary reports zero elements.
//
// The velocity entering the eccentricity vector is the body's raw velocity,
// not its velocity relative to the reference. That makes the derived ellipse
// drift as the reference itself moves; the visible "breathing" is a kept
// behavior, not an oversight.
func (s *System) computeElements(b *Body) float64 {
	if b.Ref == None {
		b.EccVec = vecmath.Vec2{}
		b.Ecc = 0
		b.SemiMajor = 0
		b.SemiMinor = 0
		b.Mu = 0
		return 0
	}

	ref := s.bodies[b.Ref]
	r := b.Pos.Sub(ref.Pos)
	v := b.Vel

	// Mu from the current masses each call; masses may be edited between
	// ticks.
	b.Mu = s.opts.G * (ref.Mass + b.Mass)

	// Planar specific angular momentum is a scalar; v x h collapses to a
	// perpendicular scaling of v.
	h := r.Cross(v)
	vh := vecmath.Vec2{X: v.Y * h, Y: -v.X * h}

	b.EccVec = vh.Scale(1 / b.Mu).Sub(r.Normalize())
	b.Ecc = b.EccVec.Mag()

	// Parabolic orbits drive the denominator to zero; the resulting Inf is
	// confined to the derived fields and never reaches Pos or Vel.
	rm := r.Mag()
	b.SemiMajor = -(b.Mu * rm) / (rm*v.MagSq() - 2*b.Mu)

	// max guards the sqrt against tiny negatives when Ecc hovers at 1.
	b.SemiMinor = b.SemiMajor * math.Sqrt(math.Max(0, 1-b.Ecc*b.Ecc))

	return b.Ecc
}
