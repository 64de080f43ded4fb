package orbit

import "math"

// findBestReference looks for a body that binds b better than its current
// reference does. Candidates are tried in insertion order, excluding b and
// the original reference; the first strictly lower eccentricity wins a tie,
// and the search stops early at the configured "good enough" threshold. The
// switch is committed only if the best candidate actually binds (ecc < 1);
// otherwise the original reference is restored, since swapping one unbound
// reference for another is meaningless.
func (s *System) findBestReference(b *Body, current float64) {
	original := b.Ref
	best := original
	bestEcc := current

	for _, id := range s.order {
		if id == b.ID || id == original {
			continue
		}
		b.Ref = id
		ecc := s.computeElements(b)
		if ecc < bestEcc {
			best = id
			bestEcc = ecc
			if ecc < s.opts.ReparentThreshold {
				break
			}
		}
	}

	if bestEcc < 1 {
		b.Ref = best
	} else {
		b.Ref = original
	}
}

// updateLifecycle recomputes the elements under the committed reference and
// runs the escape state machine. It reports whether the body should be
// removed this tick. Removal needs both an exhausted timer and a position
// beyond the viewport half-extent in both axes.
func (s *System) updateLifecycle(b *Body) bool {
	if s.computeElements(b) < 1 {
		b.EscapeTimer = s.opts.EscapeBudget
		return false
	}

	b.EscapeTimer--
	if b.EscapeTimer > 0 {
		return false
	}
	half := s.opts.ViewportHalfExtent
	return math.Abs(b.Pos.X) > half && math.Abs(b.Pos.Y) > half
}
