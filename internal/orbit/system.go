package orbit

import (
	"math"
	"math/rand"

	"github.com/wlldxn/orbitlab/internal/vecmath"
)

// Defaults for Options fields left at zero.
const (
	DefaultG                  = 0.1
	DefaultEscapeBudget       = 100
	DefaultViewportHalfExtent = 800.0
	DefaultReparentThreshold  = 0.1
)

// Options configures a System. Zero values fall back to the defaults above.
type Options struct {
	// G is the gravitational constant.
	G float64

	// ViewportHalfExtent is the half-size of the region a body must leave
	// (in both axes) before an escaped body is eligible for removal.
	ViewportHalfExtent float64

	// EscapeBudget is how many consecutive unbound ticks a body survives
	// before removal is considered.
	EscapeBudget int

	// ReparentThreshold is the eccentricity below which the reference
	// search stops early and accepts a candidate.
	ReparentThreshold float64

	// Rand drives the satellite velocity-sign choice. Inject a seeded
	// source for deterministic replays.
	Rand *rand.Rand
}

// System owns the body set. Insertion order is the iteration order for every
// pass, which makes ticks deterministic given a fixed insertion sequence.
type System struct {
	opts   Options
	order  []BodyID
	bodies map[BodyID]*Body
	nextID BodyID
}

func New(opts Options) *System {
	if opts.G == 0 {
		opts.G = DefaultG
	}
	if opts.ViewportHalfExtent == 0 {
		opts.ViewportHalfExtent = DefaultViewportHalfExtent
	}
	if opts.EscapeBudget == 0 {
		opts.EscapeBudget = DefaultEscapeBudget
	}
	if opts.ReparentThreshold == 0 {
		opts.ReparentThreshold = DefaultReparentThreshold
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	return &System{
		opts:   opts,
		bodies: make(map[BodyID]*Body),
		nextID: 1,
	}
}

// G reports the gravitational constant the system was built with.
func (s *System) G() float64 { return s.opts.G }

func (s *System) insert(b *Body) BodyID {
	b.ID = s.nextID
	s.nextID++
	s.bodies[b.ID] = b
	s.order = append(s.order, b.ID)
	return b.ID
}

// AddPrimary inserts a free body with the given state. It carries no orbital
// elements until something else is measured against it.
func (s *System) AddPrimary(mass float64, pos, vel vecmath.Vec2, size float64, color string) (BodyID, error) {
	if mass <= 0 {
		return None, ErrInvalidMass
	}
	b := &Body{
		Mass:        mass,
		Pos:         pos,
		Vel:         vel,
		Size:        size,
		Color:       color,
		Ref:         None,
		EscapeTimer: s.opts.EscapeBudget,
	}
	return s.insert(b), nil
}

// AddSatellite inserts a body at pos orbiting ref. Its speed comes from the
// circular-orbit relation v = sqrt(mu/r) scaled by eccMod (1 = circular),
// directed a quarter turn from the ref->satellite vector with the turn sign
// drawn from the injected random source, on top of the reference body's own
// velocity. Orbital elements are computed immediately so the new body is
// consistent before the next tick.
func (s *System) AddSatellite(ref BodyID, mass, size float64, color string, pos vecmath.Vec2, eccMod float64) (BodyID, error) {
	parent, ok := s.bodies[ref]
	if !ok {
		return None, ErrUnknownBody
	}
	if mass <= 0 {
		return None, ErrInvalidMass
	}

	rel := pos.Sub(parent.Pos)
	r := rel.Mag()
	if r == 0 {
		return None, ErrDegenerateGeometry
	}

	mu := s.opts.G * (parent.Mass + mass)
	speed := math.Sqrt(mu/r) * eccMod

	quarter := math.Pi / 2
	if s.opts.Rand.Intn(2) == 0 {
		quarter = -quarter
	}
	vel := parent.Vel.Add(rel.Rotate(quarter).WithMag(speed))

	b := &Body{
		Mass:        mass,
		Pos:         pos,
		Vel:         vel,
		Size:        size,
		Color:       color,
		Ref:         ref,
		EscapeTimer: s.opts.EscapeBudget,
	}
	id := s.insert(b)
	s.computeElements(b)
	return id, nil
}

// Tick advances the simulation by one step: force accumulation against
// tick-start positions, integration, orbital-element recomputation with
// re-parenting, then removal of bodies that have permanently escaped.
func (s *System) Tick() {
	s.applyGravity()
	s.integrate()

	var removed []BodyID
	for _, id := range s.order {
		b := s.bodies[id]
		if b.Ref == None {
			continue
		}
		ecc := s.computeElements(b)
		if ecc >= 1 {
			s.findBestReference(b, ecc)
		}
		if s.updateLifecycle(b) {
			removed = append(removed, id)
		}
	}

	if len(removed) > 0 {
		s.compact(removed)
	}
}

// SetMass edits a body's mass between ticks. Derived elements pick the new
// value up on the next recomputation since Mu is never cached.
func (s *System) SetMass(id BodyID, mass float64) error {
	b, ok := s.bodies[id]
	if !ok {
		return ErrUnknownBody
	}
	if mass <= 0 {
		return ErrInvalidMass
	}
	b.Mass = mass
	return nil
}

// Len reports the number of active bodies.
func (s *System) Len() int { return len(s.order) }

// Bodies returns read-only snapshots in insertion order.
func (s *System) Bodies() []BodyView {
	views := make([]BodyView, 0, len(s.order))
	for _, id := range s.order {
		views = append(views, s.bodies[id].view())
	}
	return views
}

// Body returns a snapshot of a single body.
func (s *System) Body(id BodyID) (BodyView, bool) {
	b, ok := s.bodies[id]
	if !ok {
		return BodyView{}, false
	}
	return b.view(), true
}

// RemoveAllExceptPrimary drops every orbiting body, keeping only primaries.
// Used by the "clear" control.
func (s *System) RemoveAllExceptPrimary() {
	kept := s.order[:0]
	for _, id := range s.order {
		if s.bodies[id].Ref == None {
			kept = append(kept, id)
		} else {
			delete(s.bodies, id)
		}
	}
	s.order = kept
}

// compact removes the marked bodies after a tick's lifecycle pass. A survivor
// whose reference was removed inherits the removed body's own reference,
// walking up until a live body (or None) is found, so handles held by live
// bodies never dangle.
func (s *System) compact(removed []BodyID) {
	inherited := make(map[BodyID]BodyID, len(removed))
	for _, id := range removed {
		inherited[id] = s.bodies[id].Ref
		delete(s.bodies, id)
	}

	kept := s.order[:0]
	for _, id := range s.order {
		if _, gone := inherited[id]; !gone {
			kept = append(kept, id)
		}
	}
	s.order = kept

	for _, id := range s.order {
		b := s.bodies[id]
		// Bounded walk: mutually-referencing removed bodies would loop.
		for hops := 0; b.Ref != None && hops <= len(inherited); hops++ {
			if _, live := s.bodies[b.Ref]; live {
				break
			}
			next, known := inherited[b.Ref]
			if !known || next == b.ID {
				next = None
			}
			b.Ref = next
		}
		if b.Ref != None {
			if _, live := s.bodies[b.Ref]; !live {
				b.Ref = None
			}
		}
	}
}
