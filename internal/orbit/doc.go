// Package orbit implements a 2-D gravitational sandbox: direct N-body force
// accumulation, symplectic Euler integration, and per-body Keplerian orbital
// elements relative to a dynamically chosen reference body.
//
// The central type is [System], which owns the mutable body set:
//
//   - [System.AddPrimary]: insert a free body that orbits nothing
//   - [System.AddSatellite]: insert a body on a near-circular orbit around
//     an existing one
//   - [System.Tick]: advance the simulation by one discrete step
//   - [System.Bodies]: read-only snapshots for presentation code
//
// Bodies are identified by stable [BodyID] handles that survive removal of
// other bodies. A satellite whose orbit becomes unbound (eccentricity >= 1)
// is re-parented to whichever body binds it best; if nothing does, an escape
// countdown eventually removes it once it has also left the viewport.
//
// # Thread Safety
//
// System is NOT thread-safe. A tick runs to completion before any reader
// observes state; presentation collaborators read snapshots between ticks.
package orbit
