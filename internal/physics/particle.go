// Package physics holds the particle and edge-constraint stores and the
// single-pass relaxation solver that keeps a stem chain near its rest shape.
package physics

import (
	"fmt"

	"github.com/Faultbox/stemforge/pkg/math"
)

// ParticleID indexes a ParticleStore. Ids are dense and never reused.
type ParticleID uint32

// ParticleStore holds point positions. Particles live as long as the store.
type ParticleStore struct {
	positions []math.Vec3
	revision  uint64
}

// NewParticleStore returns an empty store.
func NewParticleStore() *ParticleStore {
	return &ParticleStore{}
}

// Add appends a particle and returns its id.
func (s *ParticleStore) Add(pos math.Vec3) ParticleID {
	s.positions = append(s.positions, pos)
	s.revision++
	return ParticleID(len(s.positions) - 1)
}

// Len returns the number of particles.
func (s *ParticleStore) Len() int {
	return len(s.positions)
}

// Has reports whether id names a particle.
func (s *ParticleStore) Has(id ParticleID) bool {
	return int(id) < len(s.positions)
}

// Position returns the position of id.
func (s *ParticleStore) Position(id ParticleID) (math.Vec3, error) {
	if !s.Has(id) {
		return math.Vec3{}, fmt.Errorf("%w: %d", ErrUnknownParticle, id)
	}
	return s.positions[id], nil
}

// SetPosition moves id. The revision advances only when the position changes.
func (s *ParticleStore) SetPosition(id ParticleID, pos math.Vec3) error {
	if !s.Has(id) {
		return fmt.Errorf("%w: %d", ErrUnknownParticle, id)
	}
	if s.positions[id] != pos {
		s.positions[id] = pos
		s.revision++
	}
	return nil
}

// Positions returns a copy of every position, indexed by ParticleID.
func (s *ParticleStore) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(s.positions))
	copy(out, s.positions)
	return out
}

// Revision is a counter bumped whenever a particle is added or moved.
// Compare revisions to detect changes since an earlier point.
func (s *ParticleStore) Revision() uint64 {
	return s.revision
}
