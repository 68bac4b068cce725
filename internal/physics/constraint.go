package physics

import (
	"fmt"

	"github.com/Faultbox/stemforge/pkg/math"
)

// DefaultCompliance is used by constructors that take no compliance.
const DefaultCompliance float32 = 0.1

// ConstraintID indexes a ConstraintStore. Ids are dense and never reused.
type ConstraintID uint32

// EdgeConstraint pulls two particles toward a rest distance. Immutable once
// built; stress is derived from the current particle positions.
type EdgeConstraint struct {
	A, B       ParticleID
	RestLength float32
	Compliance float32
}

// NewEdgeConstraint validates and returns a constraint.
func NewEdgeConstraint(a, b ParticleID, restLength, compliance float32) (EdgeConstraint, error) {
	if a == b {
		return EdgeConstraint{}, fmt.Errorf("%w: %d", ErrSameEndpoint, a)
	}
	if !(restLength > 0) {
		return EdgeConstraint{}, fmt.Errorf("%w: got %v", ErrInvalidRestLength, restLength)
	}
	if !(compliance > 0 && compliance <= 1) {
		return EdgeConstraint{}, fmt.Errorf("%w: got %v", ErrInvalidCompliance, compliance)
	}
	return EdgeConstraint{A: a, B: b, RestLength: restLength, Compliance: compliance}, nil
}

// NewEdgeConstraintFromPositions builds a constraint whose rest length is the
// current distance between the endpoints, with DefaultCompliance.
func NewEdgeConstraintFromPositions(a, b ParticleID, pa, pb math.Vec3) (EdgeConstraint, error) {
	return NewEdgeConstraint(a, b, pa.Distance(pb), DefaultCompliance)
}

// Stress returns ((|b-a| - rest) / rest) * compliance. Positive when
// stretched, negative when compressed.
func (c EdgeConstraint) Stress(a, b math.Vec3) float32 {
	d := a.Distance(b)
	return (d - c.RestLength) / c.RestLength * c.Compliance
}

// DistanceWithStress inverts Stress: the endpoint distance at which the
// constraint carries target stress.
func (c EdgeConstraint) DistanceWithStress(target float32) float32 {
	return c.RestLength * (1 + target/c.Compliance)
}

// Solve returns endpoint positions moved symmetrically along their axis so the
// constraint carries target stress. The midpoint is preserved. Coincident
// endpoints have no axis and are returned unchanged.
func (c EdgeConstraint) Solve(a, b math.Vec3, target float32) (math.Vec3, math.Vec3) {
	d := a.Distance(b)
	if d == 0 {
		return a, b
	}
	delta := c.DistanceWithStress(target) - d
	dir := b.Sub(a).Scale(1 / d)
	half := dir.Scale(delta * 0.5)
	return a.Sub(half), b.Add(half)
}

// ConstraintStore holds edge constraints.
type ConstraintStore struct {
	constraints []EdgeConstraint
}

// NewConstraintStore returns an empty store.
func NewConstraintStore() *ConstraintStore {
	return &ConstraintStore{}
}

// Add appends c and returns its id. Endpoints are checked against particles.
func (s *ConstraintStore) Add(particles *ParticleStore, c EdgeConstraint) (ConstraintID, error) {
	for _, p := range [2]ParticleID{c.A, c.B} {
		if !particles.Has(p) {
			return 0, fmt.Errorf("%w: %d", ErrUnknownParticle, p)
		}
	}
	s.constraints = append(s.constraints, c)
	return ConstraintID(len(s.constraints) - 1), nil
}

// Get returns the constraint for id.
func (s *ConstraintStore) Get(id ConstraintID) (EdgeConstraint, error) {
	if !s.Has(id) {
		return EdgeConstraint{}, fmt.Errorf("%w: %d", ErrUnknownConstraint, id)
	}
	return s.constraints[id], nil
}

// Has reports whether id names a constraint.
func (s *ConstraintStore) Has(id ConstraintID) bool {
	return int(id) < len(s.constraints)
}

// Len returns the number of constraints.
func (s *ConstraintStore) Len() int {
	return len(s.constraints)
}

// All returns the constraints indexed by ConstraintID. Do not modify.
func (s *ConstraintStore) All() []EdgeConstraint {
	return s.constraints
}

// StressOf evaluates the stress of id against the particle store.
func (s *ConstraintStore) StressOf(particles *ParticleStore, id ConstraintID) (float32, error) {
	c, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	a, b, err := endpoints(particles, c)
	if err != nil {
		return 0, err
	}
	return c.Stress(a, b), nil
}

func endpoints(particles *ParticleStore, c EdgeConstraint) (math.Vec3, math.Vec3, error) {
	a, err := particles.Position(c.A)
	if err != nil {
		return a, a, err
	}
	b, err := particles.Position(c.B)
	if err != nil {
		return a, b, err
	}
	return a, b, nil
}
