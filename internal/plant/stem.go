// Package plant grows stem hierarchies and owns the per-tick loop that
// relaxes the plant's particles and regenerates its mesh.
package plant

import (
	"errors"
	"fmt"

	"github.com/Faultbox/stemforge/pkg/math"
	"github.com/Faultbox/stemforge/pkg/relation"
)

var (
	// ErrUnknownStem is returned for a stem id outside the hierarchy.
	ErrUnknownStem = errors.New("plant: unknown stem")
	// ErrInvalidStem is returned for a stem with non-positive size or length.
	ErrInvalidStem = errors.New("plant: stem size and length must be positive")
)

// StemID indexes a Hierarchy. Dense, never reused.
type StemID uint32

// Stem is one tube segment.
type Stem struct {
	Size     float32   // ring radius
	Length   float32   // distance from the parent stem along the up axis
	Rotation math.Quat // local rotation relative to the parent
}

// Simple returns a unit stem with no rotation.
func Simple() Stem {
	return Stem{Size: 1, Length: 1, Rotation: math.QuatIdentity()}
}

// WithSize returns s with the ring radius set.
func (s Stem) WithSize(size float32) Stem {
	s.Size = size
	return s
}

// WithLength returns s with the length set.
func (s Stem) WithLength(length float32) Stem {
	s.Length = length
	return s
}

// WithRotation returns s with the local rotation set.
func (s Stem) WithRotation(q math.Quat) Stem {
	s.Rotation = q
	return s
}

func (s Stem) validate() error {
	if !(s.Size > 0) || !(s.Length > 0) {
		return fmt.Errorf("%w: size %v length %v", ErrInvalidStem, s.Size, s.Length)
	}
	return nil
}

// Hierarchy is a forest of stems linked child -> parent by AxisUp.
type Hierarchy struct {
	stems []Stem
	graph *relation.Graph
}

// NewHierarchy returns an empty forest.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{graph: relation.New()}
}

// AddRoot adds a stem with no parent.
func (h *Hierarchy) AddRoot(s Stem) (StemID, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	h.stems = append(h.stems, s)
	return StemID(len(h.stems) - 1), nil
}

// AddChild adds a stem growing from parent.
func (h *Hierarchy) AddChild(parent StemID, s Stem) (StemID, error) {
	if !h.Has(parent) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStem, parent)
	}
	id, err := h.AddRoot(s)
	if err != nil {
		return 0, err
	}
	if err := h.graph.Set(relation.AxisUp, relation.ID(id), relation.ID(parent)); err != nil {
		return 0, err
	}
	return id, nil
}

// SetParent re-parents child under parent. Cycles are rejected.
func (h *Hierarchy) SetParent(child, parent StemID) error {
	for _, id := range [2]StemID{child, parent} {
		if !h.Has(id) {
			return fmt.Errorf("%w: %d", ErrUnknownStem, id)
		}
	}
	return h.graph.Set(relation.AxisUp, relation.ID(child), relation.ID(parent))
}

// Has reports whether id names a stem.
func (h *Hierarchy) Has(id StemID) bool {
	return int(id) < len(h.stems)
}

// Len returns the number of stems.
func (h *Hierarchy) Len() int {
	return len(h.stems)
}

// Stem returns the stem for id.
func (h *Hierarchy) Stem(id StemID) (Stem, error) {
	if !h.Has(id) {
		return Stem{}, fmt.Errorf("%w: %d", ErrUnknownStem, id)
	}
	return h.stems[id], nil
}

// Parent returns the parent of id, if any.
func (h *Hierarchy) Parent(id StemID) (StemID, bool) {
	p, ok := h.graph.Parent(relation.AxisUp, relation.ID(id))
	return StemID(p), ok
}

// Children returns the stems growing from id, in insertion order.
func (h *Hierarchy) Children(id StemID) []StemID {
	hosts := h.graph.Hosts(relation.AxisUp, relation.ID(id))
	out := make([]StemID, len(hosts))
	for i, n := range hosts {
		out[i] = StemID(n)
	}
	return out
}

// Roots returns the stems without a parent, in id order.
func (h *Hierarchy) Roots() []StemID {
	var roots []StemID
	for i := range h.stems {
		if _, ok := h.Parent(StemID(i)); !ok {
			roots = append(roots, StemID(i))
		}
	}
	return roots
}

// Visit is one stem reached during traversal.
type Visit struct {
	ID        StemID
	Stem      Stem
	Parent    StemID
	HasParent bool
	Depth     int
}

// Traverse walks every tree depth-first from its root, parents before
// children. Returning relation.Close skips the stem's subtree.
func (h *Hierarchy) Traverse(visit func(Visit) relation.Control) error {
	roots := h.Roots()
	nodes := make([]relation.ID, len(roots))
	for i, r := range roots {
		nodes[i] = relation.ID(r)
	}
	return h.graph.TraverseTree(relation.AxisUp, nodes, func(s relation.Step) relation.Control {
		return visit(Visit{
			ID:        StemID(s.Node),
			Stem:      h.stems[s.Node],
			Parent:    StemID(s.Parent),
			HasParent: s.HasParent,
			Depth:     s.Depth,
		})
	})
}

// Order returns every stem id in traversal order.
func (h *Hierarchy) Order() ([]StemID, error) {
	order := make([]StemID, 0, len(h.stems))
	err := h.Traverse(func(v Visit) relation.Control {
		order = append(order, v.ID)
		return relation.Continue
	})
	return order, err
}
