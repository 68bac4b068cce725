package physics

import (
	"fmt"

	"github.com/Faultbox/stemforge/pkg/relation"
)

// ConstraintGraph is the symmetric adjacency between constraints that the
// solver propagates along.
type ConstraintGraph struct {
	store *ConstraintStore
	graph *relation.Graph
}

// NewConstraintGraph returns an empty adjacency over store.
func NewConstraintGraph(store *ConstraintStore) *ConstraintGraph {
	return &ConstraintGraph{store: store, graph: relation.New()}
}

// Link makes a and b adjacent.
func (g *ConstraintGraph) Link(a, b ConstraintID) error {
	for _, id := range [2]ConstraintID{a, b} {
		if !g.store.Has(id) {
			return fmt.Errorf("%w: %d", ErrUnknownConstraint, id)
		}
	}
	return g.graph.Set(relation.Adjacency, relation.ID(a), relation.ID(b))
}

// Adjacent reports whether a and b are linked.
func (g *ConstraintGraph) Adjacent(a, b ConstraintID) bool {
	return g.graph.Has(relation.Adjacency, relation.ID(a), relation.ID(b))
}

// Neighbors returns the constraints linked to id.
func (g *ConstraintGraph) Neighbors(id ConstraintID) []ConstraintID {
	targets := g.graph.Targets(relation.Adjacency, relation.ID(id))
	out := make([]ConstraintID, len(targets))
	for i, t := range targets {
		out[i] = ConstraintID(t)
	}
	return out
}

// Traverse visits every constraint reachable from start, each at most once,
// excluding start. relation.Close stops descending below the visited node.
func (g *ConstraintGraph) Traverse(start ConstraintID, visit func(ConstraintID) relation.Control) {
	g.graph.Traverse(relation.Adjacency, relation.ID(start), func(n relation.ID) relation.Control {
		return visit(ConstraintID(n))
	})
}
