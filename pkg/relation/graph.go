package relation

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrSelfRelation is returned when host and target are the same node.
	ErrSelfRelation = errors.New("relation: node cannot relate to itself")
	// ErrCycle is returned when a tree edge would make a node its own ancestor.
	ErrCycle = errors.New("relation: edge would create a cycle")
	// ErrUnknownKind is returned for a Kind outside the closed set.
	ErrUnknownKind = errors.New("relation: unknown kind")
	// ErrRevisit is returned when a tree traversal reaches a node twice,
	// which means it is reachable from more than one root.
	ErrRevisit = errors.New("relation: node reachable from more than one root")
)

type edges struct {
	up   map[ID][]ID // host -> targets
	down map[ID][]ID // target -> hosts
}

// Graph stores relations of every Kind. The zero value is not usable; call New.
type Graph struct {
	kinds [kindCount]edges
}

// New returns an empty graph.
func New() *Graph {
	g := &Graph{}
	for i := range g.kinds {
		g.kinds[i] = edges{up: make(map[ID][]ID), down: make(map[ID][]ID)}
	}
	return g
}

// Set records host -> target. For tree kinds an existing target of host is
// replaced; for symmetric kinds the reverse edge is recorded too. Setting an
// existing edge is a no-op.
func (g *Graph) Set(kind Kind, host, target ID) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	if host == target {
		return fmt.Errorf("%w: %s %d", ErrSelfRelation, kind, host)
	}
	if g.Has(kind, host, target) {
		return nil
	}

	if kind.Tree() {
		if g.isAncestor(kind, host, target) {
			return fmt.Errorf("%w: %s %d -> %d", ErrCycle, kind, host, target)
		}
		if old, ok := g.Parent(kind, host); ok {
			g.unlink(kind, host, old)
		}
	}

	g.link(kind, host, target)
	if kind.Symmetric() {
		g.link(kind, target, host)
	}
	return nil
}

// Unset removes host -> target (and the reverse for symmetric kinds).
func (g *Graph) Unset(kind Kind, host, target ID) {
	if !kind.valid() {
		return
	}
	g.unlink(kind, host, target)
	if kind.Symmetric() {
		g.unlink(kind, target, host)
	}
}

// Has reports whether host -> target exists.
func (g *Graph) Has(kind Kind, host, target ID) bool {
	if !kind.valid() {
		return false
	}
	return slices.Contains(g.kinds[kind].up[host], target)
}

// Targets returns the nodes host points at. For symmetric kinds these are
// its neighbours. The slice must not be modified.
func (g *Graph) Targets(kind Kind, host ID) []ID {
	if !kind.valid() {
		return nil
	}
	return g.kinds[kind].up[host]
}

// Hosts returns the nodes pointing at target, in insertion order. For tree
// kinds these are its children. The slice must not be modified.
func (g *Graph) Hosts(kind Kind, target ID) []ID {
	if !kind.valid() {
		return nil
	}
	return g.kinds[kind].down[target]
}

// Parent returns the single target of host under a tree kind.
func (g *Graph) Parent(kind Kind, host ID) (ID, bool) {
	t := g.Targets(kind, host)
	if len(t) == 0 {
		return 0, false
	}
	return t[0], true
}

// Roots filters nodes to those without a target under kind, keeping order.
func (g *Graph) Roots(kind Kind, nodes []ID) []ID {
	var roots []ID
	for _, n := range nodes {
		if len(g.Targets(kind, n)) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// isAncestor reports whether a is reachable from b by following targets,
// including a == b.
func (g *Graph) isAncestor(kind Kind, a, b ID) bool {
	seen := make(map[ID]struct{})
	stack := []ID{b}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == a {
			return true
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		stack = append(stack, g.kinds[kind].up[n]...)
	}
	return false
}

func (g *Graph) link(kind Kind, host, target ID) {
	e := &g.kinds[kind]
	e.up[host] = append(e.up[host], target)
	e.down[target] = append(e.down[target], host)
}

func (g *Graph) unlink(kind Kind, host, target ID) {
	e := &g.kinds[kind]
	e.up[host] = remove(e.up[host], target)
	if len(e.up[host]) == 0 {
		delete(e.up, host)
	}
	e.down[target] = remove(e.down[target], host)
	if len(e.down[target]) == 0 {
		delete(e.down, target)
	}
}

func remove(ids []ID, id ID) []ID {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}
