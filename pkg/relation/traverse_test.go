package relation

import (
	"errors"
	"slices"
	"testing"
)

//	0
//	├── 1
//	│   └── 3
//	└── 2
//	5 (second root)
func buildForest(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, e := range [][2]ID{{1, 0}, {2, 0}, {3, 1}} {
		if err := g.Set(AxisUp, e[0], e[1]); err != nil {
			t.Fatalf("Set %v: %v", e, err)
		}
	}
	return g
}

func TestTraverseTreeOrder(t *testing.T) {
	g := buildForest(t)

	var order []ID
	depth := map[ID]int{}
	parents := map[ID]ID{}
	err := g.TraverseTree(AxisUp, []ID{0, 5}, func(s Step) Control {
		order = append(order, s.Node)
		depth[s.Node] = s.Depth
		if s.HasParent {
			parents[s.Node] = s.Parent
		}
		return Continue
	})
	if err != nil {
		t.Fatalf("TraverseTree: %v", err)
	}

	if want := []ID{0, 1, 3, 2, 5}; !slices.Equal(order, want) {
		t.Errorf("order: got %v, want %v", order, want)
	}
	if depth[3] != 2 || parents[3] != 1 {
		t.Errorf("node 3: got depth %d parent %d, want 2 and 1", depth[3], parents[3])
	}
	if _, ok := parents[5]; ok {
		t.Error("second root should have no parent")
	}
}

func TestTraverseTreeClose(t *testing.T) {
	g := buildForest(t)

	var order []ID
	_ = g.TraverseTree(AxisUp, []ID{0}, func(s Step) Control {
		order = append(order, s.Node)
		if s.Node == 1 {
			return Close
		}
		return Continue
	})
	if want := []ID{0, 1, 2}; !slices.Equal(order, want) {
		t.Errorf("order: got %v, want %v", order, want)
	}
}

func TestTraverseTreeRevisit(t *testing.T) {
	g := buildForest(t)
	err := g.TraverseTree(AxisUp, []ID{0, 1}, func(Step) Control { return Continue })
	if !errors.Is(err, ErrRevisit) {
		t.Errorf("got %v, want ErrRevisit", err)
	}
}

func TestTraverseCyclic(t *testing.T) {
	g := New()
	// Triangle 0-1-2 plus a tail 2-3.
	for _, e := range [][2]ID{{0, 1}, {1, 2}, {2, 0}, {2, 3}} {
		if err := g.Set(Adjacency, e[0], e[1]); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	counts := map[ID]int{}
	g.Traverse(Adjacency, 0, func(n ID) Control {
		counts[n]++
		return Continue
	})

	if counts[0] != 0 {
		t.Errorf("start visited %d times, want 0", counts[0])
	}
	for _, n := range []ID{1, 2, 3} {
		if counts[n] != 1 {
			t.Errorf("node %d visited %d times, want 1", n, counts[n])
		}
	}
}

func TestTraverseClose(t *testing.T) {
	g := New()
	// Chain 0-1-2-3.
	for _, e := range [][2]ID{{0, 1}, {1, 2}, {2, 3}} {
		_ = g.Set(Adjacency, e[0], e[1])
	}

	var visited []ID
	g.Traverse(Adjacency, 0, func(n ID) Control {
		visited = append(visited, n)
		if n == 2 {
			return Close
		}
		return Continue
	})
	if want := []ID{1, 2}; !slices.Equal(visited, want) {
		t.Errorf("visited: got %v, want %v", visited, want)
	}
}
