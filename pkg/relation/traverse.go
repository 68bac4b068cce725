package relation

import "fmt"

// Step describes one node reached by TraverseTree.
type Step struct {
	Node      ID
	Parent    ID
	HasParent bool
	Depth     int
}

// TraverseTree walks a tree kind depth-first from each root, visiting every
// parent before its children and children in insertion order. Close skips the
// subtree below the node. A node reached twice aborts with ErrRevisit.
func (g *Graph) TraverseTree(kind Kind, roots []ID, visit func(Step) Control) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	seen := make(map[ID]struct{})
	for _, root := range roots {
		stack := []Step{{Node: root}}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if _, ok := seen[s.Node]; ok {
				return fmt.Errorf("%w: %s node %d", ErrRevisit, kind, s.Node)
			}
			seen[s.Node] = struct{}{}

			if visit(s) == Close {
				continue
			}

			children := g.Hosts(kind, s.Node)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, Step{
					Node:      children[i],
					Parent:    s.Node,
					HasParent: true,
					Depth:     s.Depth + 1,
				})
			}
		}
	}
	return nil
}

// Traverse walks outward from start along targets, depth-first, visiting each
// reachable node at most once. The start node itself is not visited. Close
// stops descending below the visited node. Terminates on cyclic graphs.
func (g *Graph) Traverse(kind Kind, start ID, visit func(ID) Control) {
	if !kind.valid() {
		return
	}

	seen := map[ID]struct{}{start: {}}
	var walk func(ID)
	walk = func(n ID) {
		for _, next := range g.Targets(kind, n) {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			if visit(next) == Close {
				continue
			}
			walk(next)
		}
	}
	walk(start)
}
