package physics

import (
	"errors"
	"testing"

	"github.com/Faultbox/stemforge/pkg/math"
	"github.com/Faultbox/stemforge/pkg/relation"
)

func TestSelectSeed(t *testing.T) {
	tests := []struct {
		name     string
		stresses []float32
		want     int
		ok       bool
	}{
		{"tie keeps first", []float32{-2, 5, 5, 1}, 1, true},
		{"all negative", []float32{-3, -1, -2}, 1, true},
		{"single", []float32{-0.5}, 0, true},
		{"first is max", []float32{4, 1, 4}, 0, true},
		{"empty", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectSeed(tt.stresses)
			if got != tt.want || ok != tt.ok {
				t.Errorf("SelectSeed(%v): got %d,%v, want %d,%v", tt.stresses, got, ok, tt.want, tt.ok)
			}
		})
	}
}

type chain struct {
	particles   *ParticleStore
	constraints *ConstraintStore
	adjacency   *ConstraintGraph
	ids         []ConstraintID
}

// newChain builds particles along +Y with one constraint per consecutive pair,
// each adjacent to the next.
func newChain(t *testing.T, positions []float32, rest []float32) *chain {
	t.Helper()
	c := &chain{particles: NewParticleStore(), constraints: NewConstraintStore()}
	c.adjacency = NewConstraintGraph(c.constraints)

	var pids []ParticleID
	for _, y := range positions {
		pids = append(pids, c.particles.Add(math.Vec3{Y: y}))
	}
	for i, r := range rest {
		ec, err := NewEdgeConstraint(pids[i], pids[i+1], r, 0.1)
		if err != nil {
			t.Fatal(err)
		}
		id, err := c.constraints.Add(c.particles, ec)
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 {
			if err := c.adjacency.Link(c.ids[i-1], id); err != nil {
				t.Fatal(err)
			}
		}
		c.ids = append(c.ids, id)
	}
	return c
}

func (c *chain) solver(opts Options) *Solver {
	return NewSolver(c.particles, c.constraints, c.adjacency, opts, nil)
}

func TestRelaxEmpty(t *testing.T) {
	c := newChain(t, []float32{0}, nil)
	rev := c.particles.Revision()
	rep, err := c.solver(Options{}).Relax()
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Idle || c.particles.Revision() != rev {
		t.Errorf("empty relax: got %+v, positions touched=%v", rep, c.particles.Revision() != rev)
	}
}

func TestRelaxSeedsMostStretched(t *testing.T) {
	// Rest 1 each; second segment stretched to 2.
	c := newChain(t, []float32{0, 1, 3, 4}, []float32{1, 1, 1})
	rep, err := c.solver(Options{}).Relax()
	if err != nil {
		t.Fatal(err)
	}
	if rep.Seed != c.ids[1] {
		t.Errorf("seed: got %d, want %d", rep.Seed, c.ids[1])
	}
	if !approx(rep.SeedStress, 0.1) {
		t.Errorf("seed stress: got %v, want 0.1", rep.SeedStress)
	}
	if rep.Solved != 3 {
		t.Errorf("solved: got %d, want 3", rep.Solved)
	}
}

func TestRelaxPropagatesAlongChain(t *testing.T) {
	c := newChain(t, []float32{0, 1.1, 2.3}, []float32{1.1, 1.2})
	tip := ParticleID(2)
	_ = c.particles.SetPosition(tip, math.Vec3{X: 0.8, Y: 3.5})

	rep, err := c.solver(Options{}).Relax()
	if err != nil {
		t.Fatal(err)
	}
	if rep.Seed != c.ids[1] || rep.Solved != 2 {
		t.Fatalf("report: got %+v, want seed %d and 2 solved", rep, c.ids[1])
	}

	// The last constraint solved is exact; the seed was disturbed afterwards.
	s0, _ := c.constraints.StressOf(c.particles, c.ids[0])
	if !approx(s0, 0) {
		t.Errorf("first constraint stress: got %v, want 0", s0)
	}
}

func TestRelaxCyclicAdjacencyTerminates(t *testing.T) {
	// Square of four particles, constraints around it, adjacency closes a loop.
	particles := NewParticleStore()
	store := NewConstraintStore()
	adj := NewConstraintGraph(store)
	corners := []math.Vec3{{}, {X: 2}, {X: 2, Y: 2}, {Y: 2}}
	var pids []ParticleID
	for _, p := range corners {
		pids = append(pids, particles.Add(p))
	}
	var ids []ConstraintID
	for i := range pids {
		ec, _ := NewEdgeConstraint(pids[i], pids[(i+1)%len(pids)], 1, 0.2)
		id, err := store.Add(particles, ec)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	for i := range ids {
		if err := adj.Link(ids[i], ids[(i+1)%len(ids)]); err != nil {
			t.Fatal(err)
		}
	}

	visits := map[ConstraintID]int{}
	adj.Traverse(ids[0], func(id ConstraintID) relation.Control {
		visits[id]++
		return relation.Continue
	})
	for _, id := range ids[1:] {
		if visits[id] != 1 {
			t.Errorf("constraint %d visited %d times, want 1", id, visits[id])
		}
	}

	rep, err := NewSolver(particles, store, adj, Options{}, nil).Relax()
	if err != nil {
		t.Fatal(err)
	}
	if rep.Solved != len(ids) {
		t.Errorf("solved: got %d, want %d", rep.Solved, len(ids))
	}
}

func TestRelaxLockSolved(t *testing.T) {
	c := newChain(t, []float32{0, 1, 3}, []float32{1, 1})
	rep, err := c.solver(Options{LockSolved: true}).Relax()
	if err != nil {
		t.Fatal(err)
	}
	if rep.Seed != c.ids[1] || rep.Solved != 2 {
		t.Fatalf("report: got %+v", rep)
	}

	// The seed's particles are pinned, so the second solve moves only the
	// root particle and leaves both constraints at rest.
	for _, id := range c.ids {
		s, _ := c.constraints.StressOf(c.particles, id)
		if !approx(s, 0) {
			t.Errorf("constraint %d stress: got %v, want 0", id, s)
		}
	}
}

func TestRelaxMissingParticle(t *testing.T) {
	particles := NewParticleStore()
	a := particles.Add(math.Zero)
	b := particles.Add(math.Up)
	store := NewConstraintStore()
	ec, _ := NewEdgeConstraint(a, b, 1, 0.1)
	_, _ = store.Add(particles, ec)

	// A solver bound to a different particle store sees dangling endpoints.
	other := NewParticleStore()
	_, err := NewSolver(other, store, NewConstraintGraph(store), Options{}, nil).Relax()
	if !errors.Is(err, ErrUnknownParticle) {
		t.Errorf("got %v, want ErrUnknownParticle", err)
	}
}
