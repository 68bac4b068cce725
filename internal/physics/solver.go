package physics

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/stemforge/pkg/math"
	"github.com/Faultbox/stemforge/pkg/relation"
)

// Options tune a Solver.
type Options struct {
	// LockSolved pins particles already moved in the current pass. A
	// constraint with one pinned endpoint moves only the other one; with both
	// pinned it is skipped. Off by default, which lets a shared particle be
	// moved twice in one pass.
	LockSolved bool
}

// Report summarizes one relaxation pass.
type Report struct {
	Idle       bool // no constraints, nothing ran
	Seed       ConstraintID
	SeedStress float32
	Solved     int
	Skipped    int
}

// Solver runs single-pass stress relaxation over a constraint graph.
type Solver struct {
	particles   *ParticleStore
	constraints *ConstraintStore
	adjacency   *ConstraintGraph
	opts        Options
	log         *zap.Logger
}

// NewSolver wires a solver to its stores. log may be nil.
func NewSolver(particles *ParticleStore, constraints *ConstraintStore, adjacency *ConstraintGraph, opts Options, log *zap.Logger) *Solver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{
		particles:   particles,
		constraints: constraints,
		adjacency:   adjacency,
		opts:        opts,
		log:         log,
	}
}

// SelectSeed returns the index of the greatest signed stress. Ties keep the
// first occurrence. ok is false for an empty slice.
func SelectSeed(stresses []float32) (index int, ok bool) {
	if len(stresses) == 0 {
		return 0, false
	}
	for i := 1; i < len(stresses); i++ {
		if stresses[i] > stresses[index] {
			index = i
		}
	}
	return index, true
}

// Stresses evaluates every constraint at the current particle positions,
// indexed by ConstraintID.
func (s *Solver) Stresses() ([]float32, error) {
	out := make([]float32, s.constraints.Len())
	for i := range out {
		st, err := s.constraints.StressOf(s.particles, ConstraintID(i))
		if err != nil {
			return nil, err
		}
		out[i] = st
	}
	return out, nil
}

// Relax solves the most stressed constraint toward zero stress, then walks
// the adjacency from it solving each constraint once. There is no
// convergence loop; call once per tick.
func (s *Solver) Relax() (Report, error) {
	stresses, err := s.Stresses()
	if err != nil {
		return Report{}, err
	}
	idx, ok := SelectSeed(stresses)
	if !ok {
		return Report{Idle: true}, nil
	}

	p := pass{
		Solver: s,
		solved: make(map[ConstraintID]struct{}),
		locked: make(map[ParticleID]struct{}),
	}
	rep := Report{Seed: ConstraintID(idx), SeedStress: stresses[idx]}

	if err := p.solve(rep.Seed, &rep); err != nil {
		return rep, err
	}

	var walkErr error
	s.adjacency.Traverse(rep.Seed, func(id ConstraintID) relation.Control {
		if _, done := p.solved[id]; done || walkErr != nil {
			return relation.Close
		}
		if err := p.solve(id, &rep); err != nil {
			walkErr = err
			return relation.Close
		}
		return relation.Continue
	})
	if walkErr != nil {
		return rep, walkErr
	}

	s.log.Debug("relaxed",
		zap.Uint32("seed", uint32(rep.Seed)),
		zap.Float32("seed_stress", rep.SeedStress),
		zap.Int("solved", rep.Solved),
		zap.Int("skipped", rep.Skipped))
	return rep, nil
}

type pass struct {
	*Solver
	solved map[ConstraintID]struct{}
	locked map[ParticleID]struct{}
}

func (p *pass) solve(id ConstraintID, rep *Report) error {
	c, err := p.constraints.Get(id)
	if err != nil {
		return err
	}
	a, b, err := endpoints(p.particles, c)
	if err != nil {
		return fmt.Errorf("constraint %d: %w", id, err)
	}

	p.solved[id] = struct{}{}

	na, nb := c.Solve(a, b, 0)
	if p.opts.LockSolved {
		_, la := p.locked[c.A]
		_, lb := p.locked[c.B]
		switch {
		case la && lb:
			rep.Skipped++
			return nil
		case la:
			nb = pinned(a, b, c.DistanceWithStress(0))
			na = a
		case lb:
			na = pinned(b, a, c.DistanceWithStress(0))
			nb = b
		}
		p.locked[c.A] = struct{}{}
		p.locked[c.B] = struct{}{}
	}

	if err := p.particles.SetPosition(c.A, na); err != nil {
		return err
	}
	if err := p.particles.SetPosition(c.B, nb); err != nil {
		return err
	}
	rep.Solved++
	return nil
}

// pinned places free at distance dist from fixed along their current axis.
func pinned(fixed, free math.Vec3, dist float32) math.Vec3 {
	d := fixed.Distance(free)
	if d == 0 {
		return free
	}
	return fixed.Add(free.Sub(fixed).Scale(dist / d))
}
