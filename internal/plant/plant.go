package plant

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/stemforge/internal/logger"
	"github.com/Faultbox/stemforge/internal/mesh"
	"github.com/Faultbox/stemforge/internal/physics"
	"github.com/Faultbox/stemforge/pkg/math"
	"github.com/Faultbox/stemforge/pkg/relation"
)

// Spec describes a plant to generate.
type Spec struct {
	Lengths        []float32 // tip first
	Size           float32
	Compliance     float32
	Mode           Mode
	Base           math.Vec3
	BendDegrees    float32 // per-stem tilt about Z, Compositional mode only
	RingResolution int // at least 3
	LockSolved     bool
}

// DefaultSpec is the three-stem plant: root 1.3, then 1.2, tip 1.1.
func DefaultSpec() Spec {
	return Spec{
		Lengths:        []float32{1.1, 1.2, 1.3},
		Size:           0.2,
		Compliance:     physics.DefaultCompliance,
		Mode:           Additive,
		RingResolution: mesh.DefaultRingResolution,
	}
}

// Plant owns a stem hierarchy, one particle per stem, a constraint per
// parent link, and the mesh generated from them.
type Plant struct {
	spec        Spec
	stems       *Hierarchy
	particles   *physics.ParticleStore
	constraints *physics.ConstraintStore
	adjacency   *physics.ConstraintGraph
	solver      *physics.Solver
	extruder    mesh.Extruder

	stemParticle   []physics.ParticleID // by StemID
	stemConstraint map[StemID]physics.ConstraintID

	mesh         *mesh.MeshMap
	meshRevision uint64
	log          *zap.Logger
}

// TickReport summarizes one Tick.
type TickReport struct {
	Relax       physics.Report
	Regenerated bool
	MaxStress   float32
}

// Generate builds the hierarchy, places particles at the propagated stem
// positions, links constraints and builds the first mesh.
func Generate(spec Spec) (*Plant, error) {
	stems := make([]Stem, len(spec.Lengths))
	bend := math.QuatFromAxisAngle(math.UnitZ, spec.BendDegrees*math32.Pi/180)
	for i, l := range spec.Lengths {
		s := Simple().WithLength(l).WithSize(spec.Size)
		if i < len(spec.Lengths)-1 && spec.BendDegrees != 0 {
			s = s.WithRotation(bend)
		}
		stems[i] = s
	}
	h, err := BuildChain(stems)
	if err != nil {
		return nil, err
	}
	return FromHierarchy(h, spec)
}

// FromHierarchy wraps an existing hierarchy. Lengths and BendDegrees in spec
// are ignored.
func FromHierarchy(h *Hierarchy, spec Spec) (*Plant, error) {
	p := &Plant{
		spec:           spec,
		stems:          h,
		particles:      physics.NewParticleStore(),
		constraints:    physics.NewConstraintStore(),
		stemConstraint: make(map[StemID]physics.ConstraintID),
		log:            logger.Named("plant"),
	}
	extruder, err := mesh.NewExtruder(spec.RingResolution)
	if err != nil {
		return nil, err
	}
	p.extruder = extruder
	p.adjacency = physics.NewConstraintGraph(p.constraints)
	p.solver = physics.NewSolver(p.particles, p.constraints, p.adjacency,
		physics.Options{LockSolved: spec.LockSolved}, logger.Named("relax"))

	transforms, err := h.Propagate(math.Translate(spec.Base), spec.Mode)
	if err != nil {
		return nil, err
	}
	p.stemParticle = make([]physics.ParticleID, h.Len())
	for i, t := range transforms {
		p.stemParticle[i] = p.particles.Add(t.Translation())
	}

	if err := p.link(); err != nil {
		return nil, err
	}
	if err := p.regenerate(); err != nil {
		return nil, err
	}

	p.log.Info("plant generated",
		zap.Int("stems", h.Len()),
		zap.Int("constraints", p.constraints.Len()),
		zap.Stringer("mode", spec.Mode),
		zap.Int("vertices", p.mesh.VertexCount()),
		zap.Int("faces", p.mesh.FaceCount()))
	return p, nil
}

// link adds one constraint per parent link, rest length = the child's length,
// and makes a stem's constraint adjacent to its parent's.
func (p *Plant) link() error {
	compliance := p.spec.Compliance
	var err error
	walk := func(v Visit) relation.Control {
		if !v.HasParent {
			return relation.Continue
		}
		c, e := physics.NewEdgeConstraint(p.stemParticle[v.ID], p.stemParticle[v.Parent], v.Stem.Length, compliance)
		if e != nil {
			err = fmt.Errorf("stem %d: %w", v.ID, e)
			return relation.Close
		}
		id, e := p.constraints.Add(p.particles, c)
		if e != nil {
			err = e
			return relation.Close
		}
		p.stemConstraint[v.ID] = id
		if up, ok := p.stemConstraint[v.Parent]; ok {
			if e := p.adjacency.Link(id, up); e != nil {
				err = e
				return relation.Close
			}
		}
		return relation.Continue
	}
	if e := p.stems.Traverse(walk); e != nil {
		return e
	}
	return err
}

// Tick runs one relaxation pass, then rebuilds the mesh if any particle moved
// since the last build.
func (p *Plant) Tick() (TickReport, error) {
	var rep TickReport
	relax, err := p.solver.Relax()
	if err != nil {
		return rep, err
	}
	rep.Relax = relax

	if rep.Regenerated, err = p.Refresh(); err != nil {
		return rep, err
	}

	stresses, err := p.solver.Stresses()
	if err != nil {
		return rep, err
	}
	rep.MaxStress = maxAbs(stresses)
	return rep, nil
}

// Dirty reports whether particles moved since the mesh was last built.
func (p *Plant) Dirty() bool {
	return p.particles.Revision() != p.meshRevision
}

// Refresh rebuilds the mesh from the current particle positions if any moved
// since the last build. It reports whether a rebuild happened.
func (p *Plant) Refresh() (bool, error) {
	if !p.Dirty() {
		return false, nil
	}
	if err := p.regenerate(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Plant) regenerate() error {
	segs, err := p.Segments()
	if err != nil {
		return err
	}
	m, err := p.extruder.Extrude(segs)
	if err != nil {
		return err
	}
	p.mesh = m
	p.meshRevision = p.particles.Revision()
	p.log.Debug("mesh regenerated", zap.Int("vertices", m.VertexCount()), zap.Int("faces", m.FaceCount()))
	return nil
}

// StemTransforms derives each stem's world transform from its particle
// position. Rotations accumulate parent first in Compositional mode and are
// dropped in Additive mode.
func (p *Plant) StemTransforms() ([]math.Mat4, error) {
	rot := make([]math.Quat, p.stems.Len())
	out := make([]math.Mat4, p.stems.Len())
	var err error
	walkErr := p.stems.Traverse(func(v Visit) relation.Control {
		r := math.QuatIdentity()
		if p.spec.Mode == Compositional {
			r = v.Stem.Rotation
			if v.HasParent {
				r = rot[v.Parent].Mul(r)
			}
		}
		rot[v.ID] = r
		pos, e := p.particles.Position(p.stemParticle[v.ID])
		if e != nil {
			err = e
			return relation.Close
		}
		out[v.ID] = math.FromRotationTranslation(r, pos)
		return relation.Continue
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, err
}

// Segments returns extruder input in traversal order.
func (p *Plant) Segments() ([]mesh.Segment, error) {
	transforms, err := p.StemTransforms()
	if err != nil {
		return nil, err
	}
	order, err := p.stems.Order()
	if err != nil {
		return nil, err
	}
	segs := make([]mesh.Segment, len(order))
	for i, id := range order {
		segs[i] = mesh.Segment{Transform: transforms[id], Size: p.stems.stems[id].Size}
	}
	return segs, nil
}

// Mesh returns the current mesh. It is replaced, not mutated, on regeneration.
func (p *Plant) Mesh() *mesh.MeshMap { return p.mesh }

// Markers returns particle positions, indexed by ParticleID.
func (p *Plant) Markers() []math.Vec3 { return p.particles.Positions() }

// Particles exposes the particle store for drag collaborators.
func (p *Plant) Particles() *physics.ParticleStore { return p.particles }

// Constraints exposes the constraint store.
func (p *Plant) Constraints() *physics.ConstraintStore { return p.constraints }

// Hierarchy exposes the stem hierarchy.
func (p *Plant) Hierarchy() *Hierarchy { return p.stems }

// Spec returns the spec the plant was generated from.
func (p *Plant) Spec() Spec { return p.spec }

// StemParticle returns the particle that carries stem id.
func (p *Plant) StemParticle(id StemID) (physics.ParticleID, error) {
	if !p.stems.Has(id) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStem, id)
	}
	return p.stemParticle[id], nil
}

// Stresses evaluates every constraint, indexed by ConstraintID.
func (p *Plant) Stresses() ([]float32, error) {
	return p.solver.Stresses()
}

func maxAbs(xs []float32) float32 {
	var m float32
	for _, x := range xs {
		m = max(m, math32.Abs(x))
	}
	return m
}
