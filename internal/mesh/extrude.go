package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/stemforge/pkg/math"
)

// DefaultRingResolution is the number of vertices per ring.
const DefaultRingResolution = 6

// Segment is one stem as the extruder sees it: a world transform and a ring
// radius.
type Segment struct {
	Transform math.Mat4
	Size      float32
}

// Extruder turns an ordered list of segments into a tube. Each segment becomes
// a ring; each consecutive pair of rings is stitched with two triangles per
// side. Branching trees are flattened into consecutive pairs, so a ring that
// ends one branch is joined to the first ring of the next.
type Extruder struct {
	RingResolution int
}

// NewExtruder returns an extruder with res vertices per ring.
func NewExtruder(res int) (Extruder, error) {
	e := Extruder{RingResolution: res}
	return e, e.validate()
}

func (e Extruder) validate() error {
	if e.RingResolution < 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidResolution, e.RingResolution)
	}
	return nil
}

// Ring returns the world-space ring vertices of s.
func (e Extruder) Ring(s Segment) []math.Vec3 {
	n := max(e.RingResolution, 0)
	ring := make([]math.Vec3, n)
	offset := math.UnitX.Scale(s.Size)
	for i := range ring {
		angle := 2 * math32.Pi * float32(i) / float32(n)
		ring[i] = s.Transform.TransformVec3(math.RotateY(angle).TransformVec3(offset))
	}
	return ring
}

// Extrude builds a mesh from segments in traversal order. Normals are computed
// before returning. Fewer than two segments yield vertices but no faces.
func (e Extruder) Extrude(segments []Segment) (*MeshMap, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	n := e.RingResolution
	m := New()

	rings := make([][]VertexID, len(segments))
	for r, s := range segments {
		v := float32(0)
		if len(segments) > 1 {
			v = float32(r) / float32(len(segments)-1)
		}
		ids := make([]VertexID, n)
		for i, p := range e.Ring(s) {
			ids[i] = m.AddVertex(p)
			if err := m.SetUV(ids[i], math.Vec2{X: float32(i) / float32(n), Y: v}); err != nil {
				return nil, err
			}
		}
		rings[r] = ids
	}

	for r := 0; r+1 < len(rings); r++ {
		a, b := rings[r], rings[r+1]
		for i := range n {
			j := (i + 1) % n
			if _, err := m.AddFace(a[i], a[j], b[i]); err != nil {
				return nil, err
			}
			if _, err := m.AddFace(b[i], a[j], b[j]); err != nil {
				return nil, err
			}
		}
	}

	m.UpdateNormals()
	return m, nil
}
