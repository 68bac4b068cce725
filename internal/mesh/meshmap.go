// Package mesh holds the indexed triangle mesh built from a stem hierarchy,
// the ring extruder that fills it, and exporters for OBJ, JSON and STL.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/stemforge/pkg/math"
)

var (
	// ErrUnknownVertex is returned for a vertex id outside the mesh.
	ErrUnknownVertex = errors.New("mesh: unknown vertex")
	// ErrUnknownFace is returned for a face id outside the mesh.
	ErrUnknownFace = errors.New("mesh: unknown face")
	// ErrInvalidResolution is returned for fewer than three vertices per ring.
	ErrInvalidResolution = errors.New("mesh: ring resolution must be at least 3")
)

// VertexID indexes vertices. Dense, zero-based, never reordered.
type VertexID uint32

// FaceID indexes faces. Dense, zero-based, never reordered.
type FaceID uint32

// MeshMap is an indexed triangle mesh. Vertices, normals and uvs always have
// the same length.
type MeshMap struct {
	positions []math.Vec3
	normals   []math.Vec3
	uvs       []math.Vec2
	faces     [][3]VertexID
}

// New returns an empty mesh.
func New() *MeshMap {
	return &MeshMap{}
}

// AddVertex appends a vertex with a zero normal and zero uv.
func (m *MeshMap) AddVertex(pos math.Vec3) VertexID {
	m.positions = append(m.positions, pos)
	m.normals = append(m.normals, math.Vec3{})
	m.uvs = append(m.uvs, math.Vec2{})
	return VertexID(len(m.positions) - 1)
}

// AddFace appends the triangle (a, b, c).
func (m *MeshMap) AddFace(a, b, c VertexID) (FaceID, error) {
	for _, v := range [3]VertexID{a, b, c} {
		if !m.hasVertex(v) {
			return 0, fmt.Errorf("%w: %d", ErrUnknownVertex, v)
		}
	}
	m.faces = append(m.faces, [3]VertexID{a, b, c})
	return FaceID(len(m.faces) - 1), nil
}

// VertexCount returns the number of vertices.
func (m *MeshMap) VertexCount() int { return len(m.positions) }

// FaceCount returns the number of faces.
func (m *MeshMap) FaceCount() int { return len(m.faces) }

func (m *MeshMap) hasVertex(v VertexID) bool { return int(v) < len(m.positions) }

func (m *MeshMap) hasFace(f FaceID) bool { return int(f) < len(m.faces) }

// VertexPosition returns the position of v.
func (m *MeshMap) VertexPosition(v VertexID) (math.Vec3, error) {
	if !m.hasVertex(v) {
		return math.Vec3{}, fmt.Errorf("%w: %d", ErrUnknownVertex, v)
	}
	return m.positions[v], nil
}

// VertexNormal returns the stored normal of v.
func (m *MeshMap) VertexNormal(v VertexID) (math.Vec3, error) {
	if !m.hasVertex(v) {
		return math.Vec3{}, fmt.Errorf("%w: %d", ErrUnknownVertex, v)
	}
	return m.normals[v], nil
}

// SetUV sets the texture coordinate of v.
func (m *MeshMap) SetUV(v VertexID, uv math.Vec2) error {
	if !m.hasVertex(v) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, v)
	}
	m.uvs[v] = uv
	return nil
}

// FaceVertices returns the three vertex ids of f.
func (m *MeshMap) FaceVertices(f FaceID) ([3]VertexID, error) {
	if !m.hasFace(f) {
		return [3]VertexID{}, fmt.Errorf("%w: %d", ErrUnknownFace, f)
	}
	return m.faces[f], nil
}

// FacePositions returns the corner positions of f.
func (m *MeshMap) FacePositions(f FaceID) ([3]math.Vec3, error) {
	ids, err := m.FaceVertices(f)
	if err != nil {
		return [3]math.Vec3{}, err
	}
	return [3]math.Vec3{m.positions[ids[0]], m.positions[ids[1]], m.positions[ids[2]]}, nil
}

// FaceCenter returns the centroid of f.
func (m *MeshMap) FaceCenter(f FaceID) (math.Vec3, error) {
	p, err := m.FacePositions(f)
	if err != nil {
		return math.Vec3{}, err
	}
	return p[0].Add(p[1]).Add(p[2]).Scale(1.0 / 3), nil
}

// ComputeFaceNormal returns (B-A)×(C-A), unnormalized. Its length is twice
// the face area, so larger faces weigh more in vertex normals.
func (m *MeshMap) ComputeFaceNormal(f FaceID) (math.Vec3, error) {
	p, err := m.FacePositions(f)
	if err != nil {
		return math.Vec3{}, err
	}
	return p[1].Sub(p[0]).Cross(p[2].Sub(p[0])), nil
}

// ComputeVertexNormal averages the normals of faces containing v. A vertex
// on no face gets the zero vector.
func (m *MeshMap) ComputeVertexNormal(v VertexID) (math.Vec3, error) {
	if !m.hasVertex(v) {
		return math.Vec3{}, fmt.Errorf("%w: %d", ErrUnknownVertex, v)
	}
	var sum math.Vec3
	n := 0
	for f, ids := range m.faces {
		if ids[0] != v && ids[1] != v && ids[2] != v {
			continue
		}
		fn, _ := m.ComputeFaceNormal(FaceID(f))
		sum = sum.Add(fn)
		n++
	}
	if n == 0 {
		return math.Vec3{}, nil
	}
	return sum.Scale(1 / float32(n)), nil
}

// UpdateNormals recomputes every vertex normal. Runs in one pass over the
// faces instead of one scan per vertex.
func (m *MeshMap) UpdateNormals() {
	sums := make([]math.Vec3, len(m.positions))
	counts := make([]int, len(m.positions))
	for _, ids := range m.faces {
		a, b, c := m.positions[ids[0]], m.positions[ids[1]], m.positions[ids[2]]
		fn := b.Sub(a).Cross(c.Sub(a))
		for _, v := range ids {
			sums[v] = sums[v].Add(fn)
			counts[v]++
		}
	}
	for i := range m.normals {
		if counts[i] == 0 {
			m.normals[i] = math.Vec3{}
			continue
		}
		m.normals[i] = sums[i].Scale(1 / float32(counts[i]))
	}
}

// Vertices iterates vertex ids in order.
func (m *MeshMap) Vertices(yield func(VertexID, math.Vec3) bool) {
	for i, p := range m.positions {
		if !yield(VertexID(i), p) {
			return
		}
	}
}

// Faces iterates face ids in order.
func (m *MeshMap) Faces(yield func(FaceID, [3]VertexID) bool) {
	for i, f := range m.faces {
		if !yield(FaceID(i), f) {
			return
		}
	}
}

// Bounds returns the axis-aligned box around all vertices. ok is false for an
// empty mesh.
func (m *MeshMap) Bounds() (b Bounds, ok bool) {
	if len(m.positions) == 0 {
		return Bounds{}, false
	}
	b = Bounds{Min: m.positions[0], Max: m.positions[0]}
	for _, p := range m.positions[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b, true
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Center returns the box midpoint.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}
