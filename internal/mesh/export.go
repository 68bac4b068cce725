package mesh

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Export is the renderer-facing copy of a mesh: parallel attribute arrays and
// a flat index list, three entries per face in face order.
type Export struct {
	Positions [][3]float32 `json:"positions"`
	Normals   [][3]float32 `json:"normals"`
	UVs       [][2]float32 `json:"uvs"`
	Indices   []uint32     `json:"indices"`
}

// Export copies the mesh buffers.
func (m *MeshMap) Export() Export {
	e := Export{
		Positions: make([][3]float32, len(m.positions)),
		Normals:   make([][3]float32, len(m.normals)),
		UVs:       make([][2]float32, len(m.uvs)),
		Indices:   make([]uint32, 0, len(m.faces)*3),
	}
	for i := range m.positions {
		e.Positions[i] = m.positions[i].Array()
		e.Normals[i] = m.normals[i].Array()
		e.UVs[i] = m.uvs[i].Array()
	}
	for _, f := range m.faces {
		e.Indices = append(e.Indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	return e
}

// Vertex is one interleaved GPU vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Interleaved packs the attribute arrays into one vertex slice.
func (e Export) Interleaved() []Vertex {
	out := make([]Vertex, len(e.Positions))
	for i := range out {
		out[i] = Vertex{Position: e.Positions[i], Normal: e.Normals[i], TexCoord: e.UVs[i]}
	}
	return out
}

// TriangleCount returns the number of triangles in the index list.
func (e Export) TriangleCount() int {
	return len(e.Indices) / 3
}

// WriteOBJ writes e as a Wavefront OBJ with positions, uvs and normals.
func WriteOBJ(w io.Writer, e Export) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# stemforge mesh: %d vertices, %d faces\n", len(e.Positions), e.TriangleCount())
	for _, p := range e.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, uv := range e.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
	}
	for _, n := range e.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}
	// OBJ indices are 1-based.
	for i := 0; i+2 < len(e.Indices); i += 3 {
		a, b, c := e.Indices[i]+1, e.Indices[i+1]+1, e.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

// WriteJSON writes e as indented JSON.
func WriteJSON(w io.Writer, e Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// Triangles converts the mesh faces to sdfx triangles.
func (m *MeshMap) Triangles() []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, len(m.faces))
	for _, f := range m.faces {
		var t sdf.Triangle3
		for j, v := range f {
			p := m.positions[v]
			t[j] = v3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
		}
		out = append(out, &t)
	}
	return out
}

// WriteSTL saves the mesh as a binary STL file at path.
func WriteSTL(path string, m *MeshMap) error {
	if err := render.SaveSTL(path, m.Triangles()); err != nil {
		return fmt.Errorf("mesh: save stl %s: %w", path, err)
	}
	return nil
}
