// Package debug builds debug overlay geometry: particle markers, mesh edges
// and screenshots of the framebuffer.
package debug

import (
	"github.com/Faultbox/stemforge/internal/mesh"
	"github.com/Faultbox/stemforge/pkg/math"
)

// LineVertex is one end of a colored line segment.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}

// Colors used by the overlay.
var (
	ParticleColor = [3]float32{0.9, 0.15, 0.15}
	DraggedColor  = [3]float32{1, 0.45, 0.75}
	EdgeColor     = [3]float32{0.1, 0.1, 0.1}
)

// MarkerHalfSize is the half extent of a particle marker cube.
const MarkerHalfSize float32 = 0.05

// CubeEdges are the corner index pairs of the 12 cube edges. Corner bit 0
// selects X, bit 1 Y, bit 2 Z.
var cubeEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

// CubeLineCount is the number of vertices AppendCube adds.
const CubeLineCount = len(cubeEdges) * 2

// AppendCube appends a wireframe cube centered at c.
func AppendCube(dst []LineVertex, c math.Vec3, half float32, color [3]float32) []LineVertex {
	var corners [8][3]float32
	for i := range corners {
		p := c.Sub(math.Vec3{X: half, Y: half, Z: half})
		if i&1 != 0 {
			p.X += 2 * half
		}
		if i&2 != 0 {
			p.Y += 2 * half
		}
		if i&4 != 0 {
			p.Z += 2 * half
		}
		corners[i] = p.Array()
	}
	for _, e := range cubeEdges {
		dst = append(dst,
			LineVertex{Position: corners[e[0]], Color: color},
			LineVertex{Position: corners[e[1]], Color: color})
	}
	return dst
}

// Markers returns a cube per position; the dragged index, if >= 0, is drawn
// larger and in DraggedColor.
func Markers(positions []math.Vec3, dragged int) []LineVertex {
	out := make([]LineVertex, 0, len(positions)*CubeLineCount)
	for i, p := range positions {
		if i == dragged {
			out = AppendCube(out, p, MarkerHalfSize*1.5, DraggedColor)
			continue
		}
		out = AppendCube(out, p, MarkerHalfSize, ParticleColor)
	}
	return out
}

// MeshEdges returns the three edges of every face.
func MeshEdges(e mesh.Export) []LineVertex {
	out := make([]LineVertex, 0, len(e.Indices)*2)
	for i := 0; i+2 < len(e.Indices); i += 3 {
		tri := [3][3]float32{e.Positions[e.Indices[i]], e.Positions[e.Indices[i+1]], e.Positions[e.Indices[i+2]]}
		for j := range 3 {
			out = append(out,
				LineVertex{Position: tri[j], Color: EdgeColor},
				LineVertex{Position: tri[(j+1)%3], Color: EdgeColor})
		}
	}
	return out
}
