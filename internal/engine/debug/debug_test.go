package debug

import (
	"os"
	"testing"
	"time"

	"github.com/Faultbox/stemforge/internal/mesh"
	"github.com/Faultbox/stemforge/pkg/math"
)

func TestAppendCube(t *testing.T) {
	lines := AppendCube(nil, math.Vec3{X: 1, Y: 1, Z: 1}, 0.5, ParticleColor)
	if len(lines) != CubeLineCount {
		t.Fatalf("got %d vertices, want %d", len(lines), CubeLineCount)
	}
	for i := 0; i < len(lines); i += 2 {
		a, b := lines[i].Position, lines[i+1].Position
		diffs := 0
		for k := range 3 {
			if a[k] != b[k] {
				diffs++
			}
			if a[k] != 0.5 && a[k] != 1.5 {
				t.Errorf("corner component out of box: %v", a)
			}
		}
		if diffs != 1 {
			t.Errorf("edge %v-%v is not axis aligned", a, b)
		}
	}
}

func TestMarkersHighlightDragged(t *testing.T) {
	lines := Markers([]math.Vec3{{}, {Y: 1}}, 1)
	if len(lines) != 2*CubeLineCount {
		t.Fatalf("got %d vertices", len(lines))
	}
	if lines[0].Color != ParticleColor || lines[CubeLineCount].Color != DraggedColor {
		t.Error("dragged marker should use DraggedColor")
	}
}

func TestMeshEdges(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(math.Vec3{})
	b := m.AddVertex(math.Vec3{X: 1})
	c := m.AddVertex(math.Vec3{Y: 1})
	_, _ = m.AddFace(a, b, c)

	lines := MeshEdges(m.Export())
	if len(lines) != 6 {
		t.Fatalf("got %d vertices, want 6", len(lines))
	}
	if lines[1].Position != [3]float32{1, 0, 0} || lines[5].Position != [3]float32{0, 0, 0} {
		t.Errorf("unexpected edge layout: %+v", lines)
	}
}

func TestFlipRGBA(t *testing.T) {
	// Two rows: bottom red, top blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top row should be blue, got r=%d b=%d", r, b)
	}
	if _, err := FlipRGBA(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestSaveScreenshot(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveScreenshot(dir, make([]byte, 4*3*2), 3, 2, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}
