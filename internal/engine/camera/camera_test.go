package camera

import (
	"testing"

	"github.com/Faultbox/stemforge/pkg/math"
)

func TestDefaultPosition(t *testing.T) {
	c := NewOrbitCamera()
	if got := c.Position(); !got.ApproxEqual(math.Vec3{Y: 1.5, Z: 12}, 1e-5) {
		t.Errorf("Position: got %v, want (0,1.5,12)", got)
	}
	if got := c.ViewMatrix().TransformVec3(c.Center); !got.ApproxEqual(math.Vec3{Z: -12}, 1e-4) {
		t.Errorf("center in view space: got %v, want (0,0,-12)", got)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch: got %v, want %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(100, 0)
	if c.Yaw >= 0 {
		t.Errorf("Yaw should decrease on right drag, got %v", c.Yaw)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for range 100 {
		c.HandleZoom(5)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance: got %v, want %v", c.Distance, c.MinDistance)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -1, Y: 0, Z: -1}, math.Vec3{X: 1, Y: 4, Z: 1})
	if c.Center != (math.Vec3{Y: 2}) {
		t.Errorf("Center: got %v, want (0,2,0)", c.Center)
	}
	if c.Distance <= 2 {
		t.Errorf("Distance too small to frame bounds: %v", c.Distance)
	}
}
