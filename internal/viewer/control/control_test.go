package control

import (
	"testing"

	"github.com/Faultbox/stemforge/internal/engine/camera"
	"github.com/Faultbox/stemforge/internal/plant"
	"github.com/Faultbox/stemforge/pkg/math"
)

// newScene aims the default camera at the middle particle of the default
// plant, at (0, 1.2, 0), from 12 units away.
func newScene(t *testing.T) (*Interaction, *plant.Plant) {
	t.Helper()
	p, err := plant.Generate(plant.DefaultSpec())
	if err != nil {
		t.Fatal(err)
	}
	cam := camera.NewOrbitCamera()
	cam.Center = math.Vec3{Y: 1.2}
	return NewInteraction(cam, p, 800, 800), p
}

func TestGrabAndDrag(t *testing.T) {
	in, p := newScene(t)
	middle, err := p.StemParticle(1)
	if err != nil {
		t.Fatal(err)
	}

	if !in.PrimaryDown(400, 400) {
		t.Fatal("PrimaryDown: expected to grab the middle particle")
	}
	if in.Dragged() != int(middle) {
		t.Fatalf("Dragged: got %d, want %d", in.Dragged(), middle)
	}

	yaw := in.Camera.Yaw
	if err := in.Move(400, 300, 0, -100); err != nil {
		t.Fatal(err)
	}
	if in.Camera.Yaw != yaw {
		t.Error("camera orbited while a particle was held")
	}
	pos, _ := p.Particles().Position(middle)
	if pos.Y <= 1.2 {
		t.Errorf("particle should follow the cursor up, got %v", pos)
	}
	eye := in.Camera.Position()
	if d := pos.Distance(eye); d < 11.99 || d > 12.01 {
		t.Errorf("grab distance not kept: %v", d)
	}
	if !p.Dirty() {
		t.Error("drag should mark the plant dirty")
	}

	if _, err := p.Tick(); err != nil {
		t.Fatal(err)
	}
	if err := in.Follow(); err != nil {
		t.Fatal(err)
	}
	if after, _ := p.Particles().Position(middle); !after.ApproxEqual(pos, 1e-4) {
		t.Errorf("Follow: got %v, want %v", after, pos)
	}

	in.Release()
	if in.Dragged() != -1 {
		t.Error("Release should drop the particle")
	}
}

func TestMissOrbits(t *testing.T) {
	in, p := newScene(t)
	if in.PrimaryDown(5, 5) {
		t.Fatal("PrimaryDown: grabbed a particle in the corner")
	}
	yaw := in.Camera.Yaw
	if err := in.Move(15, 5, 10, 0); err != nil {
		t.Fatal(err)
	}
	if in.Camera.Yaw == yaw {
		t.Error("camera should orbit after a miss")
	}
	if p.Dirty() {
		t.Error("orbiting should not move particles")
	}

	in.Release()
	yaw = in.Camera.Yaw
	_ = in.Move(30, 5, 10, 0)
	if in.Camera.Yaw != yaw {
		t.Error("camera orbited after Release")
	}
}

func TestZoomIgnoredWhileHolding(t *testing.T) {
	in, _ := newScene(t)
	dist := in.Camera.Distance
	in.Zoom(1)
	if in.Camera.Distance >= dist {
		t.Fatal("Zoom should move the camera in")
	}

	in.PrimaryDown(400, 400)
	dist = in.Camera.Distance
	in.Zoom(1)
	in.SecondaryDown()
	if in.Camera.Distance != dist {
		t.Error("Zoom applied while a particle was held")
	}
}
