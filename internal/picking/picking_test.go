package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/stemforge/internal/physics"
	"github.com/Faultbox/stemforge/pkg/math"
)

func TestDistanceToPoint(t *testing.T) {
	r := NewRay(math.Zero, math.Vec3{Z: -4})
	if r.Direction != (math.Vec3{Z: -1}) {
		t.Fatalf("direction not normalized: %v", r.Direction)
	}
	if d := r.DistanceToPoint(math.Vec3{X: 0.3, Z: -5}); math32.Abs(d-0.3) > 1e-6 {
		t.Errorf("DistanceToPoint: got %v, want 0.3", d)
	}
}

func TestPick(t *testing.T) {
	r := NewRay(math.Vec3{Z: 10}, math.Vec3{Z: -1})
	tests := []struct {
		name      string
		positions []math.Vec3
		want      int
		ok        bool
	}{
		{"nearest wins", []math.Vec3{{X: 0.05}, {X: 0.01, Y: 1}, {X: 0.02}}, 2, true},
		{"outside radius", []math.Vec3{{X: 0.2}, {Y: 0.15}}, -1, false},
		{"empty", nil, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(r, tt.positions, PickRadius)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Pick: got %d,%v, want %d,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDragKeepsGrabDistance(t *testing.T) {
	store := physics.NewParticleStore()
	store.Add(math.Vec3{Y: 5})
	id := store.Add(math.Vec3{Y: 1})

	origin := math.Vec3{Y: 1, Z: 6}
	d := NewDrag(store)
	if !d.Begin(NewRay(origin, math.Vec3{Z: -1})) {
		t.Fatal("Begin: expected a particle under the ray")
	}
	if got, ok := d.Active(); !ok || got != id {
		t.Fatalf("Active: got %d,%v, want %d,true", got, ok, id)
	}
	if d.GrabDistance() != 6 {
		t.Errorf("GrabDistance: got %v, want 6", d.GrabDistance())
	}

	dir := math.Vec3{X: 1, Z: -1}
	pos, err := d.Update(NewRay(origin, dir))
	if err != nil {
		t.Fatal(err)
	}
	want := origin.Add(dir.Normalize().Scale(6))
	if !pos.ApproxEqual(want, 1e-5) {
		t.Errorf("Update: got %v, want %v", pos, want)
	}
	if got, _ := store.Position(id); got != pos {
		t.Errorf("store position: got %v, want %v", got, pos)
	}

	d.End()
	if _, ok := d.Active(); ok {
		t.Error("drag still active after End")
	}
	rev := store.Revision()
	_, _ = d.Update(NewRay(origin, math.Up))
	if store.Revision() != rev {
		t.Error("idle Update moved a particle")
	}
}

func TestDragMiss(t *testing.T) {
	store := physics.NewParticleStore()
	store.Add(math.Vec3{X: 3})
	d := NewDrag(store)
	if d.Begin(NewRay(math.Zero, math.UnitZ)) {
		t.Error("Begin: grabbed a particle far from the ray")
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{Y: 1.5, Z: 12}
	view := math.LookAt(eye, math.Vec3{Y: 1.5}, math.Up)
	proj := math.Perspective(math32.Pi/4, 1, 0.1, 100)
	r := ScreenToRay(400, 400, 800, 800, proj.Mul(view).Inverse())

	if !r.Direction.ApproxEqual(math.Vec3{Z: -1}, 1e-4) {
		t.Errorf("direction: got %v, want (0,0,-1)", r.Direction)
	}
	if d := r.DistanceToPoint(math.Vec3{Y: 1.5}); d > 1e-3 {
		t.Errorf("center ray misses look target by %v", d)
	}
}
