package picking

import (
	"github.com/Faultbox/stemforge/internal/physics"
	"github.com/Faultbox/stemforge/pkg/math"
)

// PickRadius is the largest ray distance at which a particle can be grabbed.
const PickRadius float32 = 0.1

// Pick returns the index of the position closest to the ray, among those
// strictly within radius of it.
func Pick(ray Ray, positions []math.Vec3, radius float32) (int, bool) {
	best, bestDist := -1, radius
	for i, p := range positions {
		if d := ray.DistanceToPoint(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Store is the particle storage a Drag writes to.
type Store interface {
	Positions() []math.Vec3
	SetPosition(id physics.ParticleID, pos math.Vec3) error
}

// Drag moves one particle along the cursor ray at a fixed distance from the
// ray origin, the distance captured when the drag starts.
type Drag struct {
	store        Store
	active       bool
	id           physics.ParticleID
	grabDistance float32
}

// NewDrag returns an idle drag over store.
func NewDrag(store Store) *Drag {
	return &Drag{store: store}
}

// Begin picks the particle under ray. It reports whether a particle was grabbed.
func (d *Drag) Begin(ray Ray) bool {
	positions := d.store.Positions()
	i, ok := Pick(ray, positions, PickRadius)
	if !ok {
		d.active = false
		return false
	}
	d.active = true
	d.id = physics.ParticleID(i)
	d.grabDistance = positions[i].Distance(ray.Origin)
	return true
}

// Update writes origin + direction*grabDistance to the grabbed particle and
// returns the new position. It does nothing when idle.
func (d *Drag) Update(ray Ray) (math.Vec3, error) {
	if !d.active {
		return math.Vec3{}, nil
	}
	pos := ray.At(d.grabDistance)
	return pos, d.store.SetPosition(d.id, pos)
}

// End releases the particle.
func (d *Drag) End() {
	d.active = false
}

// Active reports whether a particle is held, and which.
func (d *Drag) Active() (physics.ParticleID, bool) {
	return d.id, d.active
}

// GrabDistance is the distance fixed at Begin.
func (d *Drag) GrabDistance() float32 {
	return d.grabDistance
}
