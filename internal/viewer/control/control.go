// Package control turns viewer pointer input into particle drags and camera
// orbits.
package control

import (
	"github.com/Faultbox/stemforge/internal/engine/camera"
	"github.com/Faultbox/stemforge/internal/picking"
	"github.com/Faultbox/stemforge/internal/plant"
)

// Interaction maps pointer input to particle drags and camera orbits.
// Orbiting is disabled while a particle is held.
type Interaction struct {
	Camera *camera.OrbitCamera

	plant    *plant.Plant
	drag     *picking.Drag
	orbiting bool
	cursorX  int
	cursorY  int

	width, height float32
}

// NewInteraction binds the camera and plant for a viewport of the given size.
func NewInteraction(cam *camera.OrbitCamera, p *plant.Plant, width, height int) *Interaction {
	in := &Interaction{Camera: cam}
	in.SetPlant(p)
	in.Resize(width, height)
	return in
}

// SetPlant swaps the plant and drops any drag in progress.
func (in *Interaction) SetPlant(p *plant.Plant) {
	in.plant = p
	in.drag = picking.NewDrag(p.Particles())
	in.orbiting = false
}

// Resize sets the viewport size in pixels.
func (in *Interaction) Resize(width, height int) {
	in.width, in.height = float32(width), float32(height)
}

func (in *Interaction) aspect() float32 {
	if in.height == 0 {
		return 1
	}
	return in.width / in.height
}

// Ray returns the world ray under a cursor position.
func (in *Interaction) Ray(x, y int) picking.Ray {
	inv := in.Camera.ViewProjection(in.aspect()).Inverse()
	return picking.ScreenToRay(float32(x), float32(y), in.width, in.height, inv)
}

// PrimaryDown tries to grab a particle; on a miss the camera orbits instead.
func (in *Interaction) PrimaryDown(x, y int) bool {
	in.cursorX, in.cursorY = x, y
	if in.drag.Begin(in.Ray(x, y)) {
		return true
	}
	in.orbiting = true
	return false
}

// SecondaryDown starts an orbit.
func (in *Interaction) SecondaryDown() {
	if _, held := in.drag.Active(); !held {
		in.orbiting = true
	}
}

// Move follows the cursor: the held particle tracks the ray, otherwise an
// orbit in progress turns the camera.
func (in *Interaction) Move(x, y, dx, dy int) error {
	in.cursorX, in.cursorY = x, y
	if _, held := in.drag.Active(); held {
		_, err := in.drag.Update(in.Ray(x, y))
		return err
	}
	if in.orbiting {
		in.Camera.HandleDrag(float32(dx), float32(dy))
	}
	return nil
}

// Follow puts the held particle back on the last cursor ray, undoing any
// solver motion since the last call.
func (in *Interaction) Follow() error {
	if _, held := in.drag.Active(); !held {
		return nil
	}
	_, err := in.drag.Update(in.Ray(in.cursorX, in.cursorY))
	return err
}

// Release ends any drag or orbit.
func (in *Interaction) Release() {
	in.drag.End()
	in.orbiting = false
}

// Zoom forwards wheel steps to the camera unless a particle is held.
func (in *Interaction) Zoom(steps int) {
	if _, held := in.drag.Active(); !held {
		in.Camera.HandleZoom(float32(steps))
	}
}

// Dragged returns the held particle index, or -1.
func (in *Interaction) Dragged() int {
	if id, held := in.drag.Active(); held {
		return int(id)
	}
	return -1
}
