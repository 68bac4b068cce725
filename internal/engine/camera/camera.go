// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/stemforge/pkg/math"
)

// OrbitCamera orbits a center point on a sphere.
type OrbitCamera struct {
	Center math.Vec3

	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y

	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	FovY       float32 // radians
	Near, Far  float32
	DragSpeed  float32
	ZoomFactor float32
}

// NewOrbitCamera returns a camera at (0, 1.5, 12) looking at (0, 1.5, 0).
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Center:      math.Vec3{Y: 1.5},
		Distance:    12,
		MinDistance: 1,
		MaxDistance: 100,
		MinPitch:    -1.5,
		MaxPitch:    1.5,
		FovY:        math32.Pi / 4,
		Near:        0.05,
		Far:         500,
		DragSpeed:   0.005,
		ZoomFactor:  0.1,
	}
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	offset := math.Vec3{
		X: c.Distance * cp * math32.Sin(c.Yaw),
		Y: c.Distance * math32.Sin(c.Pitch),
		Z: c.Distance * cp * math32.Cos(c.Yaw),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns a perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag orbits by a mouse delta in pixels.
func (c *OrbitCamera) HandleDrag(dx, dy float32) {
	c.Yaw -= dx * c.DragSpeed
	c.Pitch = clamp(c.Pitch+dy*c.DragSpeed, c.MinPitch, c.MaxPitch)
}

// HandleZoom scales distance by wheel steps; positive zooms in.
func (c *OrbitCamera) HandleZoom(steps float32) {
	c.Distance = clamp(c.Distance-steps*c.Distance*c.ZoomFactor, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers on a box and backs off far enough to see all of it.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)
	radius := max.Sub(min).Length() / 2
	c.Distance = clamp(radius/math32.Sin(c.FovY/2)*1.2, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
