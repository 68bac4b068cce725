// Package lighting holds the directional light used to shade the plant.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/stemforge/pkg/math"
)

// Sun is a directional light given by angles in degrees.
type Sun struct {
	Longitude float32 // around +Y
	Latitude  float32 // elevation above the horizon
	Ambient   float32
	Color     math.Vec3
}

// DefaultSun lights the plant from the upper front right.
func DefaultSun() Sun {
	return Sun{Longitude: 35, Latitude: 55, Ambient: 0.3, Color: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	lon := s.Longitude * math32.Pi / 180
	lat := s.Latitude * math32.Pi / 180
	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}
