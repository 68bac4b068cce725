package lighting

import (
	"testing"

	"github.com/Faultbox/stemforge/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float32
		want     math.Vec3
	}{
		{"horizon front", 0, 0, math.Vec3{Z: 1}},
		{"horizon right", 90, 0, math.Vec3{X: 1}},
		{"zenith", 0, 90, math.Vec3{Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sun{Longitude: tt.lon, Latitude: tt.lat}.Direction()
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}

	if l := DefaultSun().Direction().Length(); l < 0.9999 || l > 1.0001 {
		t.Errorf("default sun direction not unit length: %v", l)
	}
}
