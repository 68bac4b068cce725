package math

import "testing"

const eps = 1e-5

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", UnitX, Up, UnitZ},
		{"y cross z", Up, UnitZ, UnitX},
		{"parallel", UnitX, UnitX.Scale(3), Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); got != tt.want {
				t.Errorf("Cross: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Length: got %v, want 5", got)
	}
	if got := v.Distance(Zero); got != 5 {
		t.Errorf("Distance: got %v, want 5", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Normalize(zero): got %v, want zero vector", got)
	}
	n := Vec3{0, 0, 7}.Normalize()
	if !n.ApproxEqual(UnitZ, eps) {
		t.Errorf("Normalize: got %v, want %v", n, UnitZ)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}
	if got := a.Lerp(b, 0.5); got != (Vec3{1, 2, 3}) {
		t.Errorf("Lerp: got %v, want (1,2,3)", got)
	}
}
