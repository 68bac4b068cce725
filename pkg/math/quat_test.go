package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestQuatIdentityRotate(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := QuatIdentity().Rotate(v); got != v {
		t.Errorf("identity Rotate: got %v, want %v", got, v)
	}
	if !QuatIdentity().IsIdentity() {
		t.Error("QuatIdentity should report IsIdentity")
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float32
		in    Vec3
		want  Vec3
	}{
		{"x about y by 90", Up, math32.Pi / 2, UnitX, Vec3{0, 0, -1}},
		{"y about z by 90", UnitZ, math32.Pi / 2, Up, Vec3{-1, 0, 0}},
		{"y about x by 180", UnitX, math32.Pi, Up, Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.axis, tt.angle)
			if got := q.Rotate(tt.in); !got.ApproxEqual(tt.want, eps) {
				t.Errorf("Rotate: got %v, want %v", got, tt.want)
			}
			if got := q.ToMat4().TransformVec3(tt.in); !got.ApproxEqual(tt.want, eps) {
				t.Errorf("ToMat4: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuatMulOrder(t *testing.T) {
	qx := QuatFromAxisAngle(UnitX, math32.Pi/2)
	qy := QuatFromAxisAngle(Up, math32.Pi/2)

	// qy.Mul(qx) applies qx first: Z -> -Y under qx, -Y stays under qy.
	got := qy.Mul(qx).Rotate(UnitZ)
	want := qy.Rotate(qx.Rotate(UnitZ))
	if !got.ApproxEqual(want, eps) {
		t.Errorf("Mul: got %v, want %v", got, want)
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("Normalize(zero): got %v, want identity", got)
	}
	n := Quat{1, 2, 3, 4}.Normalize()
	l := math32.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math32.Abs(l-1) > eps {
		t.Errorf("Normalize length: got %v, want 1", l)
	}
}
