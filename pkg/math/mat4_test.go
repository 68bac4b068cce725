package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I: got %v, want %v", got, m)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation: got %v, want (5, 10, 15)", got)
	}
	if got := m.TransformVec3(Vec3{1, 2, 3}); got != (Vec3{6, 12, 18}) {
		t.Errorf("TransformVec3: got %v, want (6, 12, 18)", got)
	}
	if got := m.TransformDirection(Up); got != Up {
		t.Errorf("TransformDirection: got %v, want %v", got, Up)
	}
}

func TestRotateYMatchesQuat(t *testing.T) {
	angle := math32.Pi / 3
	got := RotateY(angle).TransformVec3(UnitX)
	want := QuatFromAxisAngle(Up, angle).Rotate(UnitX)
	if !got.ApproxEqual(want, eps) {
		t.Errorf("RotateY: got %v, want %v", got, want)
	}
}

func TestFromRotationTranslation(t *testing.T) {
	q := QuatFromAxisAngle(Up, math32.Pi/2)
	pos := Vec3{0, 2, 0}
	m := FromRotationTranslation(q, pos)
	want := Translate(pos).Mul(q.ToMat4())
	for i := range m {
		if math32.Abs(m[i]-want[i]) > eps {
			t.Fatalf("element %d: got %v, want %v", i, m[i], want[i])
		}
	}
}

func TestInverse(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}).Mul(RotateY(0.7))
	got := m.Mul(m.Inverse())
	id := Identity()
	for i := range got {
		if math32.Abs(got[i]-id[i]) > 1e-4 {
			t.Fatalf("M * M^-1 element %d: got %v, want %v", i, got[i], id[i])
		}
	}

	var singular Mat4
	if singular.Inverse() != Identity() {
		t.Error("Inverse of singular matrix should be identity")
	}
}

func TestPerspectiveLookAt(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Zero, Up)
	if got := view.TransformVec3(Zero); !got.ApproxEqual(Vec3{0, 0, -5}, eps) {
		t.Errorf("LookAt origin: got %v, want (0,0,-5)", got)
	}

	proj := Perspective(math32.Pi/2, 1, 0.1, 100)
	ndc := proj.Mul(view).TransformVec3(Zero)
	if math32.Abs(ndc.X) > eps || math32.Abs(ndc.Y) > eps {
		t.Errorf("center should project to NDC origin, got %v", ndc)
	}
	if ndc.Z <= -1 || ndc.Z >= 1 {
		t.Errorf("depth should be inside clip range, got %v", ndc.Z)
	}
}
