package geometry

import (
	"math"
	"testing"
)

func TestPlaneBasisOrthonormal(t *testing.T) {
	normals := []Vector3{
		NewVector3(0, 0, 1),
		NewVector3(0, 0, -1),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(1, 1, 1),
		NewVector3(-0.3, 0.7, 2.5),
	}

	for _, n := range normals {
		u, v, err := PlaneBasis(n)
		if err != nil {
			t.Fatalf("PlaneBasis(%v) failed: %v", n, err)
		}

		if math.Abs(u.Length()-1) > 1e-10 || math.Abs(v.Length()-1) > 1e-10 {
			t.Errorf("PlaneBasis(%v): basis vectors not unit length: |u|=%v |v|=%v", n, u.Length(), v.Length())
		}
		if math.Abs(u.Dot(v)) > 1e-10 {
			t.Errorf("PlaneBasis(%v): u and v not orthogonal: dot=%v", n, u.Dot(v))
		}
		unit := n.Normalize()
		if math.Abs(u.Dot(unit)) > 1e-10 || math.Abs(v.Dot(unit)) > 1e-10 {
			t.Errorf("PlaneBasis(%v): basis not orthogonal to normal", n)
		}
	}
}

func TestPlaneBasisZeroNormal(t *testing.T) {
	_, _, err := PlaneBasis(Vector3{})
	if err != ErrZeroNormal {
		t.Errorf("PlaneBasis of zero normal: expected ErrZeroNormal, got %v", err)
	}
}

func TestPlaneBasisDepthIndependent(t *testing.T) {
	n := NewVector3(0.2, -0.5, 1)
	u, v, err := PlaneBasis(n)
	if err != nil {
		t.Fatalf("PlaneBasis failed: %v", err)
	}

	p := NewVector3(3, -2, 7)
	q := p.AddScaled(n.Normalize(), 42) // same point shifted along the normal

	if math.Abs(p.Dot(u)-q.Dot(u)) > 1e-9 || math.Abs(p.Dot(v)-q.Dot(v)) > 1e-9 {
		t.Errorf("plane coordinates changed along the normal: (%v,%v) vs (%v,%v)",
			p.Dot(u), p.Dot(v), q.Dot(u), q.Dot(v))
	}
}

func TestSignedAreaWinding(t *testing.T) {
	ccw := []Vector2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	cw := []Vector2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	if area := SignedArea(ccw); area <= 0 {
		t.Errorf("SignedArea of CCW square: expected positive, got %v", area)
	}
	if area := SignedArea(cw); area >= 0 {
		t.Errorf("SignedArea of CW square: expected negative, got %v", area)
	}
	if area := SignedArea(ccw[:2]); area != 0 {
		t.Errorf("SignedArea of 2 points: expected 0, got %v", area)
	}
}
