package geometry

import (
	"errors"
	"math"
)

// ErrZeroNormal is returned when a plane basis is requested for a
// zero-length normal vector.
var ErrZeroNormal = errors.New("geometry: zero-length normal")

// PlaneBasis returns two orthonormal vectors u, v spanning the plane with
// the given normal. Together with the normalized normal they form a
// right-handed coordinate frame, so (p.Dot(u), p.Dot(v)) are stable 2D
// coordinates for any point p regardless of its position along the normal.
func PlaneBasis(normal Vector3) (u, v Vector3, err error) {
	n := normal.Normalize()
	if n.Length() == 0 {
		return Vector3{}, Vector3{}, ErrZeroNormal
	}

	// Pick the world axis least aligned with the normal to avoid a
	// near-parallel cross product.
	axis := NewVector3(1, 0, 0)
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ay <= ax && ay <= az {
		axis = NewVector3(0, 1, 0)
	} else if az <= ax && az <= ay {
		axis = NewVector3(0, 0, 1)
	}

	u = axis.Cross(n).Normalize()
	v = n.Cross(u)
	return u, v, nil
}
