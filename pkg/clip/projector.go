package clip

import (
	"fmt"

	"github.com/tkaneko/qvox/pkg/geometry"
)

// Projector converts viewport points into world points lying on a single
// plane orthogonal to the view direction, so the 3D polygon visually
// matches what the user traced on screen.
//
// The plane passes through the reference point (the volume center, or the
// camera focal point when no volume is loaded): every display point is
// unprojected at the reference point's screen depth. For very oblique
// polygons over a thin volume parts of the extruded prism can fall outside
// the volume's near/far bounds; this matches the original behaviour and is
// not clamped.
type Projector struct {
	Camera CameraSource
}

// ViewNormal returns the unit view direction from the camera position to
// the focal point. A zero-length camera-to-focal vector is degenerate.
func (p Projector) ViewNormal() (geometry.Vector3, error) {
	dir := p.Camera.FocalPoint().Sub(p.Camera.Position())
	if dir.Length() == 0 {
		return geometry.Vector3{}, fmt.Errorf("%w: camera view vector has zero length", ErrDegenerateGeometry)
	}
	return dir.Normalize(), nil
}

// ProjectToPlane maps the display points onto the reference plane.
// Points whose unprojection is degenerate (homogeneous w == 0) are
// skipped, so the result can be shorter than the input; callers must
// treat fewer than 3 surviving points as failure and abort the region.
func (p Projector) ProjectToPlane(reference geometry.Vector3, points []DisplayPoint) ([]geometry.Vector3, error) {
	if _, err := p.ViewNormal(); err != nil {
		return nil, err
	}

	// All polygon points share the reference point's screen depth so
	// they land on the same camera-orthogonal plane.
	_, _, depth := p.Camera.WorldToDisplay(reference)

	projected := make([]geometry.Vector3, 0, len(points))
	for _, pt := range points {
		world, w := p.Camera.DisplayToWorld(pt.X, pt.Y, depth)
		if w == 0 {
			continue
		}
		projected = append(projected, world.Mul(1/w))
	}
	return projected, nil
}
