package clip

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/tkaneko/qvox/pkg/geometry"
	"github.com/tkaneko/qvox/pkg/volume"
)

// Rasterize turns a finalized region into a visibility mask aligned to the
// volume grid. The polygon is reduced to 2D coordinates in the plane
// spanned by the view normal's orthonormal basis; membership is evaluated
// with a signed distance field built from that 2D polygon, which makes the
// clipped shape an infinite prism along the view direction, bounded by the
// volume extent. Points exactly on the polygon boundary count as inside.
//
// Degenerate input (zero normal, fewer than 3 vertices, zero-area polygon)
// returns an error and no mask; the caller must abort without touching the
// cumulative mask.
func Rasterize(region Region, geom volume.Geometry) (*Mask, error) {
	if len(region.Polygon) < 3 {
		return nil, ErrTooFewPoints
	}
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	inside, err := insideTest(region.Polygon, region.Normal)
	if err != nil {
		return nil, err
	}

	mask := NewMask(geom)
	idx := 0
	for k := 0; k < geom.Dims[2]; k++ {
		for j := 0; j < geom.Dims[1]; j++ {
			for i := 0; i < geom.Dims[0]; i++ {
				in := inside(geom.Point(i, j, k))
				if in == (region.Mode == RemoveInside) {
					mask.data[idx] = Hidden
				}
				idx++
			}
		}
	}
	return mask, nil
}

// insideTest builds the implicit in-polygon predicate: an SDF over the 2D
// polygon in plane coordinates, independent of depth along the normal.
func insideTest(polygon []geometry.Vector3, normal geometry.Vector3) (func(geometry.Vector3) bool, error) {
	u, v, err := geometry.PlaneBasis(normal)
	if err != nil {
		return nil, fmt.Errorf("%w: view normal has zero length", ErrDegenerateGeometry)
	}

	flat := make([]geometry.Vector2, len(polygon))
	for i, p := range polygon {
		flat[i] = geometry.NewVector2(p.Dot(u), p.Dot(v))
	}

	area := geometry.SignedArea(flat)
	if area == 0 {
		return nil, fmt.Errorf("%w: polygon has zero area", ErrDegenerateGeometry)
	}
	// The SDF sign convention expects counter-clockwise winding.
	if area < 0 {
		for i, j := 0, len(flat)-1; i < j; i, j = i+1, j-1 {
			flat[i], flat[j] = flat[j], flat[i]
		}
	}

	verts := make([]v2.Vec, len(flat))
	for i, p := range flat {
		verts[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	field, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateGeometry, err)
	}

	return func(p geometry.Vector3) bool {
		return field.Evaluate(v2.Vec{X: p.Dot(u), Y: p.Dot(v)}) <= 0
	}, nil
}
