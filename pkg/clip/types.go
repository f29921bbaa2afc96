// Package clip implements the non-destructive region-clipping engine of
// the viewer: screen-space polygon selection, projection onto a
// camera-aligned reference plane, rasterization into a per-voxel
// visibility mask, cumulative mask accumulation, and bounded undo/redo
// over compressed mask snapshots. The original voxel data is never
// modified; the renderer combines it with the mask at display time.
package clip

import (
	"errors"
	"fmt"

	"github.com/tkaneko/qvox/pkg/geometry"
)

// DisplayPoint is a 2D pixel coordinate in the current viewport
type DisplayPoint struct {
	X, Y float64
}

// ClipMode selects which side of the polygon a region hides
type ClipMode int

const (
	// RemoveInside hides the voxels enclosed by the polygon
	RemoveInside ClipMode = iota
	// RemoveOutside hides the voxels outside the polygon
	RemoveOutside
)

func (m ClipMode) String() string {
	switch m {
	case RemoveInside:
		return "remove-inside"
	case RemoveOutside:
		return "remove-outside"
	default:
		return fmt.Sprintf("ClipMode(%d)", int(m))
	}
}

// Region is one finalized user-drawn polygon together with its clip mode
// and the view direction it was drawn under. The polygon vertices lie on
// a plane orthogonal to Normal; the clipped shape is the infinite prism
// obtained by extruding the polygon along Normal, bounded by the volume.
// A Region is immutable once built and is consumed by a single Apply.
type Region struct {
	Mode    ClipMode
	Polygon []geometry.Vector3
	Normal  geometry.Vector3
}

var (
	// ErrTooFewPoints reports a polygon with fewer than 3 usable points
	ErrTooFewPoints = errors.New("clip: polygon needs at least 3 points")

	// ErrDegenerateGeometry reports a zero-length view vector, a
	// degenerate projection, or a polygon with no area
	ErrDegenerateGeometry = errors.New("clip: degenerate geometry")

	// ErrGeometryMismatch reports masks with different grid geometry
	ErrGeometryMismatch = errors.New("clip: mask geometry mismatch")
)

// IntegrityError reports a decompressed state whose voxel count does not
// match the current volume, e.g. a snapshot captured against a different
// volume. It is a hard error, never a silent truncation.
type IntegrityError struct {
	Expected int
	Actual   int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("clip: state holds %d voxels, volume has %d", e.Actual, e.Expected)
}

// CameraSource exposes the camera and viewport transforms the engine
// needs. The production implementation wraps the viewer camera; tests use
// a fixed orthographic stub.
type CameraSource interface {
	// Position returns the camera position in world coordinates
	Position() geometry.Vector3

	// FocalPoint returns the point the camera looks at
	FocalPoint() geometry.Vector3

	// WorldToDisplay projects a world point to viewport pixel
	// coordinates plus a depth value
	WorldToDisplay(p geometry.Vector3) (x, y, depth float64)

	// DisplayToWorld maps pixel coordinates at a given depth back to a
	// world point with a homogeneous weight; w == 0 marks a degenerate
	// projection and the point must be discarded
	DisplayToWorld(x, y, depth float64) (p geometry.Vector3, w float64)
}
