package clip

import (
	"errors"
	"testing"

	"github.com/tkaneko/qvox/pkg/geometry"
)

// squareRegion covers voxel centers x in {0, 1} of a unit-spaced grid,
// drawn in a view looking down the -Z axis
func squareRegion(mode ClipMode) Region {
	return Region{
		Mode: mode,
		Polygon: []geometry.Vector3{
			geometry.NewVector3(-0.5, -0.5, 1.5),
			geometry.NewVector3(1.5, -0.5, 1.5),
			geometry.NewVector3(1.5, 3.5, 1.5),
			geometry.NewVector3(-0.5, 3.5, 1.5),
		},
		Normal: geometry.NewVector3(0, 0, -1),
	}
}

func TestRasterizeRemoveInside(t *testing.T) {
	geom := cubeGeometry(4)
	mask, err := Rasterize(squareRegion(RemoveInside), geom)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if mask.HiddenCount() != 32 {
		t.Errorf("Rasterize failed: expected 32 hidden voxels, got %d", mask.HiddenCount())
	}
	for k := 0; k < 4; k++ {
		for j := 0; j < 4; j++ {
			for i := 0; i < 4; i++ {
				want := Visible
				if i <= 1 {
					want = Hidden
				}
				if got := mask.At(i, j, k); got != want {
					t.Errorf("Rasterize failed: voxel (%d,%d,%d) expected %d, got %d", i, j, k, want, got)
				}
			}
		}
	}
}

func TestRasterizeRemoveOutsideIsComplement(t *testing.T) {
	geom := cubeGeometry(4)

	inside, err := Rasterize(squareRegion(RemoveInside), geom)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	outside, err := Rasterize(squareRegion(RemoveOutside), geom)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	for i := range inside.data {
		if inside.data[i] == outside.data[i] {
			t.Fatalf("remove-outside must hide exactly the voxels remove-inside keeps, voxel %d differs", i)
		}
	}
	if outside.HiddenCount() != 32 {
		t.Errorf("Rasterize failed: expected 32 hidden voxels, got %d", outside.HiddenCount())
	}
}

func TestRasterizeWindingIndependent(t *testing.T) {
	geom := cubeGeometry(4)
	ccw := squareRegion(RemoveInside)

	cw := squareRegion(RemoveInside)
	for i, j := 0, len(cw.Polygon)-1; i < j; i, j = i+1, j-1 {
		cw.Polygon[i], cw.Polygon[j] = cw.Polygon[j], cw.Polygon[i]
	}

	a, err := Rasterize(ccw, geom)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	b, err := Rasterize(cw, geom)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("Rasterize failed: polygon winding changed the mask")
	}
}

func TestRasterizeDepthIndependent(t *testing.T) {
	geom := cubeGeometry(4)
	shifted := squareRegion(RemoveInside)
	for i := range shifted.Polygon {
		shifted.Polygon[i].Z = 40
	}

	a, err := Rasterize(squareRegion(RemoveInside), geom)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	b, err := Rasterize(shifted, geom)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("Rasterize failed: the clipped prism must not depend on the polygon's depth along the view direction")
	}
}

func TestRasterizeTooFewPoints(t *testing.T) {
	region := Region{
		Mode: RemoveInside,
		Polygon: []geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
		},
		Normal: geometry.NewVector3(0, 0, -1),
	}
	if _, err := Rasterize(region, cubeGeometry(4)); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("Rasterize failed: expected ErrTooFewPoints, got %v", err)
	}
}

func TestRasterizeZeroNormal(t *testing.T) {
	region := squareRegion(RemoveInside)
	region.Normal = geometry.Vector3{}
	if _, err := Rasterize(region, cubeGeometry(4)); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("Rasterize failed: expected ErrDegenerateGeometry, got %v", err)
	}
}

func TestRasterizeCollinearPolygon(t *testing.T) {
	region := Region{
		Mode: RemoveInside,
		Polygon: []geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 1, 0),
			geometry.NewVector3(2, 2, 0),
		},
		Normal: geometry.NewVector3(0, 0, -1),
	}
	if _, err := Rasterize(region, cubeGeometry(4)); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("Rasterize failed: expected ErrDegenerateGeometry for a zero-area polygon, got %v", err)
	}
}
