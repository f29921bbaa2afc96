package volume

import (
	"fmt"

	"github.com/tkaneko/qvox/pkg/geometry"
)

// Geometry describes the sampling grid of a volume image: the number of
// grid points per axis, the physical spacing between neighbouring points,
// and the world position of grid point (0,0,0).
type Geometry struct {
	Dims    [3]int
	Spacing geometry.Vector3
	Origin  geometry.Vector3
}

// VoxelCount returns the total number of grid points
func (g Geometry) VoxelCount() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// Extent returns the VTK-style index extent {0, nx-1, 0, ny-1, 0, nz-1}
func (g Geometry) Extent() [6]int {
	return [6]int{0, g.Dims[0] - 1, 0, g.Dims[1] - 1, 0, g.Dims[2] - 1}
}

// Bounds returns the world-space corners of the grid
func (g Geometry) Bounds() (min, max geometry.Vector3) {
	min = g.Origin
	max = geometry.Vector3{
		X: g.Origin.X + float64(g.Dims[0]-1)*g.Spacing.X,
		Y: g.Origin.Y + float64(g.Dims[1]-1)*g.Spacing.Y,
		Z: g.Origin.Z + float64(g.Dims[2]-1)*g.Spacing.Z,
	}
	return min, max
}

// Center returns the world-space center of the grid
func (g Geometry) Center() geometry.Vector3 {
	min, max := g.Bounds()
	return geometry.Vector3{
		X: (min.X + max.X) / 2,
		Y: (min.Y + max.Y) / 2,
		Z: (min.Z + max.Z) / 2,
	}
}

// MaxDimension returns the largest world-space side length of the grid
func (g Geometry) MaxDimension() float64 {
	min, max := g.Bounds()
	d := max.Sub(min)
	side := d.X
	if d.Y > side {
		side = d.Y
	}
	if d.Z > side {
		side = d.Z
	}
	return side
}

// Point returns the world position of grid point (i, j, k)
func (g Geometry) Point(i, j, k int) geometry.Vector3 {
	return geometry.Vector3{
		X: g.Origin.X + float64(i)*g.Spacing.X,
		Y: g.Origin.Y + float64(j)*g.Spacing.Y,
		Z: g.Origin.Z + float64(k)*g.Spacing.Z,
	}
}

// Index returns the flat data index of grid point (i, j, k).
// Data is laid out x-fastest, then y, then z.
func (g Geometry) Index(i, j, k int) int {
	return i + g.Dims[0]*(j+g.Dims[1]*k)
}

// Validate checks that the geometry describes a non-empty grid with
// positive spacing
func (g Geometry) Validate() error {
	for axis, n := range g.Dims {
		if n <= 0 {
			return fmt.Errorf("volume: dimension %d is %d, must be positive", axis, n)
		}
	}
	if g.Spacing.X <= 0 || g.Spacing.Y <= 0 || g.Spacing.Z <= 0 {
		return fmt.Errorf("volume: spacing %v must be positive on every axis", g.Spacing)
	}
	return nil
}

// Volume is a scalar image sampled on a regular 3D grid. Values are kept
// as int16 regardless of the on-disk element type so that CT-style signed
// intensities and 8-bit volumes share one representation.
type Volume struct {
	Name string
	Geom Geometry
	Data []int16
}

// New creates an all-zero volume with the given geometry
func New(name string, geom Geometry) (*Volume, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	return &Volume{
		Name: name,
		Geom: geom,
		Data: make([]int16, geom.VoxelCount()),
	}, nil
}

// At returns the value at grid point (i, j, k)
func (v *Volume) At(i, j, k int) int16 {
	return v.Data[v.Geom.Index(i, j, k)]
}

// Set stores a value at grid point (i, j, k)
func (v *Volume) Set(i, j, k int, value int16) {
	v.Data[v.Geom.Index(i, j, k)] = value
}

// ValueRange returns the minimum and maximum scalar value in the volume
func (v *Volume) ValueRange() (min, max int16) {
	if len(v.Data) == 0 {
		return 0, 0
	}
	min, max = v.Data[0], v.Data[0]
	for _, s := range v.Data {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return min, max
}
