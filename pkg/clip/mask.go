package clip

import (
	"bytes"

	"github.com/tkaneko/qvox/pkg/volume"
)

// Voxel visibility values. The mask holds one byte per volume grid point.
const (
	Visible byte = 0
	Hidden  byte = 255
)

// Mask is a dense per-voxel visibility field whose dimensions, spacing and
// origin always equal the volume's. It is never resized or re-aligned
// independently of the volume; loading a new volume discards it.
type Mask struct {
	geom volume.Geometry
	data []byte
}

// NewMask returns an all-visible mask matching the volume geometry
func NewMask(geom volume.Geometry) *Mask {
	return &Mask{
		geom: geom,
		data: make([]byte, geom.VoxelCount()),
	}
}

// Geometry returns the grid geometry the mask is aligned to
func (m *Mask) Geometry() volume.Geometry {
	return m.geom
}

// Data exposes the flat voxel buffer in the volume's x-fastest order.
// The renderer reads it; callers must not modify it.
func (m *Mask) Data() []byte {
	return m.data
}

// At returns the visibility value at grid point (i, j, k)
func (m *Mask) At(i, j, k int) byte {
	return m.data[m.geom.Index(i, j, k)]
}

// Clone returns an independent copy of the mask
func (m *Mask) Clone() *Mask {
	c := &Mask{
		geom: m.geom,
		data: make([]byte, len(m.data)),
	}
	copy(c.data, m.data)
	return c
}

// Equal reports whether two masks cover the same grid with identical
// voxel values
func (m *Mask) Equal(other *Mask) bool {
	return m.geom == other.geom && bytes.Equal(m.data, other.data)
}

// HiddenCount returns the number of hidden voxels
func (m *Mask) HiddenCount() int {
	n := 0
	for _, v := range m.data {
		if v == Hidden {
			n++
		}
	}
	return n
}

// Merge accumulates a freshly rasterized region mask into m: a voxel is
// hidden once any applied region hides it, and stays hidden until undo.
// The merge is commutative and associative, so the order regions are
// applied in does not change the final visible set.
func (m *Mask) Merge(region *Mask) error {
	if m.geom != region.geom {
		return ErrGeometryMismatch
	}
	for i, v := range region.data {
		if v > m.data[i] {
			m.data[i] = v
		}
	}
	return nil
}
