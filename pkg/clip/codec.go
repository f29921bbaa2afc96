package clip

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/tkaneko/qvox/pkg/volume"
)

// State is an immutable, compressed snapshot of the cumulative mask, used
// as the undo/redo unit. The zero State means "no active masking" (all
// voxels visible). States may be freely shared and cached; nothing
// mutates them after construction.
type State struct {
	VoxelCount uint64
	Compressed []byte
}

// DefaultState returns the no-masking state
func DefaultState() State {
	return State{}
}

// Enabled reports whether the state carries a mask snapshot
func (s State) Enabled() bool {
	return s.Compressed != nil
}

// Encode flattens the mask in the volume-defined order and compresses it
func Encode(m *Mask) (State, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(m.Data()); err != nil {
		return State{}, fmt.Errorf("clip: compressing mask: %w", err)
	}
	if err := w.Close(); err != nil {
		return State{}, fmt.Errorf("clip: compressing mask: %w", err)
	}
	return State{
		VoxelCount: uint64(len(m.Data())),
		Compressed: buf.Bytes(),
	}, nil
}

// Decode inflates a state back into a mask aligned to the given volume
// geometry. A disabled state yields the all-visible mask. A decompressed
// byte count that differs from the volume's voxel count (a snapshot taken
// against a different volume) is an IntegrityError.
func Decode(s State, geom volume.Geometry) (*Mask, error) {
	mask := NewMask(geom)
	if !s.Enabled() {
		return mask, nil
	}

	expected := geom.VoxelCount()
	if s.VoxelCount != uint64(expected) {
		return nil, &IntegrityError{Expected: expected, Actual: int(s.VoxelCount)}
	}

	r, err := zlib.NewReader(bytes.NewReader(s.Compressed))
	if err != nil {
		return nil, fmt.Errorf("clip: decompressing state: %w", err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("clip: decompressing state: %w", err)
	}
	if len(raw) != expected {
		return nil, &IntegrityError{Expected: expected, Actual: len(raw)}
	}

	copy(mask.data, raw)
	return mask, nil
}

// Equal reports whether two states decompress to byte-identical masks.
// A disabled state stands for the all-visible mask of the other state's
// voxel count.
func (s State) Equal(other State) bool {
	if !s.Enabled() && !other.Enabled() {
		return true
	}
	a, okA := s.materialize(other)
	b, okB := other.materialize(s)
	if !okA || !okB {
		return false
	}
	return bytes.Equal(a, b)
}

// materialize returns the decompressed voxel bytes, using the peer state's
// voxel count when s itself is disabled
func (s State) materialize(peer State) ([]byte, bool) {
	count := s.VoxelCount
	if !s.Enabled() {
		count = peer.VoxelCount
		return make([]byte, count), true
	}

	r, err := zlib.NewReader(bytes.NewReader(s.Compressed))
	if err != nil {
		return nil, false
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil || len(raw) != int(count) {
		return nil, false
	}
	return raw, true
}
