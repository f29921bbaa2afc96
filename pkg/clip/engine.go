package clip

import (
	"log"

	"github.com/tkaneko/qvox/pkg/volume"
)

// Engine owns the session's cumulative visibility mask, its compressed
// state, and the undo/redo history. All operations run synchronously on
// the interaction thread; every mutation builds a new mask and swaps it
// in, so a failure at any step leaves the previous mask and the history
// untouched.
type Engine struct {
	geom       volume.Geometry
	cumulative *Mask
	state      State
	history    *History[State]
	onMask     func(*Mask)
}

// Option configures an Engine
type Option func(*Engine)

// WithMaxUndo bounds the undo stack
func WithMaxUndo(n int) Option {
	return func(e *Engine) {
		e.history = NewHistory[State](n)
	}
}

// WithMaskObserver registers a callback invoked with the new cumulative
// mask after every successful state change; the renderer feeds it into
// its masking stage
func WithMaskObserver(fn func(*Mask)) Option {
	return func(e *Engine) {
		e.onMask = fn
	}
}

// NewEngine creates an engine for a volume with the given grid geometry
func NewEngine(geom volume.Geometry, opts ...Option) *Engine {
	e := &Engine{
		geom:       geom,
		cumulative: NewMask(geom),
		state:      DefaultState(),
		history:    NewHistory[State](DefaultMaxUndo),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mask returns the current cumulative mask
func (e *Engine) Mask() *Mask {
	return e.cumulative
}

// State returns the current compressed state snapshot
func (e *Engine) State() State {
	return e.state
}

// Enabled reports whether any clipping is active
func (e *Engine) Enabled() bool {
	return e.state.Enabled()
}

// CanUndo reports whether an undo is possible
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether a redo is possible
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// Apply rasterizes the region, merges it into a copy of the cumulative
// mask, and commits the transition through the history. On any failure
// the cumulative mask, the state, and the history are unchanged.
func (e *Engine) Apply(region Region) error {
	regionMask, err := Rasterize(region, e.geom)
	if err != nil {
		log.Printf("[clip] aborting region (%s, %d points): %v", region.Mode, len(region.Polygon), err)
		return err
	}

	next := e.cumulative.Clone()
	if err := next.Merge(regionMask); err != nil {
		return err
	}

	after, err := Encode(next)
	if err != nil {
		return err
	}

	cmd := Command[State]{Before: e.state, After: after}
	if err := e.history.Do(cmd, e.applyState); err != nil {
		return err
	}
	log.Printf("[clip] applied %s region, %d voxels hidden", region.Mode, next.HiddenCount())
	return nil
}

// Undo restores the previous state; a no-op when the history is empty
func (e *Engine) Undo() error {
	return e.history.Undo(e.applyState)
}

// Redo reapplies the most recently undone state; a no-op when nothing
// was undone
func (e *Engine) Redo() error {
	return e.history.Redo(e.applyState)
}

// Reset discards all clipping and history and restores the all-visible
// mask; used when clipping is turned off or a new volume loads
func (e *Engine) Reset() {
	e.cumulative = NewMask(e.geom)
	e.state = DefaultState()
	e.history.Clear()
	e.notify()
}

// SetGeometry rebinds the engine to a newly loaded volume. Masks and
// snapshots are only meaningful against the volume they were captured
// from, so this is always a full reset.
func (e *Engine) SetGeometry(geom volume.Geometry) {
	e.geom = geom
	e.Reset()
}

// applyState is the history's apply callback: decode, then swap. Decoding
// validates the voxel count, so a snapshot from another volume surfaces
// as an IntegrityError before anything is swapped in.
func (e *Engine) applyState(s State) error {
	mask, err := Decode(s, e.geom)
	if err != nil {
		return err
	}
	e.cumulative = mask
	e.state = s
	e.notify()
	return nil
}

func (e *Engine) notify() {
	if e.onMask != nil {
		e.onMask(e.cumulative)
	}
}
