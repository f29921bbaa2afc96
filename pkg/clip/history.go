package clip

import "log"

// DefaultMaxUndo bounds the undo stack unless overridden
const DefaultMaxUndo = 10

// Command is a single undoable transition between two states
type Command[T any] struct {
	Before T
	After  T
}

// History is a bounded undo/redo stack of commands. It is deliberately
// unaware of what the states mean: apply callbacks are injected per call,
// and a callback failure leaves both stacks untouched, so the history
// never commits a partial transition. Undo and redo move commands between
// the two stacks without creating new ones.
type History[T any] struct {
	maxUndo int
	undo    []Command[T]
	redo    []Command[T]
}

// NewHistory creates a history bounded to maxUndo entries; values below 1
// fall back to DefaultMaxUndo
func NewHistory[T any](maxUndo int) *History[T] {
	if maxUndo < 1 {
		maxUndo = DefaultMaxUndo
	}
	return &History[T]{maxUndo: maxUndo}
}

// CanUndo reports whether an undo is possible
func (h *History[T]) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo is possible
func (h *History[T]) CanRedo() bool {
	return len(h.redo) > 0
}

// Clear drops both stacks
func (h *History[T]) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
	log.Printf("[history] cleared")
}

// Do applies a new command and pushes it onto the undo stack. The apply
// callback runs first; if it fails the stacks are left unchanged. On
// success the redo stack is always cleared and the undo stack is trimmed
// to the bound, dropping the oldest entry.
func (h *History[T]) Do(cmd Command[T], apply func(T) error) error {
	if err := apply(cmd.After); err != nil {
		return err
	}
	h.undo = append(h.undo, cmd)
	if len(h.undo) > h.maxUndo {
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
	return nil
}

// Undo restores the most recent command's before-state and moves the
// command to the redo stack. An empty stack is a no-op.
func (h *History[T]) Undo(apply func(T) error) error {
	if len(h.undo) == 0 {
		return nil
	}
	cmd := h.undo[len(h.undo)-1]
	if err := apply(cmd.Before); err != nil {
		return err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return nil
}

// Redo restores the most recently undone command's after-state and moves
// the command back to the undo stack. An empty stack is a no-op.
func (h *History[T]) Redo(apply func(T) error) error {
	if len(h.redo) == 0 {
		return nil
	}
	cmd := h.redo[len(h.redo)-1]
	if err := apply(cmd.After); err != nil {
		return err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return nil
}
