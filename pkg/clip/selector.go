package clip

import (
	"log"

	"github.com/tkaneko/qvox/pkg/geometry"
)

// RegionSelectionObserver receives the finalized polygon once the user
// closes a selection
type RegionSelectionObserver interface {
	RegionClosed(display []DisplayPoint, world []geometry.Vector3)
}

// Selector collects an ordered, de-duplicated sequence of display points
// forming one polygon and signals completion to its observer.
//
// Lifecycle: Idle -> Selecting (Enable) -> Idle (Disable/cancel) or
// Closed (Complete with >=3 points). Closed is terminal for that
// selection; a new selection must Enable again.
type Selector struct {
	camera    func() CameraSource
	reference func() geometry.Vector3
	observer  RegionSelectionObserver
	preview   func([]geometry.Vector3)

	enabled bool
	display []DisplayPoint
	world   []geometry.Vector3 // cached projection, rebuilt lazily
}

// NewSelector creates a selector. The camera and reference providers are
// consulted at projection time so the selection follows the live camera;
// the observer is invoked once per closed region.
func NewSelector(camera func() CameraSource, reference func() geometry.Vector3, observer RegionSelectionObserver) *Selector {
	return &Selector{
		camera:    camera,
		reference: reference,
		observer:  observer,
	}
}

// SetPreviewFunc registers a callback invoked with the projected polygon
// whenever the in-progress selection changes, for drawing the outline
func (s *Selector) SetPreviewFunc(fn func([]geometry.Vector3)) {
	s.preview = fn
}

// Enabled reports whether the selector is accepting points
func (s *Selector) Enabled() bool {
	return s.enabled
}

// Enable resets the point buffer and begins accepting points. Enabling an
// already enabled selector restarts the selection.
func (s *Selector) Enable() {
	s.reset()
	s.enabled = true
	log.Printf("[clip] region selection enabled")
}

// Disable stops accepting points; a partial polygon is discarded
func (s *Selector) Disable() {
	if !s.enabled {
		return
	}
	s.reset()
	s.enabled = false
	s.notifyPreview()
	log.Printf("[clip] region selection disabled")
}

// AddPoint appends a display point to the open polygon. Consecutive
// duplicates are dropped; any cached projection is invalidated and the
// preview is refreshed.
func (s *Selector) AddPoint(x, y float64) {
	if !s.enabled {
		return
	}
	pt := DisplayPoint{X: x, Y: y}
	if n := len(s.display); n > 0 && s.display[n-1] == pt {
		return
	}
	s.display = append(s.display, pt)
	s.InvalidateProjection()
	s.notifyPreview()
}

// DisplayPoints returns a copy of the captured display points
func (s *Selector) DisplayPoints() []DisplayPoint {
	out := make([]DisplayPoint, len(s.display))
	copy(out, s.display)
	return out
}

// WorldPoints returns the captured points projected onto the reference
// plane, recomputing the projection if the camera moved since the last
// call. The user's click sequence is preserved.
func (s *Selector) WorldPoints() []geometry.Vector3 {
	if len(s.display) == 0 {
		return nil
	}
	if s.world == nil {
		proj := Projector{Camera: s.camera()}
		world, err := proj.ProjectToPlane(s.reference(), s.display)
		if err != nil {
			log.Printf("[clip] projection failed: %v", err)
			return nil
		}
		s.world = world
	}
	out := make([]geometry.Vector3, len(s.world))
	copy(out, s.world)
	return out
}

// InvalidateProjection drops the cached world points so the next access
// re-projects against the current camera. The shell calls this when a
// camera interaction ends during an open selection.
func (s *Selector) InvalidateProjection() {
	s.world = nil
}

// Complete finalizes the selection. With fewer than 3 captured points it
// is a logged no-op and the selection stays open. On success the observer
// receives the ordered display and world points and the selector returns
// to Idle; a new selection requires Enable.
func (s *Selector) Complete() {
	if !s.enabled {
		return
	}
	if len(s.display) < 3 {
		log.Printf("[clip] need at least 3 points to close a region, have %d", len(s.display))
		return
	}

	world := s.WorldPoints()
	if len(world) < 3 {
		log.Printf("[clip] projected points are insufficient to close a region, aborting")
		s.reset()
		s.enabled = false
		s.notifyPreview()
		return
	}

	display := s.DisplayPoints()
	s.reset()
	s.enabled = false
	s.notifyPreview()

	if s.observer != nil {
		s.observer.RegionClosed(display, world)
	}
	log.Printf("[clip] region closed with %d points", len(display))
}

func (s *Selector) reset() {
	s.display = s.display[:0]
	s.world = nil
}

func (s *Selector) notifyPreview() {
	if s.preview != nil {
		s.preview(s.WorldPoints())
	}
}
