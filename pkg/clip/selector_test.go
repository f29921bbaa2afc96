package clip

import (
	"testing"

	"github.com/tkaneko/qvox/pkg/geometry"
)

type recordingObserver struct {
	calls   int
	display []DisplayPoint
	world   []geometry.Vector3
}

func (o *recordingObserver) RegionClosed(display []DisplayPoint, world []geometry.Vector3) {
	o.calls++
	o.display = display
	o.world = world
}

func newTestSelector(cam *orthoCamera, obs *recordingObserver) *Selector {
	reference := geometry.NewVector3(1.5, 1.5, 1.5)
	return NewSelector(
		func() CameraSource { return cam },
		func() geometry.Vector3 { return reference },
		obs,
	)
}

func TestSelectorIgnoresPointsWhileDisabled(t *testing.T) {
	s := newTestSelector(newOrthoCamera(), &recordingObserver{})
	s.AddPoint(1, 1)
	if len(s.DisplayPoints()) != 0 {
		t.Errorf("AddPoint failed: a disabled selector must not capture points")
	}
}

func TestSelectorDropsConsecutiveDuplicates(t *testing.T) {
	s := newTestSelector(newOrthoCamera(), &recordingObserver{})
	s.Enable()
	s.AddPoint(1, 1)
	s.AddPoint(1, 1)
	s.AddPoint(2, 2)
	s.AddPoint(1, 1)

	if got := len(s.DisplayPoints()); got != 3 {
		t.Errorf("AddPoint failed: expected 3 points after dropping the duplicate, got %d", got)
	}
}

func TestSelectorEnableRestartsSelection(t *testing.T) {
	s := newTestSelector(newOrthoCamera(), &recordingObserver{})
	s.Enable()
	s.AddPoint(1, 1)
	s.Enable()
	if len(s.DisplayPoints()) != 0 {
		t.Errorf("Enable failed: re-enabling must restart the selection")
	}
}

func TestSelectorCompleteTooFewPointsStaysOpen(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestSelector(newOrthoCamera(), obs)
	s.Enable()
	s.AddPoint(0, 0)
	s.AddPoint(1, 0)
	s.Complete()

	if obs.calls != 0 {
		t.Errorf("Complete failed: a polygon with 2 points must not be delivered")
	}
	if !s.Enabled() {
		t.Errorf("Complete failed: the selection must stay open after a short polygon")
	}
	if len(s.DisplayPoints()) != 2 {
		t.Errorf("Complete failed: the captured points must survive, got %d", len(s.DisplayPoints()))
	}
}

func TestSelectorCompleteDeliversRegion(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestSelector(newOrthoCamera(), obs)
	s.Enable()
	s.AddPoint(-0.5, -0.5)
	s.AddPoint(1.5, -0.5)
	s.AddPoint(1.5, 3.5)
	s.AddPoint(-0.5, 3.5)
	s.Complete()

	if obs.calls != 1 {
		t.Fatalf("Complete failed: expected 1 observer call, got %d", obs.calls)
	}
	if len(obs.display) != 4 || len(obs.world) != 4 {
		t.Fatalf("Complete failed: expected 4 display and 4 world points, got %d/%d", len(obs.display), len(obs.world))
	}
	for i, w := range obs.world {
		if w.Z != 1.5 {
			t.Errorf("world point %d not on the reference plane: z=%v", i, w.Z)
		}
	}
	if s.Enabled() {
		t.Errorf("Complete failed: the selector must return to idle after delivering a region")
	}
	if len(s.DisplayPoints()) != 0 {
		t.Errorf("Complete failed: the point buffer must be cleared")
	}
}

func TestSelectorDisableDiscardsPartialPolygon(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestSelector(newOrthoCamera(), obs)
	s.Enable()
	s.AddPoint(0, 0)
	s.AddPoint(1, 0)
	s.AddPoint(1, 1)
	s.Disable()

	if obs.calls != 0 {
		t.Errorf("Disable failed: cancelling must not deliver a region")
	}
	if len(s.DisplayPoints()) != 0 {
		t.Errorf("Disable failed: the partial polygon must be discarded")
	}
}

func TestSelectorPreviewFollowsSelection(t *testing.T) {
	obs := &recordingObserver{}
	s := newTestSelector(newOrthoCamera(), obs)

	var calls int
	var last []geometry.Vector3
	s.SetPreviewFunc(func(world []geometry.Vector3) {
		calls++
		last = world
	})

	s.Enable()
	s.AddPoint(-0.5, -0.5)
	s.AddPoint(1.5, -0.5)
	s.AddPoint(1.5, 3.5)

	if calls != 3 {
		t.Fatalf("SetPreviewFunc failed: expected 3 preview calls, got %d", calls)
	}
	if len(last) != 3 {
		t.Fatalf("SetPreviewFunc failed: expected the projected polygon, got %d points", len(last))
	}
	for i, w := range last {
		if w.Z != 1.5 {
			t.Errorf("preview point %d not on the reference plane: z=%v", i, w.Z)
		}
	}

	s.Complete()
	if obs.calls != 1 {
		t.Fatalf("Complete failed: expected 1 observer call, got %d", obs.calls)
	}
	if calls != 4 || len(last) != 0 {
		t.Errorf("SetPreviewFunc failed: closing must clear the preview, got %d calls with %d points", calls, len(last))
	}
}

func TestSelectorPreviewClearedOnDisable(t *testing.T) {
	s := newTestSelector(newOrthoCamera(), &recordingObserver{})

	var last []geometry.Vector3
	s.SetPreviewFunc(func(world []geometry.Vector3) {
		last = world
	})

	s.Enable()
	s.AddPoint(0, 0)
	s.AddPoint(1, 0)
	if len(last) != 2 {
		t.Fatalf("SetPreviewFunc failed: expected 2 preview points, got %d", len(last))
	}

	s.Disable()
	if len(last) != 0 {
		t.Errorf("SetPreviewFunc failed: cancelling must clear the preview, got %d points", len(last))
	}
}

func TestSelectorReprojectsAfterCameraMove(t *testing.T) {
	cam := newOrthoCamera()
	s := newTestSelector(cam, &recordingObserver{})
	s.Enable()
	s.AddPoint(0, 0)
	s.AddPoint(1, 0)
	s.AddPoint(1, 1)

	before := s.WorldPoints()
	if len(before) != 3 {
		t.Fatalf("WorldPoints failed: expected 3 points, got %d", len(before))
	}

	// The camera moves sideways, the cached projection goes stale.
	cam.shift = geometry.NewVector3(10, 0, 0)
	s.InvalidateProjection()

	after := s.WorldPoints()
	if len(after) != 3 {
		t.Fatalf("WorldPoints failed: expected 3 points, got %d", len(after))
	}
	if after[0].X == before[0].X {
		t.Errorf("WorldPoints failed: invalidation must re-project against the moved camera")
	}
}

func TestSelectorAbortsWhenProjectionDegenerates(t *testing.T) {
	cam := newOrthoCamera()
	cam.degenerate = map[float64]bool{0: true, 1: true}
	obs := &recordingObserver{}
	s := newTestSelector(cam, obs)
	s.Enable()
	s.AddPoint(0, 0)
	s.AddPoint(1, 0)
	s.AddPoint(0, 1)
	s.Complete()

	if obs.calls != 0 {
		t.Errorf("Complete failed: a degenerate projection must not deliver a region")
	}
	if s.Enabled() {
		t.Errorf("Complete failed: the selection must be abandoned after a degenerate projection")
	}
}
