package app

import (
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tkaneko/qvox/pkg/clip"
)

// handleInput processes user input
func (app *App) handleInput() {
	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		app.setCameraBottomView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		app.setCameraBackView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraLeftView()
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		app.setCameraRightView()
	}

	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	// Selection mode toggle
	if rl.IsKeyPressed(rl.KeyS) && !ctrlPressed {
		if app.Clip.selector.Enabled() {
			app.Clip.selector.Disable()
		} else {
			app.Clip.selector.Enable()
		}
	}

	// Clip mode toggle; applies to the next completed region
	if rl.IsKeyPressed(rl.KeyX) {
		if app.Clip.mode == clip.RemoveInside {
			app.Clip.mode = clip.RemoveOutside
		} else {
			app.Clip.mode = clip.RemoveInside
		}
		log.Printf("[app] clip mode: %s", app.Clip.mode)
	}

	// Undo/redo over applied regions
	if ctrlPressed && rl.IsKeyPressed(rl.KeyZ) {
		if shiftPressed {
			if err := app.Clip.engine.Redo(); err != nil {
				log.Printf("[app] redo failed: %v", err)
			}
		} else {
			if err := app.Clip.engine.Undo(); err != nil {
				log.Printf("[app] undo failed: %v", err)
			}
		}
	}
	if ctrlPressed && rl.IsKeyPressed(rl.KeyY) {
		if err := app.Clip.engine.Redo(); err != nil {
			log.Printf("[app] redo failed: %v", err)
		}
	}

	// Clear all clipping
	if rl.IsKeyPressed(rl.KeyC) && !ctrlPressed {
		app.Clip.engine.Reset()
	}

	if rl.IsKeyPressed(rl.KeyEnter) {
		app.Clip.selector.Complete()
	}
	if rl.IsKeyPressed(rl.KeyEscape) && app.Clip.selector.Enabled() {
		app.Clip.selector.Disable()
	}

	if rl.IsKeyPressed(rl.KeyG) {
		app.View.showBounds = !app.View.showBounds
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHUD = !app.View.showHUD
	}

	// Display threshold; hides background air without touching the mask
	if rl.IsKeyPressed(rl.KeyUp) {
		app.adjustThreshold(1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		app.adjustThreshold(-1)
	}

	// Clicks add polygon points while selecting
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && app.Clip.selector.Enabled() {
		pos := rl.GetMousePosition()
		app.Clip.selector.AddPoint(float64(pos.X), float64(pos.Y))
	}

	cameraMoved := false

	// Camera panning with Shift + mouse drag or middle mouse button drag
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && shiftPressed) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
			cameraMoved = true
		}
	} else if rl.IsMouseButtonDown(rl.MouseRightButton) {
		// Camera rotation with right mouse drag; the left button is
		// reserved for polygon points while selecting
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Camera.angleY += delta.X * 0.01
			app.Camera.angleX -= delta.Y * 0.01

			// Clamp vertical rotation
			if app.Camera.angleX > 1.5 {
				app.Camera.angleX = 1.5
			}
			if app.Camera.angleX < -1.5 {
				app.Camera.angleX = -1.5
			}
			cameraMoved = true
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) && !app.Clip.selector.Enabled() {
		delta := rl.GetMouseDelta()
		if math.Abs(float64(delta.X)) > 0 || math.Abs(float64(delta.Y)) > 0 {
			app.Camera.angleY += delta.X * 0.01
			app.Camera.angleX -= delta.Y * 0.01
			if app.Camera.angleX > 1.5 {
				app.Camera.angleX = 1.5
			}
			if app.Camera.angleX < -1.5 {
				app.Camera.angleX = -1.5
			}
			cameraMoved = true
		}
	}

	// Zoom with mouse wheel
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.Camera.distance *= (1.0 - wheel*0.03)
		if app.Camera.distance < 1.0 {
			app.Camera.distance = 1.0
		}
		cameraMoved = true
	}

	// An open selection is re-projected against the moved camera and the
	// prism preview follows it
	if cameraMoved && app.Clip.selector.Enabled() {
		app.Clip.selector.InvalidateProjection()
		app.Clip.worldPreview = app.Clip.selector.WorldPoints()
	}
}

// refreshPreview mirrors the selector's display points for overlay drawing
func (app *App) refreshPreview() {
	points := app.Clip.selector.DisplayPoints()
	app.Clip.preview = app.Clip.preview[:0]
	for _, p := range points {
		app.Clip.preview = append(app.Clip.preview, rl.Vector2{X: float32(p.X), Y: float32(p.Y)})
	}
}

// adjustThreshold nudges the display threshold by a fraction of the
// value range
func (app *App) adjustThreshold(direction int) {
	span := int(app.Volume.hi) - int(app.Volume.lo)
	step := span / 50
	if step < 1 {
		step = 1
	}
	next := int(app.Volume.threshold) + direction*step
	if next < int(app.Volume.lo) {
		next = int(app.Volume.lo)
	}
	if next > int(app.Volume.hi) {
		next = int(app.Volume.hi)
	}
	app.Volume.threshold = int16(next)
}
