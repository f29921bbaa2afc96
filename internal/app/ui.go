package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tkaneko/qvox/pkg/clip"
	"github.com/tkaneko/qvox/pkg/geometry"
)

// drawSelectionOverlay draws the in-progress polygon in screen space:
// captured points as markers, connected in click order, with a rubber
// band to the cursor
func (app *App) drawSelectionOverlay() {
	if !app.Clip.selector.Enabled() {
		return
	}

	outline := rl.NewColor(255, 210, 60, 255)
	for i, p := range app.Clip.preview {
		rl.DrawCircleV(p, 4, outline)
		if i > 0 {
			rl.DrawLineV(app.Clip.preview[i-1], p, outline)
		}
	}

	if n := len(app.Clip.preview); n > 0 {
		mouse := rl.GetMousePosition()
		rl.DrawLineV(app.Clip.preview[n-1], mouse, rl.Fade(outline, 0.5))
		// Closing edge hint once the polygon can be completed
		if n >= 3 {
			rl.DrawLineV(app.Clip.preview[n-1], app.Clip.preview[0], rl.Fade(outline, 0.3))
		}
	}
}

// drawSelectionPrism draws the projected polygon extruded both ways along
// the view direction, showing the voxel slab a completed region would
// affect. Drawn inside the 3D pass.
func (app *App) drawSelectionPrism() {
	world := app.Clip.worldPreview
	if !app.Clip.selector.Enabled() || len(world) < 2 {
		return
	}

	proj := clip.Projector{Camera: app.Clip.view}
	normal, err := proj.ViewNormal()
	if err != nil {
		return
	}
	extent := float64(app.Volume.size)
	if extent == 0 {
		extent = 1
	}

	outline := rl.NewColor(255, 210, 60, 200)
	faded := rl.Fade(outline, 0.35)

	edge := func(a, b geometry.Vector3, color rl.Color) {
		rl.DrawLine3D(toRaylib(a), toRaylib(b), color)
		rl.DrawLine3D(toRaylib(a.AddScaled(normal, -extent)), toRaylib(b.AddScaled(normal, -extent)), faded)
		rl.DrawLine3D(toRaylib(a.AddScaled(normal, extent)), toRaylib(b.AddScaled(normal, extent)), faded)
	}

	for i, p := range world {
		rl.DrawLine3D(toRaylib(p.AddScaled(normal, -extent)), toRaylib(p.AddScaled(normal, extent)), faded)
		if i > 0 {
			edge(world[i-1], p, outline)
		}
	}
	if len(world) >= 3 {
		edge(world[len(world)-1], world[0], faded)
	}
}

// drawHUD draws the status panel
func (app *App) drawHUD() {
	line := func(row int32, text string, color rl.Color) {
		rl.DrawText(text, 12, 10+row*20, 18, color)
	}

	dim := rl.NewColor(150, 158, 175, 255)
	bright := rl.NewColor(230, 234, 245, 255)

	if vol := app.Volume.vol; vol != nil {
		line(0, fmt.Sprintf("%s  %dx%dx%d", vol.Name, vol.Geom.Dims[0], vol.Geom.Dims[1], vol.Geom.Dims[2]), bright)
		line(1, fmt.Sprintf("threshold %d  range [%d, %d]", app.Volume.threshold, app.Volume.lo, app.Volume.hi), dim)
	}

	status := "clip: off"
	if app.Clip.engine.Enabled() {
		status = fmt.Sprintf("clip: %d voxels hidden", app.Clip.engine.Mask().HiddenCount())
	}
	line(2, status, dim)

	if stats := app.Volume.visibleStats; stats != nil {
		line(3, fmt.Sprintf("visible: mean %.1f  %d non-zero", stats.Mean, stats.NonZero), dim)
	}

	if app.Clip.selector.Enabled() {
		line(4, fmt.Sprintf("selecting (%s): %d points  [click add, Enter close, Esc cancel]",
			app.Clip.mode, len(app.Clip.preview)), rl.NewColor(255, 210, 60, 255))
	} else {
		line(4, "S select  X mode  Ctrl+Z undo  Ctrl+Shift+Z redo  C clear", dim)
	}

	if app.FileWatch.isLoading {
		line(5, "reloading...", rl.NewColor(120, 200, 255, 255))
	}
}
