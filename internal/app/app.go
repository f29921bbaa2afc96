package app

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tkaneko/qvox/pkg/analysis"
	"github.com/tkaneko/qvox/pkg/clip"
	"github.com/tkaneko/qvox/pkg/geometry"
	"github.com/tkaneko/qvox/pkg/render"
	"github.com/tkaneko/qvox/pkg/volume"
)

// drawnVoxelBudget caps the number of cubes drawn per frame; larger
// volumes are subsampled by an integer stride
const drawnVoxelBudget = 250_000

// Run starts the interactive viewer on the given volume file
func Run(sourceFile string) error {
	vol, err := volume.Parse(sourceFile)
	if err != nil {
		return fmt.Errorf("loading volume: %w", err)
	}

	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "qvox")
	rl.SetTargetFPS(60)

	app := &App{
		View: ViewSettings{
			showBounds: true,
			showHUD:    true,
		},
		FileWatch: FileWatchState{
			sourceFile: sourceFile,
		},
	}
	app.adoptVolume(vol)

	// Clipping engine and polygon selector share the mirrored software
	// camera, so the mask matches what the user traced on screen.
	view := render.NewView(app.Camera.soft, float64(screenWidth), float64(screenHeight))
	app.Clip.view = view
	app.Clip.engine = clip.NewEngine(vol.Geom, clip.WithMaskObserver(app.maskUpdated))
	app.Clip.selector = clip.NewSelector(
		func() clip.CameraSource { return view },
		func() geometry.Vector3 { return app.referencePoint() },
		app,
	)
	app.Clip.selector.SetPreviewFunc(app.previewChanged)

	if err := app.setupFileWatcher(); err != nil {
		log.Printf("[app] file watching unavailable: %v", err)
	} else {
		defer app.FileWatch.fileWatcher.Close()
	}

	for {
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}

		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		if app.FileWatch.needsReload && !app.FileWatch.isLoading {
			app.FileWatch.needsReload = false
			app.reloadVolume()
		}
		app.applyLoadedVolume()

		view.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))

		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		app.drawVolume()
		if app.View.showBounds {
			app.drawBounds()
		}
		app.drawSelectionPrism()
		rl.EndMode3D()

		app.drawSelectionOverlay()
		if app.View.showHUD {
			app.drawHUD()
		}

		rl.EndDrawing()
	}

	rl.CloseWindow()
	return nil
}

// RegionClosed receives the finalized polygon from the selector and
// applies it to the clipping engine
func (app *App) RegionClosed(display []clip.DisplayPoint, world []geometry.Vector3) {
	proj := clip.Projector{Camera: app.Clip.view}
	normal, err := proj.ViewNormal()
	if err != nil {
		log.Printf("[app] dropping region: %v", err)
		return
	}

	region := clip.Region{
		Mode:    app.Clip.mode,
		Polygon: world,
		Normal:  normal,
	}
	if err := app.Clip.engine.Apply(region); err != nil {
		log.Printf("[app] region rejected: %v", err)
	}
}

// previewChanged receives the projected polygon whenever the open
// selection changes and mirrors it into the overlay and prism previews
func (app *App) previewChanged(world []geometry.Vector3) {
	app.Clip.worldPreview = world
	app.refreshPreview()
}

// maskUpdated recomputes the visible-voxel statistics shown in the HUD
// after every apply, undo, redo, and reset
func (app *App) maskUpdated(mask *clip.Mask) {
	if app.Volume.vol == nil {
		return
	}
	app.Volume.visibleStats = analysis.AnalyzeVisible(app.Volume.vol, mask)
}

// adoptVolume installs a volume and derives its display parameters
func (app *App) adoptVolume(vol *volume.Volume) {
	app.Volume.vol = vol
	app.Volume.lo, app.Volume.hi = vol.ValueRange()
	app.Volume.threshold = app.Volume.lo
	app.Volume.stride = strideFor(vol.Geom.VoxelCount())
	app.Volume.visibleStats = analysis.Analyze(vol)

	center := vol.Geom.Center()
	app.Volume.center = toRaylib(center)
	app.Volume.size = float32(vol.Geom.MaxDimension())

	distance := app.Volume.size * 2.0
	if distance == 0 {
		distance = 1
	}
	app.Camera.target = app.Volume.center
	app.Camera.distance = distance
	app.Camera.angleX = 0.3
	app.Camera.angleY = 0.3
	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = 0.3
	app.Camera.defaultAngleY = 0.3
	if app.Camera.soft == nil {
		app.Camera.soft = render.NewCamera(vol.Geom)
	}
	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	app.updateCamera()
}

// referencePoint is the plane the polygon is projected onto: the volume
// center, or the camera focal point with no volume loaded
func (app *App) referencePoint() geometry.Vector3 {
	if app.Volume.vol != nil {
		return app.Volume.vol.Geom.Center()
	}
	return app.Camera.soft.Target
}

// strideFor picks the smallest subsampling step keeping the drawn voxel
// count under the budget
func strideFor(voxels int) int {
	stride := 1
	for voxels/(stride*stride*stride) > drawnVoxelBudget {
		stride++
	}
	return stride
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toVector3(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}
