package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tkaneko/qvox/pkg/analysis"
	"github.com/tkaneko/qvox/pkg/clip"
	"github.com/tkaneko/qvox/pkg/geometry"
	"github.com/tkaneko/qvox/pkg/render"
	"github.com/tkaneko/qvox/pkg/volume"
	"github.com/tkaneko/qvox/pkg/watcher"
)

// CameraState holds all camera-related state. The raylib camera and the
// software camera are mirrored from the same angles every frame, so what
// raylib draws and what the clipping engine unprojects always agree.
type CameraState struct {
	camera        rl.Camera3D
	soft          *render.Camera
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
}

// VolumeState holds the loaded volume and its display parameters
type VolumeState struct {
	vol       *volume.Volume
	center    rl.Vector3 // Volume center
	size      float32    // Volume size (max dimension)
	threshold int16      // Lowest value still drawn
	lo, hi    int16      // Value range for shading
	stride    int        // Voxel subsampling step for drawing

	visibleStats *analysis.VolumeStats // Stats over the unclipped voxels
}

// ClipState holds the clipping engine, the polygon selector, and the
// preview of the in-progress selection
type ClipState struct {
	engine       *clip.Engine
	selector     *clip.Selector
	view         *render.View
	mode         clip.ClipMode
	preview      []rl.Vector2       // Display points of the open polygon
	worldPreview []geometry.Vector3 // Projected polygon for the 3D prism
}

// ViewSettings holds display settings
type ViewSettings struct {
	showBounds bool
	showHUD    bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile       string               // Volume header path (.mhd)
	fileWatcher      *watcher.FileWatcher // File watcher for auto-reload
	needsReload      bool                 // Flag to indicate volume needs reloading
	isLoading        bool                 // Flag to indicate a reload is in progress
	loadingStartTime time.Time            // When loading started
	loadedVolume     *volume.Volume       // Volume loaded in background
}

// App is the interactive viewer's root state
type App struct {
	Camera    CameraState
	Volume    VolumeState
	Clip      ClipState
	View      ViewSettings
	FileWatch FileWatchState
}
