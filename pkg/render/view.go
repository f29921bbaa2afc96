package render

import (
	"github.com/tkaneko/qvox/pkg/geometry"
)

// View binds a camera to a viewport, giving screen-space transforms in
// pixel coordinates. It satisfies the clipping engine's camera interface.
type View struct {
	Camera *Camera
	Width  float64
	Height float64
}

// NewView creates a view over the camera with the given viewport size
func NewView(camera *Camera, width, height float64) *View {
	return &View{Camera: camera, Width: width, Height: height}
}

// Resize updates the viewport dimensions
func (v *View) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

// Position returns the camera position in world coordinates
func (v *View) Position() geometry.Vector3 {
	return v.Camera.Position
}

// FocalPoint returns the point the camera looks at
func (v *View) FocalPoint() geometry.Vector3 {
	return v.Camera.Target
}

// WorldToDisplay projects a world point to viewport pixel coordinates
// plus the camera-space depth
func (v *View) WorldToDisplay(p geometry.Vector3) (float64, float64, float64) {
	return v.Camera.Project(p, v.Width, v.Height)
}

// DisplayToWorld maps pixel coordinates at a given depth back to a world
// point; a zero weight marks a degenerate unprojection
func (v *View) DisplayToWorld(x, y, depth float64) (geometry.Vector3, float64) {
	return v.Camera.Unproject(x, y, depth, v.Width, v.Height)
}
