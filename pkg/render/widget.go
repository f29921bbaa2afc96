package render

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/tkaneko/qvox/pkg/clip"
	"github.com/tkaneko/qvox/pkg/volume"
)

var boundsColor = color.RGBA{80, 90, 130, 255}

// VolumeViewer is an interactive fyne widget showing a software-rendered
// volume. Dragging orbits the camera, scrolling zooms.
type VolumeViewer struct {
	widget.BaseWidget
	vol      *volume.Volume
	mask     *clip.Mask
	camera   *Camera
	renderer *Renderer
	frame    *canvas.Image
	width    float64
	height   float64
}

// NewVolumeViewer creates a viewer widget for the volume
func NewVolumeViewer(vol *volume.Volume) *VolumeViewer {
	v := &VolumeViewer{
		vol:      vol,
		camera:   NewCamera(vol.Geom),
		renderer: NewRenderer(),
		frame:    canvas.NewImageFromImage(nil),
	}
	v.frame.FillMode = canvas.ImageFillStretch
	v.ExtendBaseWidget(v)
	return v
}

// Camera exposes the viewer's camera for preset buttons
func (v *VolumeViewer) Camera() *Camera {
	return v.camera
}

// Redraw regenerates the frame at the current size, e.g. after a camera
// preset changed the view
func (v *VolumeViewer) Redraw() {
	v.Render(v.width, v.height)
}

// SetMask swaps the visibility mask and redraws
func (v *VolumeViewer) SetMask(mask *clip.Mask) {
	v.mask = mask
	v.Render(v.width, v.height)
}

// SetThreshold changes the lowest drawn intensity and redraws
func (v *VolumeViewer) SetThreshold(threshold int16) {
	v.renderer.Threshold = threshold
	v.Render(v.width, v.height)
}

// Render regenerates the framebuffer at the given size
func (v *VolumeViewer) Render(width, height float64) {
	if width < 1 || height < 1 {
		return
	}
	v.width = width
	v.height = height

	img := v.renderer.Render(v.vol, v.mask, v.camera, int(width), int(height))
	v.renderer.DrawBounds(img, v.vol.Geom, v.camera, boundsColor)
	v.frame.Image = img
	v.frame.Refresh()
}

// Dragged handles mouse drag events for rotation
func (v *VolumeViewer) Dragged(event *fyne.DragEvent) {
	v.camera.Orbit(float64(-event.Dragged.DY)*0.01, float64(event.Dragged.DX)*0.01)
	v.Render(v.width, v.height)
}

// DragEnd handles the end of a drag event
func (v *VolumeViewer) DragEnd() {}

// Scrolled handles scroll events for zooming
func (v *VolumeViewer) Scrolled(event *fyne.ScrollEvent) {
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.001)
	v.Render(v.width, v.height)
}

// CreateRenderer creates the renderer for the widget
func (v *VolumeViewer) CreateRenderer() fyne.WidgetRenderer {
	return &volumeWidgetRenderer{viewer: v}
}

// volumeWidgetRenderer implements fyne.WidgetRenderer
type volumeWidgetRenderer struct {
	viewer *VolumeViewer
}

func (r *volumeWidgetRenderer) Layout(size fyne.Size) {
	r.viewer.frame.Resize(size)
	r.viewer.Render(float64(size.Width), float64(size.Height))
}

func (r *volumeWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *volumeWidgetRenderer) Refresh() {
	canvas.Refresh(r.viewer)
}

func (r *volumeWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.frame}
}

func (r *volumeWidgetRenderer) Destroy() {}
