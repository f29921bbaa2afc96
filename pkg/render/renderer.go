package render

import (
	"image"
	"image/color"
	"math"

	"github.com/tkaneko/qvox/pkg/clip"
	"github.com/tkaneko/qvox/pkg/geometry"
	"github.com/tkaneko/qvox/pkg/volume"
)

// Renderer draws a volume into a software framebuffer as depth-tested
// voxel splats, grayscale-mapped over the volume's value range. Voxels
// hidden by the visibility mask are skipped entirely, which is how
// clipping reaches the screen: the voxel data itself is never modified.
type Renderer struct {
	// Threshold is the lowest scalar value still drawn; everything at
	// or below it is treated as empty space
	Threshold int16

	// SplatSize is the square splat edge length in pixels
	SplatSize int

	// Background fills the framebuffer before drawing
	Background color.RGBA
}

// NewRenderer creates a renderer with the default display settings
func NewRenderer() *Renderer {
	return &Renderer{
		Threshold:  0,
		SplatSize:  2,
		Background: color.RGBA{16, 16, 20, 255},
	}
}

// Render produces a frame of the volume under the given camera. A nil
// mask draws every voxel above the threshold.
func (r *Renderer) Render(vol *volume.Volume, mask *clip.Mask, cam *Camera, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, r.Background)
		}
	}
	if vol == nil {
		return img
	}

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.MaxFloat64
	}

	lo, hi := vol.ValueRange()
	span := float64(hi) - float64(lo)
	if span == 0 {
		span = 1
	}

	fw, fh := float64(width), float64(height)
	geom := vol.Geom
	for k := 0; k < geom.Dims[2]; k++ {
		for j := 0; j < geom.Dims[1]; j++ {
			for i := 0; i < geom.Dims[0]; i++ {
				value := vol.At(i, j, k)
				if value <= r.Threshold {
					continue
				}
				if mask != nil && mask.At(i, j, k) == clip.Hidden {
					continue
				}

				sx, sy, depth := cam.Project(geom.Point(i, j, k), fw, fh)
				if depth <= 0.01 {
					continue
				}

				shade := uint8(40 + 215*(float64(value)-float64(lo))/span)
				splat(img, zbuffer, sx, sy, depth, r.SplatSize, color.RGBA{shade, shade, shade, 255})
			}
		}
	}
	return img
}

// DrawPolygon overlays a closed polygon outline onto a rendered frame,
// used for the in-progress region preview
func (r *Renderer) DrawPolygon(img *image.RGBA, points []geometry.Vector3, cam *Camera, col color.RGBA) {
	if len(points) < 2 {
		return
	}
	bounds := img.Bounds()
	fw, fh := float64(bounds.Max.X), float64(bounds.Max.Y)

	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		// An open 2-point selection draws a single segment, not a loop.
		if len(points) == 2 && i == 1 {
			break
		}
		x1, y1, z1 := cam.Project(a, fw, fh)
		x2, y2, z2 := cam.Project(b, fw, fh)
		if z1 <= 0.01 || z2 <= 0.01 {
			continue
		}
		drawLine(img, int(x1), int(y1), int(x2), int(y2), col)
	}
}

// DrawBounds overlays the wireframe box of the volume extent
func (r *Renderer) DrawBounds(img *image.RGBA, geom volume.Geometry, cam *Camera, col color.RGBA) {
	min, max := geom.Bounds()
	corners := [8]geometry.Vector3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	bounds := img.Bounds()
	fw, fh := float64(bounds.Max.X), float64(bounds.Max.Y)
	for _, e := range edges {
		x1, y1, z1 := cam.Project(corners[e[0]], fw, fh)
		x2, y2, z2 := cam.Project(corners[e[1]], fw, fh)
		if z1 <= 0.01 || z2 <= 0.01 {
			continue
		}
		drawLine(img, int(x1), int(y1), int(x2), int(y2), col)
	}
}
