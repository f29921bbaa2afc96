package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tkaneko/qvox/pkg/clip"
)

// drawVolume draws the visible voxels as shaded cubes. The cumulative
// mask filters voxels out here, at draw time; the volume data itself is
// untouched.
func (app *App) drawVolume() {
	vol := app.Volume.vol
	if vol == nil {
		return
	}
	mask := app.Clip.engine.Mask()
	geom := vol.Geom
	stride := app.Volume.stride

	span := float32(app.Volume.hi) - float32(app.Volume.lo)
	if span == 0 {
		span = 1
	}

	cube := rl.Vector3{
		X: float32(geom.Spacing.X) * float32(stride) * 0.9,
		Y: float32(geom.Spacing.Y) * float32(stride) * 0.9,
		Z: float32(geom.Spacing.Z) * float32(stride) * 0.9,
	}

	for k := 0; k < geom.Dims[2]; k += stride {
		for j := 0; j < geom.Dims[1]; j += stride {
			for i := 0; i < geom.Dims[0]; i += stride {
				value := vol.At(i, j, k)
				if value <= app.Volume.threshold {
					continue
				}
				if mask.At(i, j, k) == clip.Hidden {
					continue
				}

				shade := uint8(60 + 195*(float32(value)-float32(app.Volume.lo))/span)
				rl.DrawCubeV(toRaylib(geom.Point(i, j, k)), cube, rl.NewColor(shade, shade, shade, 255))
			}
		}
	}
}

// drawBounds draws the wireframe box of the volume extent
func (app *App) drawBounds() {
	vol := app.Volume.vol
	if vol == nil {
		return
	}
	min, max := vol.Geom.Bounds()
	size := max.Sub(min)
	center := vol.Geom.Center()
	rl.DrawCubeWiresV(toRaylib(center), toRaylib(size), rl.NewColor(80, 90, 130, 255))
}
