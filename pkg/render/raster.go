package render

import (
	"image"
	"image/color"
)

// splat draws a depth-tested square of the given edge length centered on
// the projected point. The z-buffer keeps the nearest voxel on top.
func splat(img *image.RGBA, zbuffer []float64, cx, cy, z float64, size int, col color.RGBA) {
	if size < 1 {
		size = 1
	}
	bounds := img.Bounds()
	width := bounds.Max.X

	x0 := int(cx) - size/2
	y0 := int(cy) - size/2
	for y := y0; y < y0+size; y++ {
		if y < 0 || y >= bounds.Max.Y {
			continue
		}
		for x := x0; x < x0+size; x++ {
			if x < 0 || x >= width {
				continue
			}
			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		// Check bounds
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
