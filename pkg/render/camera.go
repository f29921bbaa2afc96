package render

import (
	"math"

	"github.com/tkaneko/qvox/pkg/geometry"
	"github.com/tkaneko/qvox/pkg/volume"
)

// Camera represents a 3D camera orbiting the volume
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)
}

// NewCamera creates a new camera positioned to view a volume
func NewCamera(geom volume.Geometry) *Camera {
	center := geom.Center()
	distance := geom.MaxDimension() * 2.0
	if distance == 0 {
		distance = 1
	}

	c := &Camera{
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4, // 45 degrees
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	// Calculate position based on spherical coordinates
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Orbit rotates the camera around the target by the given angles
func (c *Camera) Orbit(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}

	c.UpdatePosition()
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float64) {
	c.Distance *= (1.0 + delta)
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

// Pan shifts the target and position together in the view plane
func (c *Camera) Pan(deltaX, deltaY float64) {
	right, up, _ := c.basis()
	shift := right.Mul(deltaX).Add(up.Mul(deltaY))
	c.Target = c.Target.Add(shift)
	c.Position = c.Position.Add(shift)
}

// FrontView resets the camera to look down -Z at the target
func (c *Camera) FrontView() {
	c.RotationX = 0
	c.RotationY = 0
	c.UpdatePosition()
}

// TopView resets the camera to look down -Y at the target
func (c *Camera) TopView() {
	c.RotationX = math.Pi/2 - 0.1
	c.RotationY = 0
	c.UpdatePosition()
}

// SideView resets the camera to look down -X at the target
func (c *Camera) SideView() {
	c.RotationX = 0
	c.RotationY = math.Pi / 2
	c.UpdatePosition()
}

// basis returns the right/up/forward view vectors
func (c *Camera) basis() (right, up, forward geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// Project projects a 3D point to 2D screen coordinates plus the
// camera-space depth along the view direction
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	right, up, forward := c.basis()

	// Transform to camera space
	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	// Perspective projection
	if z <= 0.01 {
		z = 0.01 // Prevent division by zero
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// Unproject maps screen coordinates at a camera-space depth back to the
// world point, inverting Project exactly for depths in front of the
// camera. The weight is 0 for depths at or behind the camera plane; such
// points are degenerate and must be discarded by the caller.
func (c *Camera) Unproject(screenX, screenY, depth, width, height float64) (geometry.Vector3, float64) {
	if depth <= 0 {
		return geometry.Vector3{}, 0
	}

	// Screen to normalized device coordinates (-1 to 1)
	ndcX := (2.0*screenX/width - 1.0)
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	camX := ndcX * depth * fovScale * aspect
	camY := ndcY * depth * fovScale

	right, up, forward := c.basis()
	point := c.Position.
		Add(right.Mul(camX)).
		Add(up.Mul(camY)).
		Add(forward.Mul(depth))
	return point, 1
}
