// Package camera provides the orbit camera used by the mesh viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/voxelmesh/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates around Center
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
	PanSpeed        float32 // fraction of Distance per second
}

// NewOrbitCamera creates an orbit camera sized for grids of a few dozen cells.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        60,
		Pitch:           0.6,
		Yaw:             0.8,
		MinDistance:     2,
		MaxDistance:     2000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSpeed:        0.8,
	}
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cosPitch := gomath.Cos(float64(c.Pitch))
	offset := math.Vec3{
		X: c.Distance * float32(cosPitch*gomath.Sin(float64(c.Yaw))),
		Y: c.Distance * float32(gomath.Sin(float64(c.Pitch))),
		Z: c.Distance * float32(cosPitch*gomath.Cos(float64(c.Yaw))),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns a perspective projection whose clip planes follow
// the orbit distance, so large and small meshes both avoid clipping.
func (c *OrbitCamera) ProjectionMatrix(fovDegrees, aspect float32) math.Mat4 {
	near := c.Distance * 0.01
	far := c.Distance * 10
	return math.Perspective(fovDegrees*gomath.Pi/180, aspect, near, far)
}

// HandleDrag rotates by a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom scales the distance by a wheel delta; positive moves closer.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center along the camera's ground-plane axes.
// forward, right and up are in [-1, 1]; dt is the frame time in seconds.
func (c *OrbitCamera) HandleMovement(forward, right, up, dt float32) {
	speed := c.Distance * c.PanSpeed * dt

	sinYaw := float32(gomath.Sin(float64(c.Yaw)))
	cosYaw := float32(gomath.Cos(float64(c.Yaw)))

	// The eye sits at +(sin, cos) from the center, so forward is the opposite.
	c.Center.X += (-sinYaw*forward + cosYaw*right) * speed
	c.Center.Z += (-cosYaw*forward - sinYaw*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds centers on a box and backs off until all of it is in view.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	radius := max.Sub(min).Length() / 2
	c.Distance = clamp(radius*2.5, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
