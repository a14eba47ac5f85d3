package cubesim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera defaults.
const (
	DefaultCameraDistance = 8.0
	DefaultCameraPitch    = 30.0 // degrees above the horizon
	DefaultCameraYaw      = 45.0
	DefaultCameraFOV      = 45.0
	DefaultCameraNear     = 0.1
	DefaultCameraFar      = 100.0

	orbitSensitivity = 0.3 // degrees per drag unit
	maxPitch         = 89.0
)

// OrbitCamera circles the cube center. It implements Viewer.
type OrbitCamera struct {
	Distance float64
	Pitch    float64 // degrees, clamped to ±89
	Yaw      float64 // degrees
	FOV      float64 // vertical field of view, degrees
	Near     float64
	Far      float64

	// Aspect overrides the width/height ratio of the viewport when
	// positive. Terminal cells are not square.
	Aspect float64

	vx, vy, w, h int
}

// NewOrbitCamera creates a camera with the default pose for a w×h viewport.
func NewOrbitCamera(w, h int) *OrbitCamera {
	return &OrbitCamera{
		Distance: DefaultCameraDistance,
		Pitch:    DefaultCameraPitch,
		Yaw:      DefaultCameraYaw,
		FOV:      DefaultCameraFOV,
		Near:     DefaultCameraNear,
		Far:      DefaultCameraFar,
		w:        w,
		h:        h,
	}
}

// SetViewport sets the window rectangle the camera renders into.
func (c *OrbitCamera) SetViewport(x, y, w, h int) {
	c.vx, c.vy, c.w, c.h = x, y, w, h
}

// Viewport implements Viewer.
func (c *OrbitCamera) Viewport() (x, y, w, h int) {
	return c.vx, c.vy, c.w, c.h
}

// Orbit rotates the camera by a drag delta.
func (c *OrbitCamera) Orbit(dx, dy float64) {
	c.Yaw = math.Mod(c.Yaw+dx*orbitSensitivity, 360)
	c.Pitch = mgl64.Clamp(c.Pitch+dy*orbitSensitivity, -maxPitch, maxPitch)
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() mgl64.Vec3 {
	pitch := mgl64.DegToRad(c.Pitch)
	yaw := mgl64.DegToRad(c.Yaw)
	return mgl64.Vec3{
		c.Distance * math.Cos(pitch) * math.Sin(yaw),
		c.Distance * math.Sin(pitch),
		c.Distance * math.Cos(pitch) * math.Cos(yaw),
	}
}

// View implements Viewer.
func (c *OrbitCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
}

// Projection implements Viewer.
func (c *OrbitCamera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
		if c.h > 0 {
			aspect = float64(c.w) / float64(c.h)
		}
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}
