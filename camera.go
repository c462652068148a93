package jamstage

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxPitch keeps the view direction away from the poles, where LookAt
// would flip.
const maxPitch = 89.0

// Camera is a fixed-eye look-around viewpoint. Pointer movement turns the
// view direction in yaw and pitch; the picking ray always leaves the eye
// along the view direction (a crosshair at the viewport center).
type Camera struct {
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float32
	// Aspect is the viewport width divided by its height.
	Aspect    float32
	Near, Far float32
	// Sensitivity is the angle in degrees turned per unit of pointer delta.
	Sensitivity float32

	position mgl32.Vec3
	target   mgl32.Vec3
	yaw      float32 // degrees about +Y, 0 = looking down +Z
	pitch    float32 // degrees above the horizon
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(fieldOfView, aspect float32) *Camera {
	c := &Camera{
		FieldOfView: fieldOfView,
		Aspect:      aspect,
		Near:        0.1,
		Far:         100,
		Sensitivity: 0.1,
	}
	c.Initialize(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})
	return c
}

// Initialize places the eye at position and points it at target.
func (c *Camera) Initialize(position, target mgl32.Vec3) {
	c.position = position
	c.target = target
	dir := target.Sub(position)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 0, -1}
	}
	dir = dir.Normalize()
	c.pitch = clampPitch(mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(dir[1], -1, 1))))))
	c.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(dir[0]), float64(dir[2]))))
}

// HandleMovement turns the view by a pointer delta. Positive dx turns
// right, positive dy (screen down) looks down.
func (c *Camera) HandleMovement(dx, dy float32) {
	c.yaw -= dx * c.Sensitivity
	c.pitch = clampPitch(c.pitch - dy*c.Sensitivity)
	if c.yaw > 180 {
		c.yaw -= 360
	} else if c.yaw < -180 {
		c.yaw += 360
	}
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -maxPitch, maxPitch)
}

// SetAspectRatio updates the projection aspect ratio.
func (c *Camera) SetAspectRatio(aspect float32) {
	c.Aspect = aspect
}

// Position returns the eye position.
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// Target returns the point passed to Initialize.
func (c *Camera) Target() mgl32.Vec3 {
	return c.target
}

// Angles returns the current yaw and pitch in degrees.
func (c *Camera) Angles() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	sy, cy := math.Sincos(float64(mgl32.DegToRad(c.yaw)))
	sp, cp := math.Sincos(float64(mgl32.DegToRad(c.pitch)))
	return mgl32.Vec3{float32(cp * sy), float32(sp), float32(cp * cy)}
}

// ViewMatrix returns the world-to-eye matrix for the current orientation.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.Forward()), AxisY)
}

// ProjectionMatrix returns the perspective projection. A non-positive
// aspect ratio is treated as 1.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FieldOfView), aspect, c.Near, c.Far)
}

// PickingRay returns the crosshair ray from the eye along the view
// direction.
func (c *Camera) PickingRay() Ray {
	return Ray{Origin: c.position, Direction: c.Forward()}
}

// WorldToScreen projects a world point to pixel coordinates in a viewport of
// the given size, origin top-left. ok is false for points behind the eye or
// an empty viewport.
func (c *Camera) WorldToScreen(p mgl32.Vec3, width, height float32) (x, y float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	clip := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	nx := clip[0] / clip[3]
	ny := clip[1] / clip[3]
	return (nx*0.5 + 0.5) * width, (ny*-0.5 + 0.5) * height, true
}
