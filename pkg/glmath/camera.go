package glmath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Point struct {
	X, Y, Z float32
}

// Camera is a position plus a heading in degrees about the Y axis
type Camera struct {
	Rotation float32
	Position Point
}

func NewCamera() *Camera {
	return &Camera{}
}

// Rotate turns the camera and keeps Rotation within [-180, 180)
func (c *Camera) Rotate(degrees float32) {
	c.Rotation = wrapDegrees(c.Rotation + degrees)
}

// Translate moves the camera by a world-space offset
func (c *Camera) Translate(dx, dy, dz float32) {
	c.Position.X += dx
	c.Position.Y += dy
	c.Position.Z += dz
}

// Forward returns the unit heading vector. Rotation 0 looks down -Z.
func (c *Camera) Forward() mgl32.Vec3 {
	rad := mgl32.DegToRad(c.Rotation)
	return mgl32.Vec3{-math32.Sin(rad), 0, -math32.Cos(rad)}
}

// ViewMatrix builds the world-to-eye transform for the current state
func (c *Camera) ViewMatrix() *Matrix {
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(-c.Rotation))
	return FromMat4(rot.Mul4(mgl32.Translate3D(-c.Position.X, -c.Position.Y, -c.Position.Z)))
}

func wrapDegrees(d float32) float32 {
	d = math32.Mod(d+180, 360)
	if d < 0 {
		d += 360
		// a tiny negative remainder rounds up to exactly 360
		if d >= 360 {
			d -= 360
		}
	}
	return d - 180
}
