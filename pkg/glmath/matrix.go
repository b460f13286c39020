package glmath

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix is a 4x4 column-major transform matrix. All arithmetic is done by mgl32.
type Matrix struct {
	m mgl32.Mat4
}

// NewMatrix returns an identity matrix
func NewMatrix() *Matrix {
	return &Matrix{m: mgl32.Ident4()}
}

// FromMat4 wraps an existing mgl32 matrix
func FromMat4(m mgl32.Mat4) *Matrix {
	return &Matrix{m: m}
}

// SetIdentity resets the matrix to identity
func (mx *Matrix) SetIdentity() {
	mx.m = mgl32.Ident4()
}

// SetProjection replaces the matrix with a perspective projection.
// hFov is in degrees; the vertical field of view passed to the driver is hFov/aspect.
func (mx *Matrix) SetProjection(hFov, aspect, near, far float32) {
	mx.m = mgl32.Perspective(mgl32.DegToRad(hFov/aspect), aspect, near, far)
}

// Translate post-multiplies by a translation
func (mx *Matrix) Translate(dx, dy, dz float32) {
	mx.m = mx.m.Mul4(mgl32.Translate3D(dx, dy, dz))
}

// Rotate post-multiplies by a rotation of angle degrees about (x, y, z).
// A zero axis leaves the matrix unchanged.
func (mx *Matrix) Rotate(angle, x, y, z float32) {
	axis := mgl32.Vec3{x, y, z}
	if axis.Len() == 0 {
		return
	}
	mx.m = mx.m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis.Normalize()))
}

// Multiply sets the matrix to mx * other
func (mx *Matrix) Multiply(other *Matrix) {
	mx.m = mx.m.Mul4(other.m)
}

// Values returns the raw column-major floats, ready for UniformMatrix4fv
func (mx *Matrix) Values() *[16]float32 {
	return (*[16]float32)(&mx.m)
}

// Mat4 returns a copy of the underlying mgl32 matrix
func (mx *Matrix) Mat4() mgl32.Mat4 {
	return mx.m
}
