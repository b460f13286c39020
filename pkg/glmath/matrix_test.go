package glmath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertMat(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, tol), "want %v\ngot  %v", want, got)
}

func TestNewMatrixIsIdentity(t *testing.T) {
	m := NewMatrix()
	assert.Equal(t, mgl32.Ident4(), m.Mat4())

	m.Translate(1, 2, 3)
	m.SetIdentity()
	assert.Equal(t, mgl32.Ident4(), m.Mat4())
}

func TestTranslatePostMultiplies(t *testing.T) {
	m := NewMatrix()
	m.Rotate(90, 0, 0, 1)
	m.Translate(1, 0, 0)

	// the translation happens in the rotated frame: +X becomes +Y
	p := m.Mat4().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), tol)
	assert.InDelta(t, 1, p.Y(), tol)
	assert.InDelta(t, 0, p.Z(), tol)
}

func TestRotateNormalisesAxis(t *testing.T) {
	a := NewMatrix()
	a.Rotate(45, 0, 2, 0)
	b := NewMatrix()
	b.Rotate(45, 0, 1, 0)
	assertMat(t, b.Mat4(), a.Mat4())
}

func TestRotateZeroAxisIsNoop(t *testing.T) {
	m := NewMatrix()
	m.Translate(1, 2, 3)
	before := m.Mat4()
	m.Rotate(30, 0, 0, 0)
	assert.Equal(t, before, m.Mat4())
}

func TestSetProjectionUsesHorizontalFov(t *testing.T) {
	m := NewMatrix()
	m.Translate(5, 5, 5)
	m.SetProjection(90, 1.5, 0.1, 100)
	assertMat(t, mgl32.Perspective(mgl32.DegToRad(60), 1.5, 0.1, 100), m.Mat4())
}

func TestMultiply(t *testing.T) {
	a := NewMatrix()
	a.Translate(1, 0, 0)
	b := NewMatrix()
	b.Rotate(90, 0, 1, 0)

	want := a.Mat4().Mul4(b.Mat4())
	a.Multiply(b)
	assertMat(t, want, a.Mat4())
}

func TestValuesAreColumnMajor(t *testing.T) {
	m := NewMatrix()
	m.Translate(7, 8, 9)
	v := m.Values()
	assert.Equal(t, float32(7), v[12])
	assert.Equal(t, float32(8), v[13])
	assert.Equal(t, float32(9), v[14])

	v[0] = 2
	assert.Equal(t, float32(2), m.Mat4()[0])
}

func TestFromMat4CopiesValue(t *testing.T) {
	src := mgl32.Translate3D(1, 2, 3)
	m := FromMat4(src)
	src[12] = 99
	assertMat(t, mgl32.Translate3D(1, 2, 3), m.Mat4())

	got := m.Mat4()
	got[13] = 99
	assert.Equal(t, float32(2), m.Values()[13], "Mat4 returns a copy")
}
