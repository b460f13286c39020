package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	floatSize = 4
	shortSize = 2
)

// FloatBuffer is vertex data uploaded into an ARRAY_BUFFER object
type FloatBuffer struct {
	drv Driver
	ID  uint32
	Len int
}

// ShortBuffer is index data uploaded into an ELEMENT_ARRAY_BUFFER object
type ShortBuffer struct {
	drv Driver
	ID  uint32
	Len int
}

// MakeFloatBuffer uploads vertices with STATIC_DRAW usage
func MakeFloatBuffer(drv Driver, vertices []float32) *FloatBuffer {
	b := &FloatBuffer{drv: drv, ID: drv.GenBuffer(), Len: len(vertices)}
	drv.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	if len(vertices) > 0 {
		drv.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}
	drv.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

// MakeShortBuffer uploads 16-bit indices with STATIC_DRAW usage.
// The upload goes through ARRAY_BUFFER so no vertex array object needs to be bound;
// the buffer is bound as ELEMENT_ARRAY_BUFFER at draw time.
func MakeShortBuffer(drv Driver, values []uint16) *ShortBuffer {
	b := &ShortBuffer{drv: drv, ID: drv.GenBuffer(), Len: len(values)}
	drv.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	if len(values) > 0 {
		drv.BufferData(gl.ARRAY_BUFFER, len(values)*shortSize, unsafe.Pointer(&values[0]), gl.STATIC_DRAW)
	}
	drv.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

func (b *FloatBuffer) Delete() {
	if b.ID != 0 {
		b.drv.DeleteBuffer(b.ID)
		b.ID = 0
	}
}

func (b *ShortBuffer) Delete() {
	if b.ID != 0 {
		b.drv.DeleteBuffer(b.ID)
		b.ID = 0
	}
}
