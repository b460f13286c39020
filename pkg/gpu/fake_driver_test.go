package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// fakeDriver records calls instead of talking to a GL context
type fakeDriver struct {
	calls []string
	next  uint32

	failCompile map[uint32]bool // shader type -> fail
	failLink    bool
	noTextures  bool
	errors      []uint32

	shaderTypes map[uint32]uint32
	sources     map[uint32]string
	uniforms    map[string]int32
	attribs     map[string]int32
	matrix      [16]float32
	vec4        [4]float32
	texImage    []uint8
	texWidth    int32
	texHeight   int32
	deleted     []uint32
}

var _ Driver = (*fakeDriver)(nil)

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		next:        1,
		failCompile: map[uint32]bool{},
		shaderTypes: map[uint32]uint32{},
		sources:     map[uint32]string{},
		uniforms:    map[string]int32{},
		attribs:     map[string]int32{},
	}
}

func (f *fakeDriver) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeDriver) handle() uint32 {
	h := f.next
	f.next++
	return h
}

func (f *fakeDriver) reset() { f.calls = nil }

func (f *fakeDriver) CreateShader(shaderType uint32) uint32 {
	h := f.handle()
	f.shaderTypes[h] = shaderType
	f.record("CreateShader(0x%x)=%d", shaderType, h)
	return h
}

func (f *fakeDriver) ShaderSource(shader uint32, source string) {
	f.sources[shader] = source
	f.record("ShaderSource(%d)", shader)
}

func (f *fakeDriver) CompileShader(shader uint32) { f.record("CompileShader(%d)", shader) }

func (f *fakeDriver) GetShaderiv(shader uint32, pname uint32) int32 {
	if pname == gl.COMPILE_STATUS && f.failCompile[f.shaderTypes[shader]] {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *fakeDriver) GetShaderInfoLog(shader uint32) string {
	return fmt.Sprintf("error in shader %d", shader)
}

func (f *fakeDriver) DeleteShader(shader uint32) {
	f.deleted = append(f.deleted, shader)
	f.record("DeleteShader(%d)", shader)
}

func (f *fakeDriver) CreateProgram() uint32 {
	h := f.handle()
	f.record("CreateProgram()=%d", h)
	return h
}

func (f *fakeDriver) AttachShader(program, shader uint32) {
	f.record("AttachShader(%d, %d)", program, shader)
}

func (f *fakeDriver) LinkProgram(program uint32) { f.record("LinkProgram(%d)", program) }

func (f *fakeDriver) GetProgramiv(program uint32, pname uint32) int32 {
	if pname == gl.LINK_STATUS && f.failLink {
		return gl.FALSE
	}
	return gl.TRUE
}

func (f *fakeDriver) GetProgramInfoLog(program uint32) string {
	return fmt.Sprintf("link error in program %d", program)
}

func (f *fakeDriver) DeleteProgram(program uint32) {
	f.deleted = append(f.deleted, program)
	f.record("DeleteProgram(%d)", program)
}

func (f *fakeDriver) UseProgram(program uint32) { f.record("UseProgram(%d)", program) }

func (f *fakeDriver) GetAttribLocation(program uint32, name string) int32 {
	f.record("GetAttribLocation(%d, %s)", program, name)
	if loc, ok := f.attribs[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeDriver) GetUniformLocation(program uint32, name string) int32 {
	f.record("GetUniformLocation(%d, %s)", program, name)
	if loc, ok := f.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeDriver) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	f.matrix = *(*[16]float32)(unsafe.Pointer(value))
	f.record("UniformMatrix4fv(%d, %d, %t)", location, count, transpose)
}

func (f *fakeDriver) Uniform4fv(location int32, count int32, value *float32) {
	f.vec4 = *(*[4]float32)(unsafe.Pointer(value))
	f.record("Uniform4fv(%d, %d)", location, count)
}

func (f *fakeDriver) Uniform1i(location int32, v int32) { f.record("Uniform1i(%d, %d)", location, v) }

func (f *fakeDriver) GenVertexArray() uint32 {
	h := f.handle()
	f.record("GenVertexArray()=%d", h)
	return h
}

func (f *fakeDriver) BindVertexArray(vao uint32) { f.record("BindVertexArray(%d)", vao) }

func (f *fakeDriver) DeleteVertexArray(vao uint32) { f.record("DeleteVertexArray(%d)", vao) }

func (f *fakeDriver) GenBuffer() uint32 {
	h := f.handle()
	f.record("GenBuffer()=%d", h)
	return h
}

func (f *fakeDriver) BindBuffer(target, buffer uint32) {
	f.record("BindBuffer(0x%x, %d)", target, buffer)
}

func (f *fakeDriver) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.record("BufferData(0x%x, %d)", target, size)
}

func (f *fakeDriver) DeleteBuffer(buffer uint32) { f.record("DeleteBuffer(%d)", buffer) }

func (f *fakeDriver) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray(%d)", index)
}

func (f *fakeDriver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.record("VertexAttribPointer(%d, %d, 0x%x, %t, %d, %d)", index, size, xtype, normalized, stride, offset)
}

func (f *fakeDriver) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays(0x%x, %d, %d)", mode, first, count)
}

func (f *fakeDriver) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	f.record("DrawElements(0x%x, %d, 0x%x, %d)", mode, count, xtype, offset)
}

func (f *fakeDriver) GenTextures(n int32) []uint32 {
	if f.noTextures {
		return []uint32{0}
	}
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = f.handle()
	}
	f.record("GenTextures(%d)", n)
	return ids
}

func (f *fakeDriver) DeleteTextures(textures []uint32) {
	f.record("DeleteTextures(%v)", textures)
}

func (f *fakeDriver) ActiveTexture(unit uint32) { f.record("ActiveTexture(0x%x)", unit) }

func (f *fakeDriver) BindTexture(target, texture uint32) {
	f.record("BindTexture(0x%x, %d)", target, texture)
}

func (f *fakeDriver) TexParameteri(target, pname uint32, param int32) {
	f.record("TexParameteri(0x%x, 0x%x, 0x%x)", target, pname, param)
}

func (f *fakeDriver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []uint8) {
	f.texImage = pixels
	f.texWidth, f.texHeight = width, height
	f.record("TexImage2D(0x%x, %d, %dx%d)", target, level, width, height)
}

func (f *fakeDriver) GetError() uint32 {
	if len(f.errors) == 0 {
		return gl.NO_ERROR
	}
	e := f.errors[0]
	f.errors = f.errors[1:]
	return e
}
