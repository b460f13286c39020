package gpu

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Driver is the subset of OpenGL entry points the wrapper forwards to.
// GL is the real implementation; it must only be used on the thread that owns the context.
type Driver interface {
	CreateShader(shaderType uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	UniformMatrix4fv(location int32, count int32, transpose bool, value *float32)
	Uniform4fv(location int32, count int32, value *float32)
	Uniform1i(location int32, v int32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)

	GenTextures(n int32) []uint32
	DeleteTextures(textures []uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []uint8)

	GetError() uint32
}

// GL forwards to github.com/go-gl/gl. gl.Init must have been called.
type GL struct{}

var _ Driver = GL{}

func (GL) CreateShader(shaderType uint32) uint32 { return gl.CreateShader(shaderType) }

func (GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (GL) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (GL) GetShaderiv(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (g GL) GetShaderInfoLog(shader uint32) string {
	logLength := g.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (GL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (GL) CreateProgram() uint32 { return gl.CreateProgram() }

func (GL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (GL) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (GL) GetProgramiv(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (g GL) GetProgramInfoLog(program uint32) string {
	logLength := g.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (GL) UseProgram(program uint32) { gl.UseProgram(program) }

func (GL) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (GL) UniformMatrix4fv(location int32, count int32, transpose bool, value *float32) {
	gl.UniformMatrix4fv(location, count, transpose, value)
}

func (GL) Uniform4fv(location int32, count int32, value *float32) {
	gl.Uniform4fv(location, count, value)
}

func (GL) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (GL) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (GL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (GL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (GL) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (GL) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (GL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (GL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (GL) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (GL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, xtype, offset)
}

func (GL) GenTextures(n int32) []uint32 {
	if n <= 0 {
		return nil
	}
	ids := make([]uint32, n)
	gl.GenTextures(n, &ids[0])
	return ids
}

func (GL) DeleteTextures(textures []uint32) {
	if len(textures) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(textures)), &textures[0])
}

func (GL) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (GL) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (GL) TexParameteri(target, pname uint32, param int32) { gl.TexParameteri(target, pname, param) }

func (GL) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []uint8) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, gl.Ptr(pixels))
}

func (GL) GetError() uint32 { return gl.GetError() }
