package gpu

import (
	"fmt"
	"io/fs"
	"log/slog"

	"glwrapper/internal/profiling"
	"glwrapper/pkg/glmath"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const DefaultID = "DefaultGPUInterface"

// Interface binds one shader program and forwards draw and uniform calls for it.
// It is the only place that talks to shaders and attribute pointers.
type Interface struct {
	ID              string
	LastShaderError string

	drv     Driver
	program uint32
	vao     uint32
	log     *slog.Logger
}

// Option configures an Interface
type Option func(*Interface)

// WithID names the interface in log output
func WithID(id string) Option {
	return func(i *Interface) { i.ID = id }
}

func WithLogger(l *slog.Logger) Option {
	return func(i *Interface) { i.log = l }
}

// NewInterface returns an Interface with no program. Draw and uniform calls are
// ignored until CompileAndLinkShaders or LoadShaders succeeds.
func NewInterface(drv Driver, opts ...Option) *Interface {
	i := &Interface{ID: DefaultID, drv: drv}
	for _, o := range opts {
		o(i)
	}
	if i.log == nil {
		i.log = slog.Default()
	}
	i.log = i.log.With("gpu", i.ID)
	return i
}

// Program returns the linked program handle, or 0
func (i *Interface) Program() uint32 {
	return i.program
}

// Valid reports whether a program has been linked
func (i *Interface) Valid() bool {
	return i.program != 0
}

// LoadShaders reads both shader sources from fsys and builds the program
func (i *Interface) LoadShaders(fsys fs.FS, vertexShaderFile, fragmentShaderFile string) error {
	vertexSrc, err := LoadShader(fsys, vertexShaderFile)
	if err != nil {
		return err
	}
	fragmentSrc, err := LoadShader(fsys, fragmentShaderFile)
	if err != nil {
		return err
	}
	i.log.Debug("vertex shader", "file", vertexShaderFile, "source", vertexSrc)
	i.log.Debug("fragment shader", "file", fragmentShaderFile, "source", fragmentSrc)
	return i.CompileAndLinkShaders(vertexSrc, fragmentSrc)
}

// CompileAndLinkShaders compiles both stages and links them. On success the new
// program replaces any previous one and is left selected.
func (i *Interface) CompileAndLinkShaders(vertexShaderCode, fragmentShaderCode string) error {
	vertexShader, err := i.AddVertexShader(vertexShaderCode)
	if err != nil {
		return err
	}
	defer i.drv.DeleteShader(vertexShader)

	fragmentShader, err := i.AddFragmentShader(fragmentShaderCode)
	if err != nil {
		return err
	}
	defer i.drv.DeleteShader(fragmentShader)

	program, err := i.MakeProgram(vertexShader, fragmentShader)
	if err != nil {
		return err
	}
	if i.program != 0 {
		i.drv.DeleteProgram(i.program)
	}
	i.program = program
	return nil
}

// Select makes this interface's program current. Must be called before drawing
// when more than one Interface is in use.
func (i *Interface) Select() {
	i.drv.UseProgram(i.program)
}

// DrawBufferedTriangles draws n vertices from the currently specified attributes
func (i *Interface) DrawBufferedTriangles(firstVertex, nVertices int32) {
	if !i.Valid() {
		return
	}
	defer profiling.Track("gpu.DrawArrays")()
	i.bindVertexArray()
	i.drv.DrawArrays(gl.TRIANGLES, firstVertex, nVertices)
}

// DrawOption adjusts a buffered draw or attribute specification
type DrawOption func(*drawOptions)

type drawOptions struct {
	mode            uint32
	indexStart      int
	dataStart       int
	valuesPerVertex int32
}

func defaultDrawOptions() drawOptions {
	return drawOptions{mode: gl.TRIANGLES, valuesPerVertex: 3}
}

// WithMode sets the primitive mode (default TRIANGLES)
func WithMode(mode uint32) DrawOption {
	return func(o *drawOptions) { o.mode = mode }
}

// WithIndexStart skips the first n indices
func WithIndexStart(n int) DrawOption {
	return func(o *drawOptions) { o.indexStart = n }
}

// WithDataStart offsets the attribute by n floats into the vertex buffer
func WithDataStart(n int) DrawOption {
	return func(o *drawOptions) { o.dataStart = n }
}

// WithValuesPerVertex sets the attribute component count (default 3)
func WithValuesPerVertex(n int32) DrawOption {
	return func(o *drawOptions) { o.valuesPerVertex = n }
}

// DrawIndexedBufferedData points attrVarRef at vertices and draws indices.
// stride is in bytes.
func (i *Interface) DrawIndexedBufferedData(vertices *FloatBuffer, indices *ShortBuffer, stride int32, attrVarRef int32, opts ...DrawOption) {
	if !i.Valid() {
		return
	}
	o := defaultDrawOptions()
	for _, opt := range opts {
		opt(&o)
	}
	i.SpecifyBufferedDataFormat(attrVarRef, vertices, stride, WithDataStart(o.dataStart), WithValuesPerVertex(o.valuesPerVertex))
	i.drawElements(indices, o.mode, o.indexStart)
}

// SpecifyBufferedDataFormat enables attrVarRef and describes its layout within vertices.
// A negative location (variable not active in the program) is skipped; a negative
// data start counts as 0.
func (i *Interface) SpecifyBufferedDataFormat(attrVarRef int32, vertices *FloatBuffer, stride int32, opts ...DrawOption) {
	o := defaultDrawOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if attrVarRef < 0 {
		return
	}
	start := max(o.dataStart, 0)
	i.bindVertexArray()
	i.drv.BindBuffer(gl.ARRAY_BUFFER, vertices.ID)
	i.drv.EnableVertexAttribArray(uint32(attrVarRef))
	i.drv.VertexAttribPointer(uint32(attrVarRef), o.valuesPerVertex, gl.FLOAT, false, stride, uintptr(start*floatSize))
}

// DrawElements draws every index in indices
func (i *Interface) DrawElements(indices *ShortBuffer, mode uint32) {
	if !i.Valid() {
		return
	}
	i.drawElements(indices, mode, 0)
}

// start < 0 counts as 0
func (i *Interface) drawElements(indices *ShortBuffer, mode uint32, start int) {
	start = max(start, 0)
	count := indices.Len - start
	if count <= 0 {
		return
	}
	defer profiling.Track("gpu.DrawElements")()
	i.bindVertexArray()
	i.drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indices.ID)
	i.drv.DrawElements(mode, int32(count), gl.UNSIGNED_SHORT, uintptr(start*shortSize))
}

// AttribLocation returns -1 when there is no program
func (i *Interface) AttribLocation(shaderVar string) int32 {
	if !i.Valid() {
		return -1
	}
	return i.drv.GetAttribLocation(i.program, shaderVar)
}

// UniformLocation returns -1 when there is no program
func (i *Interface) UniformLocation(shaderVar string) int32 {
	if !i.Valid() {
		return -1
	}
	return i.drv.GetUniformLocation(i.program, shaderVar)
}

// SendMatrix uploads one 4x4 matrix to the uniform at refMtxVar
func (i *Interface) SendMatrix(refMtxVar int32, mtx *glmath.Matrix) {
	if !i.Valid() {
		return
	}
	defer profiling.Track("gpu.SendMatrix")()
	i.errorCheck("glGetUniformLocation")
	i.drv.UniformMatrix4fv(refMtxVar, 1, false, &mtx.Values()[0])
	i.errorCheck("sending over matrix")
}

// SetUniform4FloatArray uploads a vec4, e.g. a colour
func (i *Interface) SetUniform4FloatArray(refShaderVar int32, value [4]float32) {
	if !i.Valid() {
		return
	}
	i.drv.Uniform4fv(refShaderVar, 1, &value[0])
}

// SetUniformInt uploads an int, e.g. a sampler's texture unit
func (i *Interface) SetUniformInt(refShaderVar int32, v int32) {
	if !i.Valid() {
		return
	}
	i.drv.Uniform1i(refShaderVar, v)
}

// Interleaved XYZUV layout used by DrawTexturedBufferedData
const (
	texturedStride    = 5 * floatSize
	texturedUVOffset  = 3 * floatSize
	positionComponent = 3
	texCoordComponent = 2
)

// DrawTexturedBufferedData draws interleaved XYZUV vertices with every index in indices
func (i *Interface) DrawTexturedBufferedData(vertices *FloatBuffer, indices *ShortBuffer, attrVarRef, attrTexVarRef int32, mode uint32) {
	if !i.Valid() {
		return
	}
	defer profiling.Track("gpu.DrawTextured")()
	i.bindVertexArray()
	i.drv.BindBuffer(gl.ARRAY_BUFFER, vertices.ID)
	i.errorCheck(fmt.Sprintf("bind vertices, attrVarRef=%d", attrVarRef))

	// a location of -1 means the compiler dropped the variable
	if attrVarRef >= 0 {
		i.drv.EnableVertexAttribArray(uint32(attrVarRef))
		i.errorCheck("glEnableVertexAttribArray, vertices")
		i.drv.VertexAttribPointer(uint32(attrVarRef), positionComponent, gl.FLOAT, false, texturedStride, 0)
		i.errorCheck("glVertexAttribPointer, vertices")
	}

	if attrTexVarRef >= 0 {
		i.drv.EnableVertexAttribArray(uint32(attrTexVarRef))
		i.errorCheck("glEnableVertexAttribArray, tex")
		i.drv.VertexAttribPointer(uint32(attrTexVarRef), texCoordComponent, gl.FLOAT, false, texturedStride, texturedUVOffset)
		i.errorCheck("glVertexAttribPointer, tex")
	}

	if indices.Len == 0 {
		return
	}
	i.drv.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indices.ID)
	i.drv.DrawElements(mode, int32(indices.Len), gl.UNSIGNED_SHORT, 0)
	i.errorCheck("glDrawElements")
}

func (i *Interface) AddVertexShader(shaderCode string) (uint32, error) {
	return i.CompileShader(gl.VERTEX_SHADER, shaderCode)
}

func (i *Interface) AddFragmentShader(shaderCode string) (uint32, error) {
	return i.CompileShader(gl.FRAGMENT_SHADER, shaderCode)
}

// CompileShader compiles one stage. On failure the driver's info log is kept
// in LastShaderError and the shader object is released.
func (i *Interface) CompileShader(shaderType uint32, shaderCode string) (uint32, error) {
	shader := i.drv.CreateShader(shaderType)
	i.drv.ShaderSource(shader, shaderCode)
	i.drv.CompileShader(shader)

	if i.drv.GetShaderiv(shader, gl.COMPILE_STATUS) == gl.FALSE {
		i.LastShaderError = i.drv.GetShaderInfoLog(shader)
		i.drv.DeleteShader(shader)
		return 0, fmt.Errorf("%w (%s): %s", ErrCompile, stageName(shaderType), i.LastShaderError)
	}
	return shader, nil
}

// MakeProgram links two compiled shaders and selects the result
func (i *Interface) MakeProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := i.drv.CreateProgram()
	i.drv.AttachShader(program, vertexShader)
	i.drv.AttachShader(program, fragmentShader)
	i.drv.LinkProgram(program)

	if i.drv.GetProgramiv(program, gl.LINK_STATUS) == gl.FALSE {
		i.LastShaderError = i.drv.GetProgramInfoLog(program)
		i.drv.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, i.LastShaderError)
	}
	i.drv.UseProgram(program)
	return program, nil
}

// Delete releases the program and vertex array object
func (i *Interface) Delete() {
	if i.program != 0 {
		i.drv.DeleteProgram(i.program)
		i.program = 0
	}
	if i.vao != 0 {
		i.drv.DeleteVertexArray(i.vao)
		i.vao = 0
	}
}

// core profile rejects attribute pointers and draws without a bound VAO
func (i *Interface) bindVertexArray() {
	if i.vao == 0 {
		i.vao = i.drv.GenVertexArray()
	}
	i.drv.BindVertexArray(i.vao)
}

func (i *Interface) errorCheck(location string) {
	if code := i.drv.GetError(); code != gl.NO_ERROR {
		i.log.Error("OpenGL error", "location", location, "code", fmt.Sprintf("0x%x", code))
	}
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("0x%x", shaderType)
	}
}
