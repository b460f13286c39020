package main

import (
	"io/fs"
	"log/slog"

	"glwrapper/internal/config"
	"glwrapper/pkg/glmath"
	"glwrapper/pkg/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Unit quad, interleaved XYZUV
var quadVertices = []float32{
	-0.5, -0.5, 0, 0, 1,
	0.5, -0.5, 0, 1, 1,
	0.5, 0.5, 0, 1, 0,
	-0.5, 0.5, 0, 0, 0,
}

var quadIndices = []uint16{0, 1, 2, 2, 3, 0}

const textureUnit = 0

type scene struct {
	drv      gpu.Driver
	assets   fs.FS
	settings *config.Settings
	log      *slog.Logger

	gpu      *gpu.Interface
	vertices *gpu.FloatBuffer
	indices  *gpu.ShortBuffer
	texture  uint32

	camera     *glmath.Camera
	projection *glmath.Matrix
	spin       float32
	spinning   bool

	aVertex, aTexCoord int32
	uMvp, uTexture     int32
	uTint              int32
}

func newScene(drv gpu.Driver, assets fs.FS, settings *config.Settings, log *slog.Logger) (*scene, error) {
	sc := &scene{
		drv:        drv,
		assets:     assets,
		settings:   settings,
		log:        log,
		gpu:        gpu.NewInterface(drv, gpu.WithID("quad"), gpu.WithLogger(log)),
		camera:     glmath.NewCamera(),
		projection: glmath.NewMatrix(),
		spinning:   true,
	}
	if err := sc.gpu.LoadShaders(assets, settings.Assets.VertexShader, settings.Assets.FragmentShader); err != nil {
		return nil, err
	}
	sc.lookupLocations()

	sc.vertices = gpu.MakeFloatBuffer(drv, quadVertices)
	sc.indices = gpu.MakeShortBuffer(drv, quadIndices)

	tex, err := gpu.LoadTextureFromFile(drv, assets, settings.Assets.Texture, textureUnit)
	if err != nil {
		// untextured quad still renders; the sampler reads black
		log.Warn("texture not loaded", "file", settings.Assets.Texture, "err", err)
	}
	sc.texture = tex

	sc.camera.Translate(0, 0, 2)
	sc.setViewport(settings.Window.Width, settings.Window.Height)
	return sc, nil
}

func (sc *scene) lookupLocations() {
	sc.aVertex = sc.gpu.AttribLocation("aVertex")
	sc.aTexCoord = sc.gpu.AttribLocation("aTexCoord")
	sc.uMvp = sc.gpu.UniformLocation("uMvp")
	sc.uTexture = sc.gpu.UniformLocation("uTexture")
	sc.uTint = sc.gpu.UniformLocation("uTint")
}

// reloadShaders keeps the previous program when the new sources fail to build
func (sc *scene) reloadShaders() {
	if err := sc.gpu.LoadShaders(sc.assets, sc.settings.Assets.VertexShader, sc.settings.Assets.FragmentShader); err != nil {
		sc.log.Error("shader reload failed", "err", err, "log", sc.gpu.LastShaderError)
		return
	}
	sc.lookupLocations()
	sc.log.Info("shaders reloaded", "program", sc.gpu.Program())
}

func (sc *scene) setViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	cam := sc.settings.Camera
	sc.projection.SetProjection(cam.HorizontalFOV, float32(width)/float32(height), cam.Near, cam.Far)
}

func (sc *scene) update(dt float32) {
	if sc.spinning {
		sc.spin += sc.settings.Render.SpinSpeed * dt
	}
}

func (sc *scene) render() {
	c := sc.settings.Render.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	mvp := glmath.NewMatrix()
	mvp.Multiply(sc.projection)
	mvp.Multiply(sc.camera.ViewMatrix())
	mvp.Rotate(sc.spin, 0, 1, 0)

	sc.gpu.Select()
	sc.gpu.SendMatrix(sc.uMvp, mvp)
	sc.gpu.SetUniform4FloatArray(sc.uTint, [4]float32{1, 1, 1, 1})
	if sc.texture != 0 {
		gpu.BindTextureToTextureUnit(sc.drv, sc.texture, textureUnit, gl.TEXTURE_2D)
		sc.gpu.SetUniformInt(sc.uTexture, textureUnit)
	}
	sc.gpu.DrawTexturedBufferedData(sc.vertices, sc.indices, sc.aVertex, sc.aTexCoord, gl.TRIANGLES)
}

func (sc *scene) Delete() {
	sc.vertices.Delete()
	sc.indices.Delete()
	if sc.texture != 0 {
		sc.drv.DeleteTextures([]uint32{sc.texture})
	}
	sc.gpu.Delete()
}
