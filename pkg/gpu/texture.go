package gpu

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"glwrapper/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureExternalOES is the GL_TEXTURE_EXTERNAL_OES target used for camera and video streams
const TextureExternalOES = 0x8D65

// GenTextures asks the driver for n texture handles
func GenTextures(drv Driver, n int32) []uint32 {
	return drv.GenTextures(n)
}

// GenTexture returns a single texture handle, 0 if the driver gave none
func GenTexture(drv Driver) uint32 {
	ids := GenTextures(drv, 1)
	if len(ids) == 0 {
		return 0
	}
	return ids[0]
}

// BindTextureToTextureUnit activates texture unit TEXTURE0+unit and binds textureID to target there.
// target is usually gl.TEXTURE_2D or TextureExternalOES.
func BindTextureToTextureUnit(drv Driver, textureID, unit, target uint32) {
	drv.ActiveTexture(gl.TEXTURE0 + unit)
	drv.BindTexture(target, textureID)
}

// LoadTextureFromFile decodes an image from fsys and uploads it as an RGBA 2D texture
// bound on the given unit. The image is uploaded at its native size with NEAREST filtering.
func LoadTextureFromFile(drv Driver, fsys fs.FS, texFile string, unit uint32) (uint32, error) {
	defer profiling.Track("gpu.LoadTexture")()

	textureID := GenTexture(drv)
	if textureID == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoTexture, texFile)
	}
	BindTextureToTextureUnit(drv, textureID, unit, gl.TEXTURE_2D)
	drv.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	drv.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	rgba, err := decodeRGBA(fsys, texFile)
	if err != nil {
		drv.DeleteTextures([]uint32{textureID})
		return 0, err
	}

	size := rgba.Rect.Size()
	drv.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), gl.RGBA, gl.UNSIGNED_BYTE, rgba.Pix)
	return textureID, nil
}

func decodeRGBA(fsys fs.FS, name string) (*image.RGBA, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", name, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image %s has no pixels", name)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
