// Package texture loads images into 2D textures.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v3.3-core/gl"
	"golang.org/x/image/draw"
)

type Texture struct {
	id   uint32
	rect image.Rectangle
}

// Decode reads an image file into RGBA pixels.
func Decode(path string) (*image.RGBA, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	return rgba
}

// Load decodes and uploads an image file.
func Load(path string) (*Texture, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Upload(img), nil
}

// Upload creates a repeating, mipmapped texture from the image.
func Upload(img *image.RGBA) *Texture {
	tex := &Texture{rect: img.Bounds()}
	gl.GenTextures(1, &tex.id)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(tex.rect.Dx()),
		int32(tex.rect.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (tex *Texture) ID() uint32 { return tex.id }

func (tex *Texture) Bounds() image.Rectangle { return tex.rect }

// Bind binds the texture to the texture unit.
func (tex *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
}

func (tex *Texture) Delete() {
	if tex.id != 0 {
		gl.DeleteTextures(1, &tex.id)
		tex.id = 0
	}
}

// Checker generates a size×size checkerboard of cells×cells squares.
func Checker(size, cells int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	if cell == 0 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.Set(x, y, c)
		}
	}
	return img
}
