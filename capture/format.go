package capture

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path"
	"strings"
)

type Format interface {
	// Extensions returns all file extensions excluding '.' that this format is
	// commonly encoded into.
	Extensions() []string

	// Encode encodes a single image to the specfied io.Writer.
	Encode(w io.Writer, img image.Image) error
}

var Formats = map[string]Format{
	"gif":    GIFFormat{},
	"jpg":    JPGFormat{},
	"png":    PNGFormat{},
	"rgba32": RGBA32Format{},
}

func DetectFormat(filename string) (Format, bool) {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) == 0 {
		return nil, false
	}
	for _, f := range Formats {
		for _, e := range f.Extensions() {
			if e == ext[1:] {
				return f, true
			}
		}
	}
	return nil, false
}

// WriteFile encodes the image into a file, picking the format from the file
// extension.
func WriteFile(filename string, img image.Image) error {
	format, ok := DetectFormat(filename)
	if !ok {
		return fmt.Errorf("unable to detect the image format of %q", filename)
	}
	fd, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := format.Encode(fd, img); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

type PNGFormat struct{}

func (f PNGFormat) Extensions() []string {
	return []string{"png"}
}

func (f PNGFormat) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

type JPGFormat struct{}

func (f JPGFormat) Extensions() []string {
	return []string{"jpg", "jpeg"}
}

func (f JPGFormat) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, nil)
}

type GIFFormat struct{}

func (f GIFFormat) Extensions() []string {
	return []string{"gif"}
}

func (f GIFFormat) Encode(w io.Writer, img image.Image) error {
	frame := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.Draw(frame, img.Bounds(), img, img.Bounds().Min, draw.Src)
	return gif.Encode(w, frame, nil)
}

// RGBA32Format writes the raw pixels, 4 bytes per pixel, top row first.
type RGBA32Format struct{}

func (f RGBA32Format) Extensions() []string {
	return []string{"rgba"}
}

func (f RGBA32Format) Encode(w io.Writer, img image.Image) error {
	var rgbaImg *image.RGBA
	if i, ok := img.(*image.RGBA); ok {
		rgbaImg = i
	} else {
		rgbaImg = image.NewRGBA(img.Bounds())
		draw.Draw(rgbaImg, img.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	_, err := w.Write(rgbaImg.Pix)
	return err
}
