// Package capture renders frames offscreen and writes them to image files.
package capture

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Target is an offscreen framebuffer with a color and a depth attachment.
type Target struct {
	w, h          int
	fbo, rbo, dbo uint32
}

func NewTarget(width, height int) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	t := &Target{w: width, h: height}
	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	// Color renderbuffer.
	gl.GenRenderbuffers(1, &t.rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.rbo)

	// Depth renderbuffer.
	gl.GenRenderbuffers(1, &t.dbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.dbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.dbo)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Delete()
		return nil, fmt.Errorf("incomplete framebuffer: 0x%x", status)
	}
	return t, nil
}

// Bind redirects drawing to the target and sets the viewport to its size.
func (t *Target) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.w), int32(t.h))
}

// Unbind restores drawing to the window.
func (t *Target) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Image reads back the rendered frame, top row first.
func (t *Target) Image() image.Image {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	img := ReadPixels(t.w, t.h)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return &Flip{Image: img}
}

func (t *Target) Delete() {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteRenderbuffers(1, &t.rbo)
	gl.DeleteRenderbuffers(1, &t.dbo)
	t.fbo, t.rbo, t.dbo = 0, 0, 0
}

// ReadPixels reads the bound read framebuffer. OpenGL returns the bottom row
// first.
func ReadPixels(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[0]))
	return img
}

// Flip wraps an image and flips it upside down.
type Flip struct {
	image.Image
}

func (flip *Flip) At(x, y int) color.Color {
	b := flip.Bounds()
	return flip.Image.At(x, b.Max.Y-1-(y-b.Min.Y))
}

// Render draws a single frame into a temporary target and reads it back.
func Render(width, height int, draw func()) (image.Image, error) {
	t, err := NewTarget(width, height)
	if err != nil {
		return nil, err
	}
	defer t.Delete()
	t.Bind()
	draw()
	img := t.Image()
	t.Unbind()
	return img, nil
}
