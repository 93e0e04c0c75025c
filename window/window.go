// Package window opens a glfw window with an OpenGL 3.3 core context.
package window

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Config struct {
	Title         string
	Width, Height int
	// Hidden windows are used to render offscreen.
	Hidden bool
	// Debug requests a debug context and logs the driver's debug messages.
	Debug bool
}

type Window struct {
	*glfw.Window
	sink InputSink
}

// Open creates the window and makes its context current on the calling
// thread, which must be locked with runtime.LockOSThread.
func Open(cfg Config) (*Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw.Init failed: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	if cfg.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}
	if cfg.Debug {
		messages := debugOutput()
		go func() {
			for dm := range messages {
				log.Printf("OpenGL %s", dm)
			}
		}()
	}

	w := &Window{Window: win}
	fbWidth, fbHeight := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if w.sink != nil {
			w.sink.FramebufferResized(width, height)
		}
	})
	return w, nil
}

// Close destroys the window and terminates glfw. Resources of the context
// should be released before.
func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}

// Time returns the number of seconds since the window was opened.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// PollEvents processes pending window events, invoking the attached sink.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) KeyPressed(key glfw.Key) bool {
	return w.GetKey(key) == glfw.Press
}

// CaptureCursor hides the cursor and keeps it inside the window, as needed
// for mouse look.
func (w *Window) CaptureCursor() {
	w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
}

// ProcessInput closes the window when escape is pressed.
func (w *Window) ProcessInput() {
	if w.KeyPressed(glfw.KeyEscape) {
		w.SetShouldClose(true)
	}
}
