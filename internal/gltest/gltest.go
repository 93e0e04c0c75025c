// Package gltest creates OpenGL contexts for tests.
package gltest

import (
	"runtime"
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Init makes a 3.3 core context current on the calling goroutine, backed by
// a hidden window. The test is skipped if no display is available.
func Init(t testing.TB) {
	t.Helper()
	// OpenGL contexts are bound to threads.
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	if err := glfw.Init(); err != nil {
		t.Skipf("no OpenGL available: %v", err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(64, 64, "test", nil, nil)
	if err != nil {
		glfw.Terminate()
		t.Skipf("no OpenGL context available: %v", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		t.Skipf("could not load OpenGL: %v", err)
	}
	t.Cleanup(func() {
		window.Destroy()
		glfw.Terminate()
	})
}
