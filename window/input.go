package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// InputSink receives the input events of a window.
type InputSink interface {
	// FramebufferResized is called after the viewport has been updated to
	// the new size.
	FramebufferResized(width, height int)
	CursorMoved(x, y float64)
	Scrolled(xoffset, yoffset float64)
}

// Attach registers the sink for the window's events, replacing the previous
// one. A nil sink detaches.
func (w *Window) Attach(sink InputSink) {
	w.sink = sink
	if sink == nil {
		w.SetCursorPosCallback(nil)
		w.SetScrollCallback(nil)
		return
	}
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		sink.CursorMoved(x, y)
	})
	w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		sink.Scrolled(xoff, yoff)
	})
}
