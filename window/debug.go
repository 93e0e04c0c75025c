package window

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// DebugMessage is a message from the driver's debug output.
type DebugMessage struct {
	ID       uint32
	Source   uint32
	Type     uint32
	Severity uint32
	Message  string
}

var debugSeverities = map[uint32]string{
	gl.DEBUG_SEVERITY_HIGH:         "high",
	gl.DEBUG_SEVERITY_MEDIUM:       "medium",
	gl.DEBUG_SEVERITY_LOW:          "low",
	gl.DEBUG_SEVERITY_NOTIFICATION: "note",
}

var debugSources = map[uint32]string{
	gl.DEBUG_SOURCE_API:             "api",
	gl.DEBUG_SOURCE_WINDOW_SYSTEM:   "window system",
	gl.DEBUG_SOURCE_SHADER_COMPILER: "shader compiler",
	gl.DEBUG_SOURCE_THIRD_PARTY:     "third party",
	gl.DEBUG_SOURCE_APPLICATION:     "application",
}

var debugTypes = map[uint32]string{
	gl.DEBUG_TYPE_ERROR:               "error",
	gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR: "deprecated",
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:  "undefined behavior",
	gl.DEBUG_TYPE_PORTABILITY:         "portability",
	gl.DEBUG_TYPE_PERFORMANCE:         "performance",
}

func (dm DebugMessage) String() string {
	name := func(names map[uint32]string, v uint32) string {
		if s, ok := names[v]; ok {
			return s
		}
		return "other"
	}
	return fmt.Sprintf("[%s] %s %s: %s",
		name(debugSeverities, dm.Severity),
		name(debugSources, dm.Source),
		name(debugTypes, dm.Type),
		dm.Message)
}

// debugOutput enables the debug output of the current context. The driver
// is told to leave out notifications. Messages that arrive while the
// channel is full are dropped.
func debugOutput() <-chan DebugMessage {
	ch := make(chan DebugMessage, 32)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DEBUG_SEVERITY_NOTIFICATION, 0, nil, false)
	gl.DebugMessageCallback(func(source, typ, id, severity uint32, _ int32, message string, _ unsafe.Pointer) {
		select {
		case ch <- DebugMessage{ID: id, Source: source, Type: typ, Severity: severity, Message: message}:
		default:
		}
	}, nil)
	return ch
}
