package shader

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// MaxLogLength bounds the diagnostic log retrieved from the driver.
const MaxLogLength = 4096

// Driver is the part of a graphics context needed to build shader programs.
// All methods must be called from the thread owning the context.
type Driver interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	CompileStatus(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
}

// GLDriver implements Driver on top of the OpenGL context that is current on
// the calling thread.
type GLDriver struct{}

func (GLDriver) CreateShader(stage Stage) uint32 {
	e, err := stage.glEnum()
	if err != nil {
		return 0
	}
	return gl.CreateShader(e)
}

func (GLDriver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (GLDriver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (GLDriver) CompileStatus(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	logLen = clampLogLength(logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return trimLog(log)
}

func (GLDriver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (GLDriver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (GLDriver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (GLDriver) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (GLDriver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (GLDriver) LinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	logLen = clampLogLength(logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return trimLog(log)
}

func (GLDriver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func clampLogLength(n int32) int32 {
	if n < 0 {
		return 0
	}
	if n > MaxLogLength {
		return MaxLogLength
	}
	return n
}

func trimLog(log string) string {
	if i := strings.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	return strings.TrimRight(log, "\n")
}
