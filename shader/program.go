package shader

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program. It is owned by the caller and must be
// released with Delete.
type Program struct {
	drv      Driver
	id       uint32
	uniforms map[string]Uniform
}

// ID returns the driver handle, 0 after Delete.
func (p *Program) ID() uint32 {
	return p.id
}

// Delete releases the program. Calling it more than once is a no-op.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.drv.DeleteProgram(p.id)
	p.id = 0
	p.uniforms = nil
}

// Use installs the program as part of the current rendering state.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniforms lists the active uniforms of the program, mapped by name.
func (p *Program) Uniforms() map[string]Uniform {
	if p.uniforms == nil {
		p.uniforms = ListUniforms(p.id)
	}
	return p.uniforms
}

// location returns -1 for unknown uniforms, which the setters below pass on
// to OpenGL where it is silently ignored.
func (p *Program) location(name string) int32 {
	if u, ok := p.Uniforms()[name]; ok {
		return u.Location
	}
	return -1
}

// The setters below expect the program to be in use.

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}
