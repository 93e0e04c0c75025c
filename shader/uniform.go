package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type Uniform struct {
	Name     string
	Type     uint32
	Location int32
}

// ListUniforms queries the active uniforms of a linked program. Array
// uniforms are listed per element.
func ListUniforms(program uint32) map[string]Uniform {
	var numUniforms int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &numUniforms)
	var bufSize int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &bufSize)

	uniforms := map[string]Uniform{}
	for i := uint32(0); i < uint32(numUniforms); i++ {
		var length, size int32
		var typ uint32
		nameBuf := strings.Repeat("\x00", int(bufSize)+1)
		gl.GetActiveUniform(program, i, bufSize, &length, &size, &typ, gl.Str(nameBuf))
		name := nameBuf[:length]

		if strings.HasSuffix(name, "[0]") {
			baseName := strings.TrimSuffix(name, "[0]")
			for i := 0; ; i++ {
				elemName := fmt.Sprintf("%s[%d]", baseName, i)
				loc := gl.GetUniformLocation(program, gl.Str(elemName+"\x00"))
				if loc == -1 {
					break
				}
				uniforms[elemName] = Uniform{Name: elemName, Type: typ, Location: loc}
			}
		} else {
			uniforms[name] = Uniform{
				Name:     name,
				Type:     typ,
				Location: gl.GetUniformLocation(program, gl.Str(name+"\x00")),
			}
		}
	}
	return uniforms
}

var typeLiterals = map[uint32]string{
	gl.FLOAT:             "float",
	gl.FLOAT_VEC2:        "vec2",
	gl.FLOAT_VEC3:        "vec3",
	gl.FLOAT_VEC4:        "vec4",
	gl.INT:               "int",
	gl.INT_VEC2:          "ivec2",
	gl.INT_VEC3:          "ivec3",
	gl.INT_VEC4:          "ivec4",
	gl.UNSIGNED_INT:      "uint",
	gl.BOOL:              "bool",
	gl.FLOAT_MAT2:        "mat2",
	gl.FLOAT_MAT3:        "mat3",
	gl.FLOAT_MAT4:        "mat4",
	gl.SAMPLER_2D:        "sampler2D",
	gl.SAMPLER_3D:        "sampler3D",
	gl.SAMPLER_CUBE:      "samplerCube",
	gl.SAMPLER_2D_SHADOW: "sampler2DShadow",
}

func (u Uniform) TypeLiteral() string {
	if lit, ok := typeLiterals[u.Type]; ok {
		return lit
	}
	return "invalid"
}

func (u Uniform) String() string {
	return fmt.Sprintf("uniform %s %s (%x)", u.TypeLiteral(), u.Name, u.Location)
}
