// Package mesh uploads interleaved vertex data to the GPU.
package mesh

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

const floatSize = 4

// Layout lists the number of float components of each vertex attribute in
// the order they are interleaved. Attribute i is bound to location i.
type Layout []int32

// Stride returns the size of a single vertex in floats.
func (l Layout) Stride() int32 {
	var n int32
	for _, size := range l {
		n += size
	}
	return n
}

// Validate checks that vertices holds a whole number of vertices.
func (l Layout) Validate(vertices []float32) error {
	stride := l.Stride()
	if stride <= 0 {
		return fmt.Errorf("empty vertex layout")
	}
	if len(vertices) == 0 || len(vertices)%int(stride) != 0 {
		return fmt.Errorf("%d floats do not make whole vertices of %d floats", len(vertices), stride)
	}
	return nil
}

type Mesh struct {
	vao, vbo uint32
	ownsVBO  bool
	count    int32
	layout   Layout
}

// New uploads the vertices to a new buffer and describes them with a new
// vertex array.
func New(vertices []float32, layout Layout) (*Mesh, error) {
	if err := layout.Validate(vertices); err != nil {
		return nil, err
	}
	m := &Mesh{
		ownsVBO: true,
		count:   int32(len(vertices)) / layout.Stride(),
		layout:  layout,
	}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(&vertices[0]), gl.STATIC_DRAW)
	m.enableAttributes(len(layout))
	gl.BindVertexArray(0)
	return m, nil
}

// Share creates a vertex array over the same buffer which only enables the
// first n attributes. The buffer stays owned by m.
func (m *Mesh) Share(n int) *Mesh {
	if n > len(m.layout) {
		n = len(m.layout)
	}
	shared := &Mesh{vbo: m.vbo, count: m.count, layout: m.layout}
	gl.GenVertexArrays(1, &shared.vao)
	gl.BindVertexArray(shared.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, shared.vbo)
	shared.enableAttributes(n)
	gl.BindVertexArray(0)
	return shared
}

func (m *Mesh) enableAttributes(n int) {
	stride := m.layout.Stride() * floatSize
	var offset int32
	for i, size := range m.layout[:n] {
		gl.VertexAttribPointer(uint32(i), size, gl.FLOAT, false, stride, gl.PtrOffset(int(offset)))
		gl.EnableVertexAttribArray(uint32(i))
		offset += size * floatSize
	}
}

// Count returns the number of vertices.
func (m *Mesh) Count() int32 {
	return m.count
}

// Draw draws the vertices as triangles with the current program.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

// Delete releases the vertex array, and the buffer if m owns it.
func (m *Mesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.ownsVBO && m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	m.vbo = 0
}
