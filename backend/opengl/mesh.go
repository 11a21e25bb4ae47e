package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

const sizeofFloat32 = 4

// VertexLayout lists the float component count of each vertex attribute, in location
// order. {3, 3} is a vec3 position at location 0 followed by a vec3 color at location 1.
type VertexLayout []int32

// Components returns the number of floats per vertex.
func (l VertexLayout) Components() int32 {
	var n int32
	for _, c := range l {
		n += c
	}
	return n
}

// Stride returns the size of one vertex in bytes.
func (l VertexLayout) Stride() int32 {
	return l.Components() * sizeofFloat32
}

// Offset returns the byte offset of attribute i within a vertex.
func (l VertexLayout) Offset(i int) uintptr {
	var n int32
	for _, c := range l[:i] {
		n += c
	}
	return uintptr(n * sizeofFloat32)
}

// vertexCount validates vertex and index data against layout and returns the number of
// vertices.
func vertexCount(vertices []float32, indices []uint32, layout VertexLayout) (int, error) {
	components := int(layout.Components())
	if components == 0 {
		return 0, errors.New("vertex layout is empty")
	}
	if len(vertices) == 0 {
		return 0, errors.New("no vertices")
	}
	if len(vertices)%components != 0 {
		return 0, fmt.Errorf("%d floats is not a multiple of %d components per vertex", len(vertices), components)
	}
	n := len(vertices) / components
	for i, idx := range indices {
		if int(idx) >= n {
			return 0, fmt.Errorf("index %d at position %d out of range for %d vertices", idx, i, n)
		}
	}
	return n, nil
}

// Mesh is a vertex array with its vertex buffer and optional element buffer.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
}

// NewMesh uploads vertices (and indices, if any) with STATIC_DRAW and records the
// attribute layout in a vertex array object.
func NewMesh(vertices []float32, indices []uint32, layout VertexLayout) (*Mesh, error) {
	n, err := vertexCount(vertices, indices, layout)
	if err != nil {
		return nil, fmt.Errorf("new mesh: %w", err)
	}

	m := &Mesh{count: int32(n)}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)

	// Bind the VAO first so the buffer and attribute state below is recorded in it.
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*sizeofFloat32, gl.Ptr(vertices), gl.STATIC_DRAW)

	if len(indices) > 0 {
		m.indexed = true
		m.count = int32(len(indices))
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	stride := layout.Stride()
	for i, size := range layout {
		gl.VertexAttribPointerWithOffset(uint32(i), size, gl.FLOAT, false, stride, layout.Offset(i))
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	// Unbind the VAO so later buffer calls cannot modify it. The element buffer binding
	// is VAO state and must stay bound until then.
	gl.BindVertexArray(0)

	return m, nil
}

// Draw draws the mesh as triangles with the active program.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Delete releases the GL objects.
func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
}
