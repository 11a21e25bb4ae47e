package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout{3, 3}

	assert.Equal(t, int32(6), layout.Components())
	assert.Equal(t, int32(24), layout.Stride())
	assert.Equal(t, uintptr(0), layout.Offset(0))
	assert.Equal(t, uintptr(12), layout.Offset(1))
}

func TestVertexCount(t *testing.T) {
	quad := []float32{
		0.5, 0.5, 0, 1, 0, 0,
		0.5, -0.5, 0, 0, 1, 0,
		-0.5, -0.5, 0, 0, 0, 1,
		-0.5, 0.5, 0, 1, 0, 1,
	}

	n, err := vertexCount(quad, []uint32{0, 1, 3, 1, 2, 3}, VertexLayout{3, 3})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = vertexCount(quad[:9], nil, VertexLayout{3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestVertexCountErrors(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		indices  []uint32
		layout   VertexLayout
	}{
		{"empty layout", []float32{0, 0, 0}, nil, nil},
		{"no vertices", nil, nil, VertexLayout{3}},
		{"partial vertex", []float32{0, 0, 0, 1}, nil, VertexLayout{3}},
		{"index out of range", []float32{0, 0, 0, 1, 1, 1}, []uint32{0, 2}, VertexLayout{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vertexCount(tt.vertices, tt.indices, tt.layout)
			assert.Error(t, err)
		})
	}
}

func TestLogSize(t *testing.T) {
	assert.Equal(t, int32(0), logSize(0, 1024))
	assert.Equal(t, int32(0), logSize(-1, 1024))
	assert.Equal(t, int32(100), logSize(100, 1024))
	assert.Equal(t, int32(1024), logSize(4096, 1024))
	assert.Equal(t, int32(4096), logSize(4096, 0))
}

func TestErrorName(t *testing.T) {
	assert.Equal(t, "GL_INVALID_OPERATION", errorName(0x0502))
	assert.Equal(t, "GL_OUT_OF_MEMORY", errorName(0x0505))
	assert.Equal(t, "0x1234", errorName(0x1234))
}
