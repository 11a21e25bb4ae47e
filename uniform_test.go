package shader_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/internal/devicetest"
)

func TestSetUniformKinds(t *testing.T) {
	mgr, dev, _ := newManager(t)

	prog, err := mgr.Build(triangleVertex, uniformFragment)
	require.NoError(t, err)
	require.NoError(t, prog.Use())

	require.NoError(t, prog.SetBool("enabled", true))
	require.NoError(t, prog.SetInt("mode", 3))
	require.NoError(t, prog.SetFloat("brightness", 0.75))
	require.NoError(t, prog.SetVec3("tint", mgl32.Vec3{1, 0.5, 0.25}))
	require.NoError(t, prog.SetMat4("transform", mgl32.Translate3D(1, 2, 3)))

	tests := []struct {
		name string
		want any
	}{
		{"enabled", int32(1)},
		{"mode", int32(3)},
		{"brightness", float32(0.75)},
		{"tint", [3]float32{1, 0.5, 0.25}},
		{"transform", [16]float32(mgl32.Translate3D(1, 2, 3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := dev.Uniform(prog.Handle(), tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, devicetest.NoError, dev.Error())
}

func TestSetBoolFalse(t *testing.T) {
	mgr, dev, _ := newManager(t)

	prog, err := mgr.Build(triangleVertex, uniformFragment)
	require.NoError(t, err)
	require.NoError(t, prog.Use())

	require.NoError(t, prog.SetBool("enabled", false))
	got, ok := dev.Uniform(prog.Handle(), "enabled")
	require.True(t, ok)
	assert.Equal(t, int32(0), got)
}

func TestSetUniformMissingName(t *testing.T) {
	mgr, dev, logs := newManager(t)

	prog, err := mgr.Build(triangleVertex, uniformFragment)
	require.NoError(t, err)
	require.NoError(t, prog.Use())
	require.NoError(t, prog.SetFloat("brightness", 0.5))
	require.NoError(t, prog.SetInt("mode", 2))

	assert.NoError(t, prog.SetFloat("doesNotExist", 9))
	assert.NoError(t, prog.SetInt("alsoMissing", 9))

	brightness, _ := dev.Uniform(prog.Handle(), "brightness")
	mode, _ := dev.Uniform(prog.Handle(), "mode")
	assert.Equal(t, float32(0.5), brightness)
	assert.Equal(t, int32(2), mode)
	assert.Equal(t, devicetest.NoError, dev.Error())
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "name=doesNotExist")
}

func TestSetUniformOnInactiveProgram(t *testing.T) {
	mgr, dev, _ := newManager(t)

	first, err := mgr.Build(triangleVertex, uniformFragment)
	require.NoError(t, err)
	second, err := mgr.Build(triangleVertex, uniformFragment)
	require.NoError(t, err)
	require.NoError(t, first.Use())

	require.NoError(t, second.SetFloat("brightness", 0.25))

	got, ok := dev.Uniform(second.Handle(), "brightness")
	require.True(t, ok)
	assert.Equal(t, float32(0.25), got)
	_, ok = dev.Uniform(first.Handle(), "brightness")
	assert.False(t, ok, "write must not land in the active program")

	assert.Equal(t, first.Handle(), dev.Current(), "previous program restored")
	assert.Equal(t, first.Handle(), mgr.Current())
	assert.Equal(t, devicetest.NoError, dev.Error())
}

func TestSetUniformWithNoActiveProgram(t *testing.T) {
	mgr, dev, _ := newManager(t)

	prog, err := mgr.Build(triangleVertex, uniformFragment)
	require.NoError(t, err)

	require.NoError(t, prog.SetInt("mode", 1))
	got, _ := dev.Uniform(prog.Handle(), "mode")
	assert.Equal(t, int32(1), got)
	assert.Zero(t, dev.Current())
}

func TestSetUniformInvalidProgram(t *testing.T) {
	mgr, _, _ := newManager(t)

	prog, err := mgr.Build(triangleVertex, uniformFragment)
	require.NoError(t, err)
	require.NoError(t, prog.Delete())

	assert.ErrorIs(t, prog.SetFloat("brightness", 1), shader.ErrInvalidProgram)
	assert.ErrorIs(t, mgr.SetUniform(0, "brightness", shader.Float(1)), shader.ErrInvalidProgram)
}
