package shader

import "github.com/go-gl/mathgl/mgl32"

// UniformValue is a value that can be written to a uniform location.
type UniformValue interface {
	apply(dev Device, location int32)
}

// Bool is written as an int uniform (0 or 1), as GLSL bools are set through glUniform1i.
type Bool bool

// Int is written with glUniform1i.
type Int int32

// Float is written with glUniform1f.
type Float float32

// Vec3 is written with glUniform3f.
type Vec3 mgl32.Vec3

// Mat4 is written column-major with glUniformMatrix4fv.
type Mat4 mgl32.Mat4

func (v Bool) apply(dev Device, location int32) {
	var i int32
	if v {
		i = 1
	}
	dev.Uniform1i(location, i)
}

func (v Int) apply(dev Device, location int32) { dev.Uniform1i(location, int32(v)) }

func (v Float) apply(dev Device, location int32) { dev.Uniform1f(location, float32(v)) }

func (v Vec3) apply(dev Device, location int32) { dev.Uniform3f(location, v[0], v[1], v[2]) }

func (v Mat4) apply(dev Device, location int32) {
	m := [16]float32(v)
	dev.UniformMatrix4fv(location, &m)
}
