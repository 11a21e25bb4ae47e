// Package opengl implements shader.Device with OpenGL 3.3 core and provides the GLFW
// window and mesh glue used by the example programs.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/go-theft-auto/shader"
)

// Device forwards shader.Device calls to the current OpenGL context.
type Device struct{}

// NewDevice returns a device for the current context. gl.Init must have been called.
func NewDevice() *Device {
	return &Device{}
}

// CreateShader creates a vertex or fragment shader object.
func (d *Device) CreateShader(stage shader.Stage) shader.StageHandle {
	var kind uint32 = gl.VERTEX_SHADER
	if stage == shader.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	return shader.StageHandle(gl.CreateShader(kind))
}

// ShaderSource replaces the source of shader s.
func (d *Device) ShaderSource(s shader.StageHandle, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csource, nil)
	free()
}

// CompileShader compiles the source attached to s.
func (d *Device) CompileShader(s shader.StageHandle) {
	gl.CompileShader(uint32(s))
}

// CompileStatus reports GL_COMPILE_STATUS for s.
func (d *Device) CompileStatus(s shader.StageHandle) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// ShaderInfoLog returns at most limit bytes of the compile log of s.
func (d *Device) ShaderInfoLog(s shader.StageHandle, limit int) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	size := logSize(logLength, limit)
	if size == 0 {
		return ""
	}
	log := make([]byte, size)
	var written int32
	gl.GetShaderInfoLog(uint32(s), size, &written, &log[0])
	return string(log[:written])
}

// DeleteShader flags s for deletion. A shader still attached to a program is freed
// when the program is.
func (d *Device) DeleteShader(s shader.StageHandle) {
	gl.DeleteShader(uint32(s))
}

// CreateProgram creates an empty program object.
func (d *Device) CreateProgram() shader.ProgramHandle {
	return shader.ProgramHandle(gl.CreateProgram())
}

// AttachShader attaches s to p.
func (d *Device) AttachShader(p shader.ProgramHandle, s shader.StageHandle) {
	gl.AttachShader(uint32(p), uint32(s))
}

// LinkProgram links the stages attached to p.
func (d *Device) LinkProgram(p shader.ProgramHandle) {
	gl.LinkProgram(uint32(p))
}

// LinkStatus reports GL_LINK_STATUS for p.
func (d *Device) LinkStatus(p shader.ProgramHandle) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

// ProgramInfoLog returns at most limit bytes of the link log of p.
func (d *Device) ProgramInfoLog(p shader.ProgramHandle, limit int) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	size := logSize(logLength, limit)
	if size == 0 {
		return ""
	}
	log := make([]byte, size)
	var written int32
	gl.GetProgramInfoLog(uint32(p), size, &written, &log[0])
	return string(log[:written])
}

// UseProgram binds p for drawing. Zero unbinds.
func (d *Device) UseProgram(p shader.ProgramHandle) {
	gl.UseProgram(uint32(p))
}

// DeleteProgram deletes p.
func (d *Device) DeleteProgram(p shader.ProgramHandle) {
	gl.DeleteProgram(uint32(p))
}

// UniformLocation returns the location of name in p, or -1 when p has no active
// uniform of that name.
func (d *Device) UniformLocation(p shader.ProgramHandle, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// Uniform1i sets an int or bool uniform of the bound program.
func (d *Device) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

// Uniform1f sets a float uniform of the bound program.
func (d *Device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

// Uniform3f sets a vec3 uniform of the bound program.
func (d *Device) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

// UniformMatrix4fv sets a mat4 uniform of the bound program from a column-major matrix.
func (d *Device) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// logSize returns the buffer size for an info log of logLength bytes (including the
// terminating NUL) capped at limit.
func logSize(logLength int32, limit int) int32 {
	if logLength <= 0 {
		return 0
	}
	if limit > 0 && int(logLength) > limit {
		return int32(limit)
	}
	return logLength
}

// CheckError drains the OpenGL error queue and returns the codes seen, or nil.
func CheckError() error {
	var names []string
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		names = append(names, errorName(code))
		// GetError keeps returning errors if the context was lost.
		if len(names) > 16 {
			break
		}
	}
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("opengl error: %s", strings.Join(names, ", "))
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

var _ shader.Device = (*Device)(nil)
