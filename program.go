package shader

import "github.com/go-gl/mathgl/mgl32"

// Program is a linked (or failed) vertex+fragment program owned by a Manager.
// Its sources never change; a new Program is built to change them.
type Program struct {
	mgr            *Manager
	handle         ProgramHandle
	id             uint64
	vertexSource   string
	fragmentSource string
	linked         bool
	log            string
}

// Handle returns the device identifier. It is meaningful only when Linked is true.
func (p *Program) Handle() ProgramHandle { return p.handle }

// Linked reports whether the program linked and can be used for drawing.
func (p *Program) Linked() bool { return p.linked }

// Log returns the linker log of a program that failed to link.
func (p *Program) Log() string { return p.log }

// VertexSource returns the vertex stage source the program was built from.
func (p *Program) VertexSource() string { return p.vertexSource }

// FragmentSource returns the fragment stage source the program was built from.
func (p *Program) FragmentSource() string { return p.fragmentSource }

// Use activates the program for subsequent draw calls.
func (p *Program) Use() error { return p.mgr.activate(p.handle, p.id) }

// Delete releases the program. Any later call on p returns an *InvalidProgramError.
// The check holds even after the device reuses the handle number for another program.
func (p *Program) Delete() error { return p.mgr.destroy(p.handle, p.id) }

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, v bool) error {
	return p.mgr.setUniform(p.handle, p.id, name, Bool(v))
}

// SetInt sets an int (or sampler) uniform.
func (p *Program) SetInt(name string, v int32) error {
	return p.mgr.setUniform(p.handle, p.id, name, Int(v))
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) error {
	return p.mgr.setUniform(p.handle, p.id, name, Float(v))
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) error {
	return p.mgr.setUniform(p.handle, p.id, name, Vec3(v))
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) error {
	return p.mgr.setUniform(p.handle, p.id, name, Mat4(m))
}
