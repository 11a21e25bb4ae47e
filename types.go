package shader

// Stage identifies one shader pipeline step.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

// String returns the diagnostic tag for the stage.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "VERTEX"
	case StageFragment:
		return "FRAGMENT"
	default:
		return "UNKNOWN"
	}
}

// StageHandle is a device identifier for a compiled (or failed) stage object.
// Zero is never a valid handle.
type StageHandle uint32

// ProgramHandle is a device identifier for a program object.
// Zero is never a valid handle.
type ProgramHandle uint32

// Device is the subset of a graphics API the manager needs.
// Implementations assume the device context is current on the calling thread.
type Device interface {
	CreateShader(stage Stage) StageHandle
	ShaderSource(shader StageHandle, source string)
	CompileShader(shader StageHandle)
	CompileStatus(shader StageHandle) bool
	// ShaderInfoLog returns at most limit bytes of the compiler log.
	ShaderInfoLog(shader StageHandle, limit int) string
	DeleteShader(shader StageHandle)

	CreateProgram() ProgramHandle
	AttachShader(program ProgramHandle, shader StageHandle)
	LinkProgram(program ProgramHandle)
	LinkStatus(program ProgramHandle) bool
	// ProgramInfoLog returns at most limit bytes of the linker log.
	ProgramInfoLog(program ProgramHandle, limit int) string
	UseProgram(program ProgramHandle)
	DeleteProgram(program ProgramHandle)

	// UniformLocation returns -1 when the program has no active uniform of that name.
	UniformLocation(program ProgramHandle, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, m *[16]float32)
}
