// Package devicetest provides an in-memory shader.Device for tests.
//
// The device imitates the parts of OpenGL the shader manager relies on: a compiler that
// rejects malformed GLSL with a log, a linker that requires one compiled vertex stage and
// one compiled fragment stage, uniform locations taken from `uniform` declarations, and a
// sticky error flag set by invalid calls (as glGetError would report them).
package devicetest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-theft-auto/shader"
)

// Error codes, matching the OpenGL values.
const (
	NoError          uint32 = 0
	InvalidValue     uint32 = 0x0501
	InvalidOperation uint32 = 0x0502
)

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

type shaderObject struct {
	stage    shader.Stage
	source   string
	compiled bool
	log      string
	deleted  bool
}

type programObject struct {
	attached []shader.StageHandle
	linked   bool
	log      string
	uniforms map[string]int32
	values   map[int32]any
	deleted  bool
}

// Device is a fake graphics device. The zero value is not usable; call New.
type Device struct {
	nextID   uint32
	shaders  map[shader.StageHandle]*shaderObject
	programs map[shader.ProgramHandle]*programObject
	current  shader.ProgramHandle
	err      uint32
	draws    int
	useCalls int
	reuse    bool
}

// New creates an empty device.
func New() *Device {
	return &Device{
		shaders:  make(map[shader.StageHandle]*shaderObject),
		programs: make(map[shader.ProgramHandle]*programObject),
	}
}

// NewReusing creates a device that hands out the lowest free object number, the way
// Mesa does, so a deleted program's number comes back on the next CreateProgram.
func NewReusing() *Device {
	d := New()
	d.reuse = true
	return d
}

func (d *Device) id() uint32 {
	if d.reuse {
		for n := uint32(1); ; n++ {
			if s, ok := d.shaders[shader.StageHandle(n)]; ok && !s.deleted {
				continue
			}
			if p, ok := d.programs[shader.ProgramHandle(n)]; ok && !p.deleted {
				continue
			}
			return n
		}
	}
	d.nextID++
	return d.nextID
}

func (d *Device) setError(code uint32) {
	if d.err == NoError {
		d.err = code
	}
}

func (d *Device) shader(h shader.StageHandle) *shaderObject {
	s, ok := d.shaders[h]
	if !ok || s.deleted {
		d.setError(InvalidValue)
		return nil
	}
	return s
}

func (d *Device) program(h shader.ProgramHandle) *programObject {
	p, ok := d.programs[h]
	if !ok || p.deleted {
		d.setError(InvalidValue)
		return nil
	}
	return p
}

func (d *Device) CreateShader(stage shader.Stage) shader.StageHandle {
	h := shader.StageHandle(d.id())
	d.shaders[h] = &shaderObject{stage: stage}
	return h
}

func (d *Device) ShaderSource(h shader.StageHandle, source string) {
	if s := d.shader(h); s != nil {
		s.source = source
	}
}

func (d *Device) CompileShader(h shader.StageHandle) {
	s := d.shader(h)
	if s == nil {
		return
	}
	if msg := check(s.source); msg != "" {
		s.compiled = false
		s.log = "0:1(1): error: " + msg + "\n"
		return
	}
	s.compiled = true
	s.log = ""
}

func (d *Device) CompileStatus(h shader.StageHandle) bool {
	s := d.shader(h)
	return s != nil && s.compiled
}

func (d *Device) ShaderInfoLog(h shader.StageHandle, limit int) string {
	s := d.shader(h)
	if s == nil {
		return ""
	}
	return clip(s.log, limit)
}

func (d *Device) DeleteShader(h shader.StageHandle) {
	if s := d.shader(h); s != nil {
		s.deleted = true
	}
}

func (d *Device) CreateProgram() shader.ProgramHandle {
	h := shader.ProgramHandle(d.id())
	d.programs[h] = &programObject{}
	return h
}

func (d *Device) AttachShader(p shader.ProgramHandle, s shader.StageHandle) {
	prog := d.program(p)
	if prog == nil || d.shader(s) == nil {
		return
	}
	for _, h := range prog.attached {
		if h == s {
			d.setError(InvalidOperation)
			return
		}
	}
	prog.attached = append(prog.attached, s)
}

func (d *Device) LinkProgram(p shader.ProgramHandle) {
	prog := d.program(p)
	if prog == nil {
		return
	}
	prog.linked = false
	prog.uniforms = nil
	prog.values = nil

	var vertex, fragment *shaderObject
	for _, h := range prog.attached {
		s := d.shaders[h]
		if !s.compiled {
			prog.log = fmt.Sprintf("error: linking with uncompiled/unspecialized %s shader\n", strings.ToLower(s.stage.String()))
			return
		}
		switch s.stage {
		case shader.StageVertex:
			vertex = s
		case shader.StageFragment:
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		prog.log = "error: program needs one vertex and one fragment shader\n"
		return
	}

	prog.uniforms = make(map[string]int32)
	prog.values = make(map[int32]any)
	for _, src := range []string{vertex.source, fragment.source} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := prog.uniforms[m[1]]; !ok {
				prog.uniforms[m[1]] = int32(len(prog.uniforms))
			}
		}
	}
	prog.linked = true
	prog.log = ""
}

func (d *Device) LinkStatus(p shader.ProgramHandle) bool {
	prog := d.program(p)
	return prog != nil && prog.linked
}

func (d *Device) ProgramInfoLog(p shader.ProgramHandle, limit int) string {
	prog := d.program(p)
	if prog == nil {
		return ""
	}
	return clip(prog.log, limit)
}

func (d *Device) UseProgram(p shader.ProgramHandle) {
	d.useCalls++
	if p == 0 {
		d.current = 0
		return
	}
	prog := d.program(p)
	if prog == nil {
		return
	}
	if !prog.linked {
		d.setError(InvalidOperation)
		return
	}
	d.current = p
}

func (d *Device) DeleteProgram(p shader.ProgramHandle) {
	if prog := d.program(p); prog != nil {
		prog.deleted = true
		if d.current == p {
			d.current = 0
		}
	}
}

func (d *Device) UniformLocation(p shader.ProgramHandle, name string) int32 {
	prog := d.program(p)
	if prog == nil {
		return -1
	}
	if !prog.linked {
		d.setError(InvalidOperation)
		return -1
	}
	loc, ok := prog.uniforms[name]
	if !ok {
		return -1
	}
	return loc
}

func (d *Device) Uniform1i(loc int32, v int32) { d.write(loc, v) }

func (d *Device) Uniform1f(loc int32, v float32) { d.write(loc, v) }

func (d *Device) Uniform3f(loc int32, x, y, z float32) { d.write(loc, [3]float32{x, y, z}) }

func (d *Device) UniformMatrix4fv(loc int32, m *[16]float32) { d.write(loc, *m) }

// write stores v in the current program, the way glUniform* targets the bound program.
func (d *Device) write(loc int32, v any) {
	if loc == -1 {
		return
	}
	if d.current == 0 {
		d.setError(InvalidOperation)
		return
	}
	prog := d.programs[d.current]
	if loc < 0 || int(loc) >= len(prog.uniforms) {
		d.setError(InvalidOperation)
		return
	}
	prog.values[loc] = v
}

// Draw records a draw call. Drawing without a linked program bound is an invalid operation.
func (d *Device) Draw() {
	if d.current == 0 {
		d.setError(InvalidOperation)
		return
	}
	d.draws++
}

// Error returns and clears the error flag, like glGetError.
func (d *Device) Error() uint32 {
	code := d.err
	d.err = NoError
	return code
}

// Current returns the bound program.
func (d *Device) Current() shader.ProgramHandle { return d.current }

// Draws returns the number of successful draw calls.
func (d *Device) Draws() int { return d.draws }

// UseCalls returns the number of UseProgram calls, including rejected ones.
func (d *Device) UseCalls() int { return d.useCalls }

// LiveShaders returns the number of stage objects not yet deleted.
func (d *Device) LiveShaders() int {
	n := 0
	for _, s := range d.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int {
	n := 0
	for _, p := range d.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// ShaderDeleted reports whether stage object h was deleted.
func (d *Device) ShaderDeleted(h shader.StageHandle) bool {
	s, ok := d.shaders[h]
	return ok && s.deleted
}

// Uniform returns the last value written to the named uniform of program p.
// Values are stored as int32, float32, [3]float32 or [16]float32.
func (d *Device) Uniform(p shader.ProgramHandle, name string) (any, bool) {
	prog, ok := d.programs[p]
	if !ok || prog.uniforms == nil {
		return nil, false
	}
	loc, ok := prog.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := prog.values[loc]
	return v, ok
}

// check returns a compiler message for source, or "" when it compiles.
func check(source string) string {
	src := strings.TrimSpace(source)
	if src == "" {
		return "empty shader source"
	}
	if !strings.HasPrefix(src, "#version") {
		return "#version directive must come first"
	}
	depth := map[rune]int{}
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	for _, r := range src {
		switch r {
		case '(', '{', '[':
			depth[r]++
		case ')', '}', ']':
			depth[pairs[r]]--
			if depth[pairs[r]] < 0 {
				return fmt.Sprintf("syntax error, unexpected '%c'", r)
			}
		}
	}
	for _, open := range []rune{'(', '{', '['} {
		if depth[open] != 0 {
			return "syntax error, unexpected end of file"
		}
	}
	if !strings.Contains(src, "void main") {
		return "no function with name 'main'"
	}
	return ""
}

func clip(s string, limit int) string {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

var _ shader.Device = (*Device)(nil)
