package shader

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// CompileResult is the outcome of compiling one stage. The stage object exists on the
// device whether or not compilation succeeded, and is released by Link.
type CompileResult struct {
	Stage  Stage
	Handle StageHandle
	OK     bool
	Log    string

	// id ties the result to the stage object it was compiled into, so a result kept
	// after Link cannot name a stage the device created later under the same number.
	id uint64
}

// Err returns a *CompileError when the stage failed to compile, nil otherwise.
func (r CompileResult) Err() error {
	if r.OK {
		return nil
	}
	return &CompileError{Stage: r.Stage, Log: r.Log}
}

type stageState struct {
	stage Stage
	id    uint64
}

type programState struct {
	id        uint64
	linked    bool
	locations map[string]int32
}

// Manager owns every stage and program object it creates on a Device.
type Manager struct {
	dev      Device
	logger   *slog.Logger
	strict   bool
	logLimit int

	stages   map[StageHandle]stageState
	programs map[ProgramHandle]*programState
	current  ProgramHandle
	nextID   uint64
}

// NewManager creates a manager for dev. The device context must already be current.
func NewManager(dev Device, opts ...Option) *Manager {
	m := &Manager{
		dev:      dev,
		logger:   defaultLogger,
		logLimit: DefaultInfoLogLimit,
		stages:   make(map[StageHandle]stageState),
		programs: make(map[ProgramHandle]*programState),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Compile creates a stage object for source and compiles it.
func (m *Manager) Compile(stage Stage, source string) CompileResult {
	h := m.dev.CreateShader(stage)
	m.dev.ShaderSource(h, source)
	m.dev.CompileShader(h)
	m.nextID++
	m.stages[h] = stageState{stage: stage, id: m.nextID}

	res := CompileResult{Stage: stage, Handle: h, OK: m.dev.CompileStatus(h), id: m.nextID}
	if res.OK {
		m.logger.Debug("shader compiled", "type", stage.String(), "shader", h)
		return res
	}

	res.Log = truncate(m.dev.ShaderInfoLog(h, m.logLimit), m.logLimit)
	if res.Log == "" {
		res.Log = "compiler reported failure without a log"
	}
	m.logger.Error("ERROR::SHADER_COMPILATION_ERROR", "type", stage.String(), "log", res.Log)
	return res
}

// Link attaches both stages to a new program object and links it. Both stage objects
// are released before Link returns, whatever the outcome. The program handle is
// returned even when linking fails so that it can be destroyed.
//
// Results whose stage was already released, or one result passed as both stages, are
// rejected before a program object is created; any live stage among them is released.
func (m *Manager) Link(vertex, fragment CompileResult) (ProgramHandle, error) {
	var rejected []error
	for _, r := range [...]CompileResult{vertex, fragment} {
		if !m.stageLive(r) {
			rejected = append(rejected, fmt.Errorf("link %s stage %d: %w", r.Stage, r.Handle, ErrStageReleased))
		}
	}
	if len(rejected) == 0 && vertex.Handle == fragment.Handle {
		rejected = append(rejected, fmt.Errorf("link stage %d: %w", vertex.Handle, ErrDuplicateStage))
	}
	if len(rejected) > 0 {
		m.releaseStage(vertex)
		m.releaseStage(fragment)
		return 0, errors.Join(rejected...)
	}

	p := m.dev.CreateProgram()
	m.dev.AttachShader(p, vertex.Handle)
	m.dev.AttachShader(p, fragment.Handle)
	m.dev.LinkProgram(p)

	linked := m.dev.LinkStatus(p)
	var err error
	if linked {
		m.logger.Debug("shader program linked", "program", p)
	} else {
		log := truncate(m.dev.ProgramInfoLog(p, m.logLimit), m.logLimit)
		if log == "" {
			log = "linker reported failure without a log"
		}
		m.logger.Error("ERROR::PROGRAM_LINKING_ERROR", "type", "PROGRAM", "log", log)
		err = &LinkError{Program: p, Log: log}
	}

	m.releaseStage(vertex)
	m.releaseStage(fragment)

	m.nextID++
	m.programs[p] = &programState{id: m.nextID, linked: linked}
	return p, err
}

// Activate makes p the program used by subsequent draw calls.
func (m *Manager) Activate(p ProgramHandle) error {
	return m.activate(p, 0)
}

func (m *Manager) activate(p ProgramHandle, id uint64) error {
	if _, err := m.lookup("activate", p, id, true); err != nil {
		return err
	}
	m.dev.UseProgram(p)
	m.current = p
	return nil
}

// SetUniform writes v to the uniform called name in program p. A name the program does
// not have is logged and ignored. When p is not the active program it is bound for the
// write and the previous program restored afterwards.
func (m *Manager) SetUniform(p ProgramHandle, name string, v UniformValue) error {
	return m.setUniform(p, 0, name, v)
}

func (m *Manager) setUniform(p ProgramHandle, id uint64, name string, v UniformValue) error {
	st, err := m.lookup("set uniform on", p, id, true)
	if err != nil {
		return err
	}

	loc, ok := st.locations[name]
	if !ok {
		loc = m.dev.UniformLocation(p, name)
		if st.locations == nil {
			st.locations = make(map[string]int32)
		}
		st.locations[name] = loc
	}
	if loc < 0 {
		m.logger.Warn("uniform not found", "program", p, "name", name)
		return nil
	}

	if m.current != p {
		prev := m.current
		m.dev.UseProgram(p)
		v.apply(m.dev, loc)
		m.dev.UseProgram(prev)
		return nil
	}
	v.apply(m.dev, loc)
	return nil
}

// Destroy releases program p on the device.
func (m *Manager) Destroy(p ProgramHandle) error {
	return m.destroy(p, 0)
}

func (m *Manager) destroy(p ProgramHandle, id uint64) error {
	if _, err := m.lookup("destroy", p, id, false); err != nil {
		return err
	}
	m.dev.DeleteProgram(p)
	delete(m.programs, p)
	if m.current == p {
		m.current = 0
	}
	m.logger.Debug("shader program destroyed", "program", p)
	return nil
}

// Current returns the active program, or zero when none is active.
func (m *Manager) Current() ProgramHandle {
	return m.current
}

// Live returns the number of programs not yet destroyed.
func (m *Manager) Live() int {
	return len(m.programs)
}

// Build compiles both stages, links them and releases the stage objects, in that order.
// A stage that fails to compile is still attached and linked, so the returned program is
// never nil in the default mode; it is usable only if Linked reports true. The error
// joins every compile and link failure.
//
// With WithStrict, Build returns a nil program and the compile errors as soon as either
// stage fails.
func (m *Manager) Build(vertexSource, fragmentSource string) (*Program, error) {
	vs := m.Compile(StageVertex, vertexSource)
	fs := m.Compile(StageFragment, fragmentSource)

	compileErr := errors.Join(vs.Err(), fs.Err())
	if m.strict && compileErr != nil {
		m.releaseStage(vs)
		m.releaseStage(fs)
		return nil, compileErr
	}

	h, linkErr := m.Link(vs, fs)
	prog := &Program{
		mgr:            m,
		handle:         h,
		id:             m.programs[h].id,
		vertexSource:   vertexSource,
		fragmentSource: fragmentSource,
		linked:         linkErr == nil,
	}
	var le *LinkError
	if errors.As(linkErr, &le) {
		prog.log = le.Log
	}

	return prog, errors.Join(compileErr, linkErr)
}

// BuildFiles reads both sources from disk and calls Build. An unreadable file is logged
// and, unless the manager is strict, compiled as an empty source so that the failure
// shows up in the returned program.
func (m *Manager) BuildFiles(vertexPath, fragmentPath string) (*Program, error) {
	vertexSource, vErr := ReadSource(vertexPath)
	fragmentSource, fErr := ReadSource(fragmentPath)

	readErr := errors.Join(vErr, fErr)
	if readErr != nil {
		m.logger.Error("ERROR::SHADER::FILE_NOT_SUCCESSFULLY_READ", "err", readErr)
		if m.strict {
			return nil, readErr
		}
	}

	prog, err := m.Build(vertexSource, fragmentSource)
	return prog, errors.Join(readErr, err)
}

// Rebuild builds a replacement for old from new sources. The replacement is kept only if
// it links: old is then destroyed (and the replacement activated if old was active).
// Otherwise the replacement is destroyed and old is returned unchanged with the error.
func (m *Manager) Rebuild(old *Program, vertexSource, fragmentSource string) (*Program, error) {
	next, err := m.Build(vertexSource, fragmentSource)
	if next == nil || !next.Linked() {
		if next != nil {
			if derr := next.Delete(); derr != nil {
				err = errors.Join(err, derr)
			}
		}
		return old, err
	}

	if old == nil {
		return next, err
	}

	_, lerr := m.lookup("rebuild", old.handle, old.id, false)
	wasCurrent := lerr == nil && m.current == old.handle
	if derr := old.Delete(); derr != nil {
		err = errors.Join(err, derr)
	}
	if wasCurrent {
		if uerr := next.Use(); uerr != nil {
			err = errors.Join(err, uerr)
		}
	}
	return next, err
}

// RebuildFiles is Rebuild with sources read from disk.
func (m *Manager) RebuildFiles(old *Program, vertexPath, fragmentPath string) (*Program, error) {
	vertexSource, vErr := ReadSource(vertexPath)
	fragmentSource, fErr := ReadSource(fragmentPath)
	if err := errors.Join(vErr, fErr); err != nil {
		m.logger.Error("ERROR::SHADER::FILE_NOT_SUCCESSFULLY_READ", "err", err)
		return old, err
	}
	return m.Rebuild(old, vertexSource, fragmentSource)
}

// lookup finds the live program p. A non-zero id must match the identity the program
// was created with, which rejects a stale *Program whose number the device has since
// handed to a new program.
func (m *Manager) lookup(op string, p ProgramHandle, id uint64, requireLinked bool) (*programState, error) {
	if p == 0 {
		return nil, &InvalidProgramError{Op: op, Program: p, Reason: "zero handle"}
	}
	st, ok := m.programs[p]
	if !ok || (id != 0 && st.id != id) {
		return nil, &InvalidProgramError{Op: op, Program: p, Reason: "unknown or destroyed"}
	}
	if requireLinked && !st.linked {
		return nil, &InvalidProgramError{Op: op, Program: p, Reason: "not linked"}
	}
	return st, nil
}

func (m *Manager) stageLive(r CompileResult) bool {
	st, ok := m.stages[r.Handle]
	return ok && st.id == r.id
}

// releaseStage deletes the stage object r was compiled into, if it is still live.
func (m *Manager) releaseStage(r CompileResult) {
	if !m.stageLive(r) {
		return
	}
	m.dev.DeleteShader(r.Handle)
	delete(m.stages, r.Handle)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
