package shader

import (
	"errors"
	"fmt"
)

// ErrInvalidProgram is matched by every *InvalidProgramError.
var ErrInvalidProgram = errors.New("invalid shader program")

// ErrStageReleased is returned when a stage handle is used after Link released it.
var ErrStageReleased = errors.New("shader stage already released")

// ErrDuplicateStage is returned when Link is given the same stage as both inputs.
var ErrDuplicateStage = errors.New("shader stage passed twice")

// CompileError reports a stage rejected by the device compiler.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError reports attached stages rejected at link time.
type LinkError struct {
	Program ProgramHandle
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader program %d linking failed: %s", e.Program, e.Log)
}

// InvalidProgramError reports use of a program handle that is unknown, destroyed
// or not linked.
type InvalidProgramError struct {
	Op      string
	Program ProgramHandle
	Reason  string
}

func (e *InvalidProgramError) Error() string {
	return fmt.Sprintf("%s program %d: %s", e.Op, e.Program, e.Reason)
}

// Is reports whether target is ErrInvalidProgram.
func (e *InvalidProgramError) Is(target error) bool {
	return target == ErrInvalidProgram
}
