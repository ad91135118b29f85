package engine

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOption indicates a backend cannot honor a requested compile
// or match option. Capability-reduced backends wrap it so callers can fall
// back or fail loudly.
var ErrUnsupportedOption = errors.New("engine: unsupported option")

// CompileError reports a malformed pattern.
type CompileError struct {
	// Message is the engine's human-readable description.
	Message string
	// Offset is the byte offset into the pattern where the error was
	// detected, or -1 when the backend cannot report one.
	Offset int
}

func (e *CompileError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("engine: compile failed at byte %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("engine: compile failed: %s", e.Message)
}

// Error reports a fatal engine return code from a match call. Anything other
// than matched, no-match, or partial is fatal for that call and is never
// retried.
type Error struct {
	// Code is the backend-specific error code.
	Code int
	// Message is the backend's description of the code.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine: match failed (code %d): %s", e.Code, e.Message)
}
