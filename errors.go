package pcre4j

import (
	"errors"
	"fmt"

	"github.com/alexey-pelykh/pcre4j-sub002/engine"
	"github.com/alexey-pelykh/pcre4j-sub002/internal/offsets"
)

// Usage errors. All are immediate and synchronous; nothing in this layer is
// retried automatically.
var (
	// ErrNoMatch indicates capture state was queried without a preceding
	// successful match.
	ErrNoMatch = errors.New("pcre4j: no match available")

	// ErrNoSuchGroup indicates a group index beyond the pattern's group
	// count or a name missing from the pattern's name table.
	ErrNoSuchGroup = errors.New("pcre4j: no such group")

	// ErrOutOfRange indicates a region bound or search position outside
	// [0, length] or a region with start > end.
	ErrOutOfRange = errors.New("pcre4j: position out of range")

	// ErrBadTemplate indicates a malformed replacement template: a trailing
	// lone backslash, an unterminated ${...} reference, or an unexpected
	// character after $.
	ErrBadTemplate = errors.New("pcre4j: malformed replacement template")
)

// CompileError reports a malformed pattern. It is raised once at
// construction and is terminal; the pattern is never retried.
type CompileError struct {
	// Pattern is the original pattern text.
	Pattern string
	// Message is the engine's description of the problem.
	Message string
	// Offset is the code-unit offset into Pattern where the error was
	// detected, or -1 when the engine could not report one.
	Offset int
}

func (e *CompileError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("pcre4j: cannot compile %q at offset %d: %s", e.Pattern, e.Offset, e.Message)
	}
	return fmt.Sprintf("pcre4j: cannot compile %q: %s", e.Pattern, e.Message)
}

// EngineError wraps a fatal engine condition reported during a match call.
// It is surfaced immediately to the caller and never retried.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("pcre4j: engine failure: %v", e.Err)
}

// Unwrap returns the underlying engine error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// compileError normalizes a backend compile failure, translating the
// engine's byte offset into a code-unit offset into the compiled text.
func compileError(pattern, compiled string, err error) error {
	var ce *engine.CompileError
	if !errors.As(err, &ce) {
		return fmt.Errorf("pcre4j: cannot compile %q: %w", pattern, err)
	}
	off := -1
	if ce.Offset >= 0 {
		off = offsets.NewMap(compiled).UnitOffsetFloor(ce.Offset)
	}
	return &CompileError{
		Pattern: pattern,
		Message: ce.Message,
		Offset:  off,
	}
}
