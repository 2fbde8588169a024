package mesh

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrDegenerateNormal is returned for a triangle whose normal has zero or non-finite length.
	// The converter skips such triangles and records them in Diagnostics.
	ErrDegenerateNormal = errors.New("degenerate normal")

	// ErrInputLengthMismatch means the triangle and normal sequences differ in length.
	// It is fatal for the mesh being converted.
	ErrInputLengthMismatch = errors.New("triangle and normal counts differ")

	// ErrInvalidOptions is returned by NewConverter for out-of-range options.
	ErrInvalidOptions = errors.New("invalid options")
)

// Error carries structured context for a failed mesh operation.
type Error struct {
	Op       string // Operation that failed (e.g., "Convert", "Index")
	Mesh     string // Mesh name, if known
	Triangle int    // Input triangle index, or -1
	Cause    error
	Context  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Op
	if e.Mesh != "" {
		msg += " " + e.Mesh
	}
	if e.Triangle >= 0 {
		msg += fmt.Sprintf(" triangle %d", e.Triangle)
	}
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func newError(op, meshName string, triangle int, cause error, context string) *Error {
	return &Error{
		Op:       op,
		Mesh:     meshName,
		Triangle: triangle,
		Cause:    cause,
		Context:  context,
	}
}
