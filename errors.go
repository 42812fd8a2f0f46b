package locadoc

import (
	"errors"
	"fmt"
)

// Sentinel errors for common generation failure conditions.
var (
	// ErrUnknownType is returned when a generation request names a
	// document type outside the registry.
	ErrUnknownType = errors.New("locadoc: unknown document type")
)

// DocError reports a failure of one generation step. It wraps the
// underlying error and names the step for context.
type DocError struct {
	Op  string // step name, e.g. "prepare", "render"
	Err error  // underlying error
}

func (e *DocError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("locadoc.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("locadoc.%s: unknown error", e.Op)
}

func (e *DocError) Unwrap() error {
	return e.Err
}

// newDocError wraps the given error with generation-step context.
func newDocError(op string, err error) *DocError {
	return &DocError{Op: op, Err: err}
}
