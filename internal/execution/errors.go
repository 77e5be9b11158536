package execution

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBinary is returned when Launch gets an empty argument list
	ErrNoBinary = errors.New("no test binary provided")
	// ErrTestsFailed is returned in strict mode when a binary reports failures
	ErrTestsFailed = errors.New("tests failed")
)

// BinaryNotFoundError reports a test binary that could not be resolved
type BinaryNotFoundError struct {
	Name string
	Err  error
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("test binary %q not found: %v", e.Name, e.Err)
}

func (e *BinaryNotFoundError) Unwrap() error { return e.Err }

// ToolNotFoundError reports an external tool missing from PATH
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s is not installed or not on PATH: %v", e.Tool, e.Err)
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }
