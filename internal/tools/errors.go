package tools

import (
	"errors"
	"fmt"
)

// Kind classifies tool failures for the caller.
type Kind string

const (
	// KindNotFound marks a missing directory or missing artifact.
	KindNotFound Kind = "not_found"
	// KindProcess marks a failed or absent external command.
	KindProcess Kind = "process_error"
	// KindValidation marks a malformed parameter.
	KindValidation Kind = "validation_error"
)

// Error is the failure type surfaced by every tool. It carries the captured
// stderr and exit code when an external process is involved.
type Error struct {
	Kind     Kind
	Op       string
	Msg      string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	out := fmt.Sprintf("%s: %s", e.Op, msg)
	if e.Stderr != "" {
		out += "\n" + e.Stderr
	}
	return out
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a not-found error for the given operation.
func NotFound(op, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Validation builds a validation error for the given operation.
func Validation(op, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// ProcessFailure wraps a failed external command, keeping stderr and exit code.
func ProcessFailure(op string, err error, stderr string, exitCode int) *Error {
	return &Error{Kind: KindProcess, Op: op, Err: err, Stderr: stderr, ExitCode: exitCode}
}

// KindOf returns the kind of a tool error, or empty for foreign errors.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

// ExitCodeOf returns the captured exit code, or -1 for foreign errors.
func ExitCodeOf(err error) int {
	var te *Error
	if errors.As(err, &te) {
		return te.ExitCode
	}
	return -1
}
