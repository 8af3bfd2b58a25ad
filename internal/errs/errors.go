package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conditions that carry no extra data.
var (
	ErrStackUnderflow = errors.New("stack underflow: attempted to pop from an empty stack")
	ErrDivisionByZero = errors.New("division by zero")
	ErrTypeMismatch   = errors.New("type mismatch: operation not supported for given types")
	ErrOverflow       = errors.New("arithmetic overflow occurred")
)

// Span locates a region of the source text as a byte offset and
// length, for caret-style reporting.
type Span struct {
	Start int
	Len   int
}

// ParseError reports malformed source. Input is the full source text so the
// caller can render the offending line with context.
type ParseError struct {
	Input   string
	Span    Span
	Message string

	// Incomplete marks errors caused by the input ending mid-construct
	// (an unterminated TO body). The REPL uses it to keep reading lines.
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// InvalidArgumentError covers wrong arity, unknown procedures and
// out-of-range values.
type InvalidArgumentError struct {
	Command  string
	Argument string
	Expected string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument for command '%s': got '%s', expected %s",
		e.Command, e.Argument, e.Expected)
}

// UndefinedVariableError carries the full list of defined names so the
// caller can suggest what the user might have meant.
type UndefinedVariableError struct {
	Name    string
	Defined []string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable '%s', defined variables are: [%s]",
		e.Name, strings.Join(e.Defined, ", "))
}

type UnexpectedValueError struct {
	Expected string
	Got      string
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("unexpected value: expected %s, but got %s", e.Expected, e.Got)
}

type DrawError struct {
	Message string
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("draw error: %s", e.Message)
}

type ImageSaveError struct {
	Message string
}

func (e *ImageSaveError) Error() string {
	return fmt.Sprintf("image save error: %s", e.Message)
}

// IOError wraps a file access failure with the operation and path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
