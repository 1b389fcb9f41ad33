package formula

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a formula failure.
type ErrorKind string

// Error kinds. Lex and parse errors invalidate the formula as a whole, while
// eval and type errors are specific to the row being evaluated.
const (
	LexError   ErrorKind = "lex error"
	ParseError ErrorKind = "parse error"
	EvalError  ErrorKind = "eval error"
	TypeError  ErrorKind = "type error"
)

// Error represents a failure to lex, parse or evaluate a formula.
type Error interface {
	Error() string

	// Kind returns which stage of the pipeline failed.
	Kind() ErrorKind

	// Name returns the operator, identifier or builtin the error is about, if
	// any. For example the `&&` of `1 && 2`, or `x` for an unbound `x`.
	Name() string

	// Offset returns the byte offset of the error within the formula, or -1
	// when the error is not tied to a single location.
	Offset() int

	// Pretty prints out a message with a pointer to the source location of the
	// error when one is known.
	Pretty(source string) string
}

type formulaErr struct {
	kind    ErrorKind
	name    string
	offset  int
	message string
}

func (e *formulaErr) Error() string {
	return string(e.kind) + ": " + e.message
}

func (e *formulaErr) Kind() ErrorKind {
	return e.kind
}

func (e *formulaErr) Name() string {
	return e.name
}

func (e *formulaErr) Offset() int {
	return e.offset
}

func (e *formulaErr) Pretty(source string) string {
	if e.offset < 0 {
		return e.Error() + "\n" + source
	}
	return e.Error() + "\n" + source + "\n" + strings.Repeat(".", e.offset) + "^"
}

// NewError creates a new error of the given kind about `name`. Pass an offset
// of -1 when there is no source location.
func NewError(kind ErrorKind, name string, offset int, format string, a ...interface{}) Error {
	return &formulaErr{
		kind:    kind,
		name:    name,
		offset:  offset,
		message: fmt.Sprintf(format, a...),
	}
}

func newLexError(offset int, format string, a ...interface{}) Error {
	return NewError(LexError, "", offset, format, a...)
}

func newParseError(name string, format string, a ...interface{}) Error {
	return NewError(ParseError, name, -1, format, a...)
}

func newEvalError(name string, format string, a ...interface{}) Error {
	return NewError(EvalError, name, -1, format, a...)
}

func newTypeError(name string, format string, a ...interface{}) Error {
	return NewError(TypeError, name, -1, format, a...)
}

// RowError is an evaluation error for one row of a batch. Row is the
// zero-based index into the rows passed to Evaluate.
type RowError struct {
	Row int
	Err Error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s at case %d", e.Err.Error(), e.Row+1)
}

// Unwrap returns the underlying per-row error.
func (e *RowError) Unwrap() error {
	return e.Err
}

// Kind returns the kind of the underlying error.
func (e *RowError) Kind() ErrorKind {
	return e.Err.Kind()
}

// Name returns the name of the underlying error.
func (e *RowError) Name() string {
	return e.Err.Name()
}

// Offset returns the offset of the underlying error.
func (e *RowError) Offset() int {
	return e.Err.Offset()
}

// Pretty prints the underlying error followed by the failing case number.
func (e *RowError) Pretty(source string) string {
	return e.Err.Pretty(source) + fmt.Sprintf("\n(at case %d)", e.Row+1)
}
