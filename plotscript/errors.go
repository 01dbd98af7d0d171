package plotscript

import (
	"errors"
	"fmt"
)

// SemanticError is the single error kind raised during evaluation.
// Callers that need to tell failures apart inspect Msg.
type SemanticError struct {
	Msg string
}

func (e *SemanticError) Error() string {
	return e.Msg
}

func semErr(msg string) error {
	return &SemanticError{Msg: msg}
}

func semErrf(format string, args ...interface{}) error {
	return &SemanticError{Msg: fmt.Sprintf(format, args...)}
}

// IsSemanticError reports whether err is, or wraps, a SemanticError.
func IsSemanticError(err error) bool {
	var se *SemanticError
	return errors.As(err, &se)
}

// parser errors
var (
	ErrEmptyInput    = errors.New("empty input")
	UnexpectedEnd    = errors.New("unexpected end of input")
	ErrEmptyForm     = errors.New("empty form ()")
	ErrBareAtom      = errors.New("program must be a parenthesized form")
	ErrInvalidAtom   = errors.New("invalid atom")
	ErrLeftover      = errors.New("unexpected tokens after the first complete form")
	ErrUnbalanced    = errors.New("unbalanced close paren")
	ErrParse         = errors.New("Error: Invalid Expression. Could not parse.")
	ErrNoProgram     = errors.New("Error: no program has been parsed")
	ErrKernelStopped = errors.New("Error: interpreter kernel not running")
)
