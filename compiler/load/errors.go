package load

import (
	"errors"
	"fmt"
)

// ErrSyntax is returned when schema text does not match the grammar.
var ErrSyntax = errors.New("load: syntax error")

// SyntaxError reports the offending token of a schema that failed to parse.
type SyntaxError struct {
	Pos     Pos    // Position of the token
	Token   string // Token text, empty at end of input
	Message string // What was expected
}

// Error returns the error string.
func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: syntax error at end of input: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: syntax error near %q: %s", e.Pos, e.Token, e.Message)
}

// Is reports whether the target error matches SyntaxError.
// This allows errors.Is(err, ErrSyntax) to return true.
func (e *SyntaxError) Is(err error) bool {
	return err == ErrSyntax
}

// IsSyntaxError returns true if the error is a SyntaxError.
func IsSyntaxError(err error) bool {
	if err == nil {
		return false
	}
	var e *SyntaxError
	return errors.As(err, &e) || errors.Is(err, ErrSyntax)
}
