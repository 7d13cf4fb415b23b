package zerobuf

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for runtime operations.
var (
	// ErrTypeMismatch is returned when an operation combines objects or
	// data of different table types.
	ErrTypeMismatch = errors.New("zerobuf: type mismatch")

	// ErrBufferTooSmall is returned when raw data is smaller than the static
	// size of the table it should hold.
	ErrBufferTooSmall = errors.New("zerobuf: buffer too small")

	// ErrUnknownType is returned by the type registry for identifiers and
	// names nothing was registered under.
	ErrUnknownType = errors.New("zerobuf: unknown type")

	// ErrInvalidJSON is returned when a JSON document cannot be applied to
	// an object.
	ErrInvalidJSON = errors.New("zerobuf: invalid json")

	// ErrOutOfRange is the value accessors panic with when an element or
	// slot index is out of range.
	ErrOutOfRange = errors.New("zerobuf: index out of range")
)

func outOfRange(what string, i, n int) error {
	return fmt.Errorf("%w: %s %d not in [0, %d)", ErrOutOfRange, what, i, n)
}

// TypeMismatchError reports an operation between different table types.
type TypeMismatchError struct {
	name string
	want Uint128
	got  Uint128
}

// Error returns the error string.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("zerobuf: type mismatch for %s (want %s, got %s)", e.name, e.want, e.got)
}

// Is reports whether the target error matches TypeMismatchError.
// This allows errors.Is(err, ErrTypeMismatch) to return true.
func (e *TypeMismatchError) Is(err error) bool {
	return err == ErrTypeMismatch
}

// Name returns the name of the receiving type.
func (e *TypeMismatchError) Name() string { return e.name }

// Want returns the identifier of the receiving type.
func (e *TypeMismatchError) Want() Uint128 { return e.want }

// Got returns the identifier that was offered.
func (e *TypeMismatchError) Got() Uint128 { return e.got }

// NewTypeMismatchError returns a new TypeMismatchError.
func NewTypeMismatchError(name string, want, got Uint128) *TypeMismatchError {
	return &TypeMismatchError{name: name, want: want, got: got}
}

// IsTypeMismatch returns true if the error is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *TypeMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrTypeMismatch)
}

// FieldError wraps an error decoding one field of a JSON document.
type FieldError struct {
	Type  string // Table type name
	Field string // Field name
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *FieldError) Error() string {
	return fmt.Sprintf("zerobuf: decoding %s.%s: %v", e.Type, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError returns a new FieldError.
func NewFieldError(typ, field string, err error) *FieldError {
	return &FieldError{Type: typ, Field: field, Err: err}
}

// IsFieldError returns true if the error is a FieldError.
func IsFieldError(err error) bool {
	if err == nil {
		return false
	}
	var e *FieldError
	return errors.As(err, &e)
}

// UnknownTypeError reports a registry lookup that found nothing.
type UnknownTypeError struct {
	Key string // Name or identifier looked up
}

// Error returns the error string.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("zerobuf: unknown type %s", e.Key)
}

// Is reports whether the target error matches UnknownTypeError.
func (e *UnknownTypeError) Is(err error) bool {
	return err == ErrUnknownType
}

// IsUnknownType returns true if the error is an UnknownTypeError.
func IsUnknownType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownType)
}
