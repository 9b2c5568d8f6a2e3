package dynmsg

import (
	"errors"
	"fmt"
)

// ErrNoValue is returned by [Source.Get] if an object does not hold the requested key.
var ErrNoValue = errors.New("no value")

// ErrNotSupported is returned by a [Source] if the value can not be read as the
// requested type.
var ErrNotSupported = errors.New("not supported")

// UnknownTypeError is returned if a message name has no descriptor in the [Registry].
type UnknownTypeError struct {
	Name string
}

func (e UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type %q", e.Name)
}

// NotAnObjectError is returned if a message is decoded from a value that is not an object.
type NotAnObjectError struct {
	Found ValueKind
}

func (e NotAnObjectError) Error() string {
	return fmt.Sprintf("expected object, found %s", e.Found)
}

// NotAnArrayError is returned if a repeated field is decoded from a value that
// is not an array.
type NotAnArrayError struct {
	Found ValueKind
}

func (e NotAnArrayError) Error() string {
	return fmt.Sprintf("expected array, found %s", e.Found)
}

// MissingFieldError is returned if the key of a singular field is absent.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// TypeMismatchError is returned if a scalar could not be read from a value
// of the wrong kind, e.g. a string where a number was expected.
type TypeMismatchError struct {
	Expected ValueKind
	Found    ValueKind
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
}

// UnsupportedFieldKindError is returned for every map, enum and bytes field.
// It does not depend on the input.
type UnsupportedFieldKindError struct {
	Kind  FieldKind
	Field string
}

func (e UnsupportedFieldKindError) Error() string {
	return fmt.Sprintf("field %q: %s fields are not supported", e.Field, e.Kind)
}
