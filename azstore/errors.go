package azstore

import (
	"errors"
	"fmt"
)

// MissingHeaderError is returned when decoding a response which is missing a header required to populate the typed
// result.
type MissingHeaderError struct {
	// Header is the wire name of the missing header.
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("response is missing the '%s' header", e.Header)
}

// IsMissingHeader returns a boolean indicating whether the given error is a 'MissingHeaderError'.
func IsMissingHeader(err error) bool {
	var missingHeaderError *MissingHeaderError
	return err != nil && errors.As(err, &missingHeaderError)
}

// ParseError is returned when a wire value can't be converted into its typed representation.
type ParseError struct {
	// Kind is a human readable description of the expected type e.g. 'lease status'.
	Kind string

	// Value is the wire value which failed to convert.
	Value string

	inner error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse %s from '%s'", e.Kind, e.Value)
	if e.inner == nil {
		return msg
	}

	return fmt.Sprintf("%s: %v", msg, e.inner)
}

func (e *ParseError) Unwrap() error {
	return e.inner
}
