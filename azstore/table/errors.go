package table

import (
	"errors"
	"fmt"
)

// MissingPropertyError is returned when decoding a JSON payload which is missing a property required to populate the
// typed result, the body side counterpart to 'azstore.MissingHeaderError'.
type MissingPropertyError struct {
	// Property is the wire name of the missing property.
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("response body is missing the '%s' property", e.Property)
}

// IsMissingProperty returns a boolean indicating whether the given error is a 'MissingPropertyError'.
func IsMissingProperty(err error) bool {
	var missingPropertyError *MissingPropertyError
	return err != nil && errors.As(err, &missingPropertyError)
}
