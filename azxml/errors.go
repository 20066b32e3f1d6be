package azxml

import (
	"fmt"
	"strings"
)

// ElementNotFoundError is returned when traversal reaches a path segment with no matching element.
type ElementNotFoundError struct {
	Path []string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("unable to find an element at path '%s'", strings.Join(e.Path, "."))
}

// UnexpectedXMLError is returned when a document does not have the expected structure, for example a required element
// which is empty or contains the wrong kind of node.
type UnexpectedXMLError struct {
	Message string
}

func (e *UnexpectedXMLError) Error() string {
	return e.Message
}
