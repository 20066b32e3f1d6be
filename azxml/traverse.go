package azxml

import (
	"fmt"
	"strings"
)

// Traverse returns the elements located at the given path below the given element. At each level every child element
// matching the next path segment is followed so a path may fan out to multiple elements. An absent leaf yields an
// empty slice, an absent intermediate segment an ElementNotFoundError.
func Traverse(element *Element, path ...string) ([]*Element, error) {
	return traverse(element, path, true)
}

// TraverseOne returns the single element located at the given path below the given element, an absent path yields an
// ElementNotFoundError and multiple matches an UnexpectedXMLError.
func TraverseOne(element *Element, path ...string) (*Element, error) {
	matched, err := traverse(element, path, false)
	if err != nil {
		return nil, err
	}

	if len(matched) > 1 {
		return nil, &UnexpectedXMLError{
			Message: fmt.Sprintf("expected a single element at path '%s'", strings.Join(path, ".")),
		}
	}

	return matched[0], nil
}

func traverse(element *Element, path []string, ignoreEmptyLeaf bool) ([]*Element, error) {
	current := []*Element{element}

	for depth, name := range path {
		var next []*Element

		for _, element := range current {
			next = append(next, element.Elements(name)...)
		}

		if len(next) == 0 {
			if depth == len(path)-1 && ignoreEmptyLeaf {
				return nil, nil
			}

			return nil, &ElementNotFoundError{Path: path[:depth+1]}
		}

		current = next
	}

	return current, nil
}

// ParseFunc converts the text content of a leaf element into a typed value.
type ParseFunc[T any] func(value string) (T, error)

// ParseString is a ParseFunc which returns the leaf content as is.
func ParseString(value string) (string, error) {
	return value, nil
}

// CastMust returns the value of the leaf element at the given path converted using the given parse function, an
// absent path yields an ElementNotFoundError.
func CastMust[T any](element *Element, parse ParseFunc[T], path ...string) (T, error) {
	var zero T

	leaf, err := TraverseOne(element, path...)
	if err != nil {
		return zero, err
	}

	parsed, err := parse(leaf.Text())
	if err != nil {
		return zero, fmt.Errorf("failed to parse element at path '%s': %w", strings.Join(path, "."), err)
	}

	return parsed, nil
}

// CastOptional is the same as CastMust but returns <nil> without an error when the path is absent. Conversion failures
// of a present leaf are still returned.
func CastOptional[T any](element *Element, parse ParseFunc[T], path ...string) (*T, error) {
	matched, err := traverse(element, path, true)
	if err != nil {
		return nil, err
	}

	if len(matched) == 0 {
		return nil, nil
	}

	if len(matched) > 1 {
		return nil, &UnexpectedXMLError{
			Message: fmt.Sprintf("expected a single element at path '%s'", strings.Join(path, ".")),
		}
	}

	parsed, err := parse(matched[0].Text())
	if err != nil {
		return nil, fmt.Errorf("failed to parse element at path '%s': %w", strings.Join(path, "."), err)
	}

	return &parsed, nil
}

// ChildTextMap returns a mapping of child element name to text content for the direct children of the given element,
// children which are not elements, are empty, or contain anything other than character data are structural errors.
func ChildTextMap(element *Element) (map[string]string, error) {
	pairs := make(map[string]string)

	for _, child := range element.Children {
		entry, ok := child.(*Element)
		if !ok {
			return nil, &UnexpectedXMLError{
				Message: fmt.Sprintf("expected element '%s' to contain element nodes", element.Name),
			}
		}

		if len(entry.Children) == 0 {
			return nil, &UnexpectedXMLError{Message: fmt.Sprintf("element '%s' should not be empty", entry.Name)}
		}

		text, ok := entry.Children[0].(Text)
		if !ok {
			return nil, &UnexpectedXMLError{
				Message: fmt.Sprintf("expected element '%s' to contain character data", entry.Name),
			}
		}

		pairs[entry.Name] = string(text)
	}

	return pairs, nil
}
