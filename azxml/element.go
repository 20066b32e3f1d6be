// Package azxml provides a generic XML element tree for decoding storage service response bodies, elements are
// navigated using fixed paths of child element names with typed conversion of the leaf content.
package azxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is a single node in a parsed document, either an *Element or character data represented as Text.
type Node interface {
	node()
}

// Element is a named element with its child nodes in document order.
//
// NOTE: Element attributes are discarded during parsing, the storage services carry all interesting values as child
// elements or character data.
type Element struct {
	Name     string
	Children []Node
}

func (e *Element) node() {}

// Text is a character data node.
type Text string

func (t Text) node() {}

// Elements returns the direct children of this element with the given name.
func (e *Element) Elements(name string) []*Element {
	var matched []*Element

	for _, child := range e.Children {
		element, ok := child.(*Element)
		if ok && element.Name == name {
			matched = append(matched, element)
		}
	}

	return matched
}

// Text returns the concatenated character data directly below this element, for a leaf element this is its value.
func (e *Element) Text() string {
	var builder strings.Builder

	for _, child := range e.Children {
		if text, ok := child.(Text); ok {
			builder.WriteString(string(text))
		}
	}

	return builder.String()
}

// Parse decodes the given document into an element tree rooted at the document element.
//
// NOTE: Character data which is entirely whitespace is discarded meaning indented documents parse into the same tree
// as their compact form.
func Parse(data []byte) (*Element, error) {
	var (
		decoder = xml.NewDecoder(bytes.NewReader(data))
		root    *Element
		stack   []*Element
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}

		switch token := token.(type) {
		case xml.StartElement:
			element := &Element{Name: token.Name.Local}

			if len(stack) == 0 {
				if root != nil {
					return nil, &UnexpectedXMLError{Message: "document contains multiple root elements"}
				}

				root = element
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, element)
			}

			stack = append(stack, element)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			appendText(stack, string(token))
		}
	}

	if root == nil {
		return nil, &UnexpectedXMLError{Message: "document contains no elements"}
	}

	return root, nil
}

// appendText adds the given character data to the open element merging it with any immediately preceding character
// data, the decoder may split text around entity references.
func appendText(stack []*Element, text string) {
	if len(stack) == 0 || strings.TrimSpace(text) == "" {
		return
	}

	parent := stack[len(stack)-1]

	if n := len(parent.Children); n != 0 {
		if existing, ok := parent.Children[n-1].(Text); ok {
			parent.Children[n-1] = existing + Text(text)
			return
		}
	}

	parent.Children = append(parent.Children, Text(text))
}
