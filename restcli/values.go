package restcli

import (
	"net/url"
	"strings"
)

// Values is an ordered collection of query parameters. Unlike 'url.Values' parameters are encoded in the order they
// were added, the storage services document the resource identifying parameters e.g. 'restype'/'comp' ahead of any
// operation modifiers.
type Values struct {
	pairs []pair
}

type pair struct {
	key, value string
}

// NewValues creates an empty ordered query parameter collection.
func NewValues() *Values {
	return &Values{}
}

// Add appends the given parameter preserving insertion order, the collection is returned to allow chaining.
func (v *Values) Add(key, value string) *Values {
	v.pairs = append(v.pairs, pair{key: key, value: value})
	return v
}

// Empty returns a boolean indicating whether any parameters have been added.
func (v *Values) Empty() bool {
	return v == nil || len(v.pairs) == 0
}

// Encode returns the parameters in 'URL encoded' form in the order they were added.
func (v *Values) Encode() string {
	if v.Empty() {
		return ""
	}

	var builder strings.Builder

	for index, pair := range v.pairs {
		if index != 0 {
			builder.WriteString("&")
		}

		builder.WriteString(url.QueryEscape(pair.key))
		builder.WriteString("=")
		builder.WriteString(url.QueryEscape(pair.value))
	}

	return builder.String()
}
