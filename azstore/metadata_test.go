package azstore

import (
	"net/http"
	"testing"

	"github.com/couchbase/azure-rest/azxml"
	"github.com/stretchr/testify/require"
)

func TestSetMetadataHeaders(t *testing.T) {
	headers := make(map[string]string)

	SetMetadataHeaders(headers, Metadata{"owner": "bbq", "env": "dev"})
	require.Equal(t, map[string]string{"x-ms-meta-owner": "bbq", "x-ms-meta-env": "dev"}, headers)
}

func TestSetMetadataHeadersEmpty(t *testing.T) {
	headers := make(map[string]string)

	SetMetadataHeaders(headers, nil)
	require.Empty(t, headers)
}

func TestMetadataFromHeaders(t *testing.T) {
	header := http.Header{}
	header.Set("x-ms-meta-Owner", "bbq")
	header.Set("x-ms-meta-env", "dev")
	header.Set(HeaderRequestID, "5ea2f589-a985-484c-9355-bba2f4e3f801")
	header.Set(HeaderContentType, "application/xml")

	require.Equal(t, Metadata{"owner": "bbq", "env": "dev"}, MetadataFromHeaders(header))
}

func TestMetadataFromHeadersEmpty(t *testing.T) {
	require.Equal(t, Metadata{}, MetadataFromHeaders(http.Header{}))
}

func TestMetadataFromElement(t *testing.T) {
	type test struct {
		name     string
		input    string
		expected Metadata
		invalid  bool
	}

	tests := []*test{
		{
			name:     "Present",
			input:    "<Container><Metadata><Owner>bbq</Owner><env>dev</env></Metadata></Container>",
			expected: Metadata{"owner": "bbq", "env": "dev"},
		},
		{
			name:     "AbsentNode",
			input:    "<Container><Name>beerfest</Name></Container>",
			expected: Metadata{},
		},
		{
			name:     "EmptyNode",
			input:    "<Container><Metadata></Metadata></Container>",
			expected: Metadata{},
		},
		{
			name:    "EmptyEntry",
			input:   "<Container><Metadata><Owner/></Metadata></Container>",
			invalid: true,
		},
		{
			name:    "NestedEntry",
			input:   "<Container><Metadata><Owner><Name>bbq</Name></Owner></Metadata></Container>",
			invalid: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			element, err := azxml.Parse([]byte(test.input))
			require.NoError(t, err)

			actual, err := MetadataFromElement(element)
			if test.invalid {
				var unexpectedError *azxml.UnexpectedXMLError

				require.ErrorAs(t, err, &unexpectedError)

				return
			}

			require.NoError(t, err)
			require.Equal(t, test.expected, actual)
		})
	}
}
