package azstore

import (
	"net/http"
	"strings"

	"github.com/couchbase/azure-rest/azxml"
)

// Metadata is the set of user defined name/value pairs stored alongside a container or blob, names are
// case-insensitive and are normalized to lowercase when decoding.
type Metadata map[string]string

// SetMetadataHeaders emits one prefixed request header per metadata entry.
func SetMetadataHeaders(headers map[string]string, metadata Metadata) {
	for name, value := range metadata {
		headers[HeaderMetaPrefix+name] = value
	}
}

// MetadataFromHeaders collects the user metadata from the given response headers, returned names have the wire prefix
// stripped.
func MetadataFromHeaders(header http.Header) Metadata {
	metadata := make(Metadata)

	for name, values := range header {
		name = strings.ToLower(name)
		if len(values) == 0 || !strings.HasPrefix(name, HeaderMetaPrefix) {
			continue
		}

		metadata[strings.TrimPrefix(name, HeaderMetaPrefix)] = values[0]
	}

	return metadata
}

// MetadataFromElement decodes the user metadata below the given listing element, both an absent and an empty
// 'Metadata' node yield an empty set.
func MetadataFromElement(element *azxml.Element) (Metadata, error) {
	matched, err := azxml.Traverse(element, "Metadata")
	if err != nil {
		return nil, err
	}

	metadata := make(Metadata)

	for _, node := range matched {
		pairs, err := azxml.ChildTextMap(node)
		if err != nil {
			return nil, err
		}

		for name, value := range pairs {
			metadata[strings.ToLower(name)] = value
		}
	}

	return metadata, nil
}
