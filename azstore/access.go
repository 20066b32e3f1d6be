package azstore

import (
	"net/http"
)

// PublicAccess is the level of anonymous read access to a container and the blobs within it.
type PublicAccess string

const (
	// PublicAccessNone disables anonymous access, this is the service default and is never sent on the wire.
	PublicAccessNone PublicAccess = "none"

	// PublicAccessContainer allows anonymous reads of container metadata, the blob listing and blob data.
	PublicAccessContainer PublicAccess = "container"

	// PublicAccessBlob allows anonymous reads of blob data only.
	PublicAccessBlob PublicAccess = "blob"
)

// ParsePublicAccess converts the wire representation of a public access level.
func ParsePublicAccess(value string) (PublicAccess, error) {
	switch access := PublicAccess(value); access {
	case PublicAccessNone, PublicAccessContainer, PublicAccessBlob:
		return access, nil
	}

	return "", &ParseError{Kind: "public access", Value: value}
}

// PublicAccessFromHeader returns the access level reported by the given response headers, the services omit the
// header entirely for private containers.
func PublicAccessFromHeader(header http.Header) (PublicAccess, error) {
	value := header.Get(HeaderPublicAccess)
	if value == "" {
		return PublicAccessNone, nil
	}

	return ParsePublicAccess(value)
}

// SetPublicAccess emits the public access request header, mirroring the services no header is sent for
// 'PublicAccessNone'.
func SetPublicAccess(headers map[string]string, access PublicAccess) {
	if access == PublicAccessNone || access == "" {
		return
	}

	headers[HeaderPublicAccess] = string(access)
}
