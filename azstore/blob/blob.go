// Package blob implements the typed blob and blob lease operations of the blob service. Each operation is started
// with a function taking the account client and built up through a chain of stage types, only a fully specified
// request exposes 'Finalize'.
package blob

import (
	"net/http"
	"time"

	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/azxml"
)

// Blob represents a blob as reconstructed from a service response, either the property headers of a single blob
// request or a '<Blob>' listing element.
type Blob struct {
	Name string

	// Snapshot is the opaque timestamp identifying a snapshot, empty for the base blob. The value is passed back
	// verbatim as the 'snapshot' query parameter so it's never interpreted client side.
	Snapshot string

	Properties Properties
	Metadata   azstore.Metadata
}

// Properties are the system properties of a blob. The content fields mirror the standard HTTP headers stored with the
// blob, those which were never set decode to the empty string.
type Properties struct {
	LastModified    time.Time
	ETag            string
	ContentLength   int64
	ContentType     string
	ContentEncoding string
	ContentLanguage string
	CacheControl    string
	ContentMD5      string
	BlobType        azstore.BlobType
	LeaseStatus     azstore.LeaseStatus
	LeaseState      azstore.LeaseState
	LeaseDuration   *azstore.LeaseDuration
	ServerEncrypted bool
}

// FromHeaders reconstructs a blob from the property headers of a response, the name and snapshot are taken from the
// caller since the services don't echo them.
func FromHeaders(name, snapshot string, header http.Header) (*Blob, error) {
	lastModified, err := azstore.GetTimeHeader(header, azstore.HeaderLastModified)
	if err != nil {
		return nil, err
	}

	eTag, err := azstore.GetHeader(header, azstore.HeaderETag)
	if err != nil {
		return nil, err
	}

	contentLength, err := azstore.GetInt64Header(header, azstore.HeaderContentLength)
	if err != nil {
		return nil, err
	}

	contentType, err := azstore.GetHeader(header, azstore.HeaderContentType)
	if err != nil {
		return nil, err
	}

	blobType, err := azstore.GetTypedHeader(header, azstore.HeaderBlobType, azstore.ParseBlobType)
	if err != nil {
		return nil, err
	}

	leaseStatus, err := azstore.GetTypedHeader(header, azstore.HeaderLeaseStatus, azstore.ParseLeaseStatus)
	if err != nil {
		return nil, err
	}

	leaseState, err := azstore.GetTypedHeader(header, azstore.HeaderLeaseState, azstore.ParseLeaseState)
	if err != nil {
		return nil, err
	}

	leaseDuration, err := azstore.GetOptionalHeader(header, azstore.HeaderLeaseDuration, azstore.ParseLeaseDuration)
	if err != nil {
		return nil, err
	}

	serverEncrypted, err := azstore.GetBoolHeader(header, azstore.HeaderServerEncrypted)
	if err != nil {
		return nil, err
	}

	blob := &Blob{
		Name:     name,
		Snapshot: snapshot,
		Properties: Properties{
			LastModified:    lastModified,
			ETag:            eTag,
			ContentLength:   contentLength,
			ContentType:     contentType,
			ContentEncoding: header.Get(azstore.HeaderContentEncoding),
			ContentLanguage: header.Get(azstore.HeaderContentLanguage),
			CacheControl:    header.Get(azstore.HeaderCacheControl),
			ContentMD5:      header.Get(azstore.HeaderContentMD5),
			BlobType:        blobType,
			LeaseStatus:     leaseStatus,
			LeaseState:      leaseState,
			LeaseDuration:   leaseDuration,
			ServerEncrypted: serverEncrypted,
		},
		Metadata: azstore.MetadataFromHeaders(header),
	}

	return blob, nil
}

// FromElement reconstructs a blob from a '<Blob>' element of a listing response.
func FromElement(element *azxml.Element) (*Blob, error) {
	name, err := azxml.CastMust(element, azxml.ParseString, "Name")
	if err != nil {
		return nil, err
	}

	snapshot, err := optionalText(element, "Snapshot")
	if err != nil {
		return nil, err
	}

	lastModified, err := azxml.CastMust(element, azstore.ParseDate, "Properties", "Last-Modified")
	if err != nil {
		return nil, err
	}

	eTag, err := azxml.CastMust(element, azxml.ParseString, "Properties", "Etag")
	if err != nil {
		return nil, err
	}

	contentLength, err := azxml.CastMust(element, azstore.ParseInt64, "Properties", "Content-Length")
	if err != nil {
		return nil, err
	}

	contentType, err := azxml.CastMust(element, azxml.ParseString, "Properties", "Content-Type")
	if err != nil {
		return nil, err
	}

	contentEncoding, err := optionalText(element, "Properties", "Content-Encoding")
	if err != nil {
		return nil, err
	}

	contentLanguage, err := optionalText(element, "Properties", "Content-Language")
	if err != nil {
		return nil, err
	}

	cacheControl, err := optionalText(element, "Properties", "Cache-Control")
	if err != nil {
		return nil, err
	}

	contentMD5, err := optionalText(element, "Properties", "Content-MD5")
	if err != nil {
		return nil, err
	}

	blobType, err := azxml.CastMust(element, azstore.ParseBlobType, "Properties", "BlobType")
	if err != nil {
		return nil, err
	}

	leaseStatus, err := azxml.CastMust(element, azstore.ParseLeaseStatus, "Properties", "LeaseStatus")
	if err != nil {
		return nil, err
	}

	leaseState, err := azxml.CastMust(element, azstore.ParseLeaseState, "Properties", "LeaseState")
	if err != nil {
		return nil, err
	}

	leaseDuration, err := azxml.CastOptional(element, azstore.ParseLeaseDuration, "Properties", "LeaseDuration")
	if err != nil {
		return nil, err
	}

	serverEncrypted, err := azxml.CastMust(element, azstore.ParseBool, "Properties", "ServerEncrypted")
	if err != nil {
		return nil, err
	}

	metadata, err := azstore.MetadataFromElement(element)
	if err != nil {
		return nil, err
	}

	blob := &Blob{
		Name:     name,
		Snapshot: snapshot,
		Properties: Properties{
			LastModified:    lastModified,
			ETag:            eTag,
			ContentLength:   contentLength,
			ContentType:     contentType,
			ContentEncoding: contentEncoding,
			ContentLanguage: contentLanguage,
			CacheControl:    cacheControl,
			ContentMD5:      contentMD5,
			BlobType:        blobType,
			LeaseStatus:     leaseStatus,
			LeaseState:      leaseState,
			LeaseDuration:   leaseDuration,
			ServerEncrypted: serverEncrypted,
		},
		Metadata: metadata,
	}

	return blob, nil
}

// optionalText returns the text of the leaf at the given path, absent leaves yield the empty string. Listings render
// unset content properties as empty elements so both cases decode the same.
func optionalText(element *azxml.Element, path ...string) (string, error) {
	value, err := azxml.CastOptional(element, azxml.ParseString, path...)
	if err != nil || value == nil {
		return "", err
	}

	return *value, nil
}
