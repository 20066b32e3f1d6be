package azstore

import (
	"net/http"
	"strconv"
	"time"

	"github.com/couchbase/azure-rest/azxml"
)

// APIVersion is the storage service REST protocol version dispatched with every request.
const APIVersion = "2017-04-17"

// Wire names for the request/response headers used by the storage services, standard HTTP headers are only listed
// where a typed decode reads them.
const (
	HeaderVersion         = "x-ms-version"
	HeaderDate            = "x-ms-date"
	HeaderClientRequestID = "x-ms-client-request-id"
	HeaderRequestID       = "x-ms-request-id"

	HeaderLeaseAction      = "x-ms-lease-action"
	HeaderLeaseID          = "x-ms-lease-id"
	HeaderProposedLeaseID  = "x-ms-proposed-lease-id"
	HeaderLeaseStatus      = "x-ms-lease-status"
	HeaderLeaseState       = "x-ms-lease-state"
	HeaderLeaseDuration    = "x-ms-lease-duration"
	HeaderLeaseTime        = "x-ms-lease-time"
	HeaderLeaseBreakPeriod = "x-ms-lease-break-period"

	HeaderPublicAccess          = "x-ms-blob-public-access"
	HeaderHasImmutabilityPolicy = "x-ms-has-immutability-policy"
	HeaderHasLegalHold          = "x-ms-has-legal-hold"
	HeaderMetaPrefix            = "x-ms-meta-"

	HeaderBlobType               = "x-ms-blob-type"
	HeaderServerEncrypted        = "x-ms-server-encrypted"
	HeaderRequestServerEncrypted = "x-ms-request-server-encrypted"
	HeaderDeleteSnapshots        = "x-ms-delete-snapshots"

	HeaderContinuationNextPartitionKey = "x-ms-continuation-NextPartitionKey"
	HeaderContinuationNextRowKey       = "x-ms-continuation-NextRowKey"

	HeaderLastModified    = "Last-Modified"
	HeaderETag            = "ETag"
	HeaderContentLength   = "Content-Length"
	HeaderContentType     = "Content-Type"
	HeaderContentMD5      = "Content-MD5"
	HeaderContentEncoding = "Content-Encoding"
	HeaderContentLanguage = "Content-Language"
	HeaderCacheControl    = "Cache-Control"
	HeaderResponseDate    = "Date"
)

// GetHeader returns the value of the given header, distinguishing an absent header from a present but empty one.
func GetHeader(header http.Header, name string) (string, error) {
	values, ok := header[http.CanonicalHeaderKey(name)]
	if !ok || len(values) == 0 {
		return "", &MissingHeaderError{Header: name}
	}

	return values[0], nil
}

// GetTimeHeader returns the value of the given header parsed as an RFC 1123 date.
func GetTimeHeader(header http.Header, name string) (time.Time, error) {
	value, err := GetHeader(header, name)
	if err != nil {
		return time.Time{}, err
	}

	return ParseDate(value)
}

// GetBoolHeader returns the value of the given header parsed as a strict boolean.
func GetBoolHeader(header http.Header, name string) (bool, error) {
	value, err := GetHeader(header, name)
	if err != nil {
		return false, err
	}

	return ParseBool(value)
}

// GetInt64Header returns the value of the given header parsed as a base ten integer.
func GetInt64Header(header http.Header, name string) (int64, error) {
	value, err := GetHeader(header, name)
	if err != nil {
		return 0, err
	}

	return ParseInt64(value)
}

// GetTypedHeader returns the value of the given header converted using the given parse function, the header side
// counterpart to 'azxml.CastMust'.
func GetTypedHeader[T any](header http.Header, name string, parse azxml.ParseFunc[T]) (T, error) {
	value, err := GetHeader(header, name)
	if err != nil {
		var zero T
		return zero, err
	}

	return parse(value)
}

// GetOptionalHeader converts the given header when present, an absent header yields <nil> rather than an error, the
// header side counterpart to 'azxml.CastOptional'.
func GetOptionalHeader[T any](header http.Header, name string, parse azxml.ParseFunc[T]) (*T, error) {
	value, err := GetHeader(header, name)
	if err != nil {
		if IsMissingHeader(err) {
			err = nil
		}

		return nil, err
	}

	parsed, err := parse(value)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}

// RequestInfo is the service assigned request id and response time reported with every storage response, the id is
// what support asks for when investigating a failed request.
type RequestInfo struct {
	RequestID string
	Date      time.Time
}

// RequestInfoFromHeaders decodes the request id and date headers, both are mandatory.
func RequestInfoFromHeaders(header http.Header) (RequestInfo, error) {
	requestID, err := GetHeader(header, HeaderRequestID)
	if err != nil {
		return RequestInfo{}, err
	}

	date, err := GetTimeHeader(header, HeaderResponseDate)
	if err != nil {
		return RequestInfo{}, err
	}

	return RequestInfo{RequestID: requestID, Date: date}, nil
}

// ParseDate converts the wire representation of a date into a 'time.Time' in UTC, the services render dates in the
// RFC 1123 format e.g. 'Mon, 24 Aug 2026 10:00:00 GMT'.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC1123, value)
	if err != nil {
		return time.Time{}, &ParseError{Kind: "date", Value: value, inner: err}
	}

	return parsed.UTC(), nil
}

// ParseISODate converts the wire representation of an ISO 8601 date into a 'time.Time' in UTC, the table service
// renders entity timestamps in this format e.g. '2026-08-24T10:00:00.0000000Z'.
func ParseISODate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, &ParseError{Kind: "date", Value: value, inner: err}
	}

	return parsed.UTC(), nil
}

// ParseBool converts the wire representation of a boolean, only the exact values 'true' and 'false' are accepted.
func ParseBool(value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	return false, &ParseError{Kind: "bool", Value: value}
}

// ParseInt64 converts the wire representation of a base ten integer.
func ParseInt64(value string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &ParseError{Kind: "int", Value: value, inner: err}
	}

	return parsed, nil
}
