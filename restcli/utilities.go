package restcli

import (
	"bufio"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/couchbase/azure-rest/errutil"
	jsoniter "github.com/json-iterator/go"
)

// NewHTTPClient returns a new HTTP client with the given timeout/transport.
//
// NOTE: This is used to ensure that all uses of a HTTP client use the same configuration.
func NewHTTPClient(timeout time.Duration, transport http.RoundTripper) *http.Client {
	return &http.Client{Timeout: timeout, Transport: transport}
}

// ReadBody returns the entire response body returning an informative error in the case where the response body is less
// than the expected length.
func ReadBody(method Method, endpoint Endpoint, reader io.Reader, contentLength int64) ([]byte, error) {
	body, err := io.ReadAll(bufio.NewReader(reader))
	if err == nil {
		return body, nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, &UnexpectedEndOfBodyError{
			method:   method,
			endpoint: endpoint,
			expected: contentLength,
			got:      len(body),
		}
	}

	return nil, err
}

// HandleRequestError is a utility function which converts a failed REST request error (hard failure as returned by the
// standard library) into a more useful/user friendly error.
func HandleRequestError(req *http.Request, err error) error {
	// String comparisons aren't ideal for error handling, but this allows us to handle future x509 error types without
	// modification.
	if strings.HasPrefix(errutil.Unwrap(err).Error(), "x509") {
		return &UnknownX509Error{inner: err}
	}

	// If we receive an EOF error, wrap it with a useful error message containing the method/endpoint
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &SocketClosedInFlightError{method: Method(req.Method), endpoint: req.URL.Path}
	}

	return err
}

// HandleResponseError is a utility function which converts a failed REST request (soft failure i.e. the request itself
// was successful) into a more useful/user friendly error.
func HandleResponseError(method Method, endpoint Endpoint, statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return &AuthenticationError{method: method, endpoint: endpoint}
	case http.StatusForbidden:
		return &AuthorizationError{method: method, endpoint: endpoint, code: extractErrorCode(body)}
	case http.StatusNotFound:
		return &ResourceNotFoundError{method: method, endpoint: endpoint, code: extractErrorCode(body)}
	case http.StatusConflict:
		return &ConflictError{method: method, endpoint: endpoint, code: extractErrorCode(body)}
	case http.StatusPreconditionFailed:
		return &PreconditionFailedError{method: method, endpoint: endpoint, code: extractErrorCode(body)}
	case http.StatusInternalServerError:
		return &InternalServerError{method: method, endpoint: endpoint, Body: body}
	}

	return &UnexpectedStatusCodeError{Status: statusCode, method: method, endpoint: endpoint, Body: body}
}

// extractErrorCode pulls the storage error code out of a response body, the blob service returns XML error documents,
// the table service OData JSON.
func extractErrorCode(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	type overlay struct {
		Code string `xml:"Code"`
	}

	var decoded overlay

	// Purposely ignored, some responses have no usable body, or carry an OData payload which is handled below
	_ = xml.Unmarshal(body, &decoded)

	if decoded.Code != "" {
		return decoded.Code
	}

	return jsoniter.Get(body, "odata.error", "code").ToString()
}
