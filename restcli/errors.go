package restcli

import (
	"errors"
	"fmt"

	"github.com/couchbase/azure-rest/format"
)

// SocketClosedInFlightError is returned if the client socket was closed during an active request. This is usually due
// to socket being closed by the remote host in the event of a fatal error.
type SocketClosedInFlightError struct {
	method   Method
	endpoint string
}

func (e *SocketClosedInFlightError) Error() string {
	return fmt.Sprintf("error executing '%s' request to '%s' socket closed in flight, check the logs for more details",
		e.method, e.endpoint)
}

// UnknownX509Error is returned when the dispatched REST request receives a generic (unhandled) x509 error.
type UnknownX509Error struct {
	inner error
}

func (e *UnknownX509Error) Unwrap() error {
	return e.inner
}

func (e *UnknownX509Error) Error() string {
	return e.inner.Error()
}

// UnexpectedEndOfBodyError is returned if the length of the request body does not match the expected length. This may
// happen in the event that the 'Content-Length' header value is incorrectly set.
type UnexpectedEndOfBodyError struct {
	method   Method
	endpoint Endpoint
	expected int64
	got      int
}

func (e *UnexpectedEndOfBodyError) Error() string {
	return fmt.Sprintf("unexpected EOF whilst reading response body for '%s' request to '%s', expected %s but got %s",
		e.method, e.endpoint, format.Bytes(uint64(e.expected)), format.Bytes(uint64(e.got)))
}

// UnexpectedStatusCodeError returned if a request was executed successfully, however, we received a response status
// code which was unexpected.
//
// NOTE: During development its possible to hit this error in the event that the expected status code is set incorrectly
// and the successful response does not return a body so is therefore something to watch out for.
type UnexpectedStatusCodeError struct {
	Status   int
	method   Method
	endpoint Endpoint
	Body     []byte
}

func (e *UnexpectedStatusCodeError) Error() string {
	msg := fmt.Sprintf("unexpected status code %d for '%s' request to '%s'", e.Status, e.method, e.endpoint)
	if len(e.Body) == 0 {
		msg += ", check the logs for more details"
	} else {
		msg += fmt.Sprintf(", %s", e.Body)
	}

	return msg
}

// AuthenticationError is returned if we received a 401 status code i.e. the given credentials are incorrect.
type AuthenticationError struct {
	method   Method
	endpoint Endpoint
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error executing '%s' request to '%s' check credentials", e.method, e.endpoint)
}

// AuthorizationError is returned if we receive a 403 status code, for the storage services this generally means the
// request signature was rejected, or the credentials lack a required permission.
type AuthorizationError struct {
	method   Method
	endpoint Endpoint
	code     string
}

func (e *AuthorizationError) Error() string {
	if e.code == "" {
		return fmt.Sprintf("permission error executing '%s' request to '%s'", e.method, e.endpoint)
	}

	return fmt.Sprintf("permission error executing '%s' request to '%s' service returned code '%s'", e.method,
		e.endpoint, e.code)
}

// ResourceNotFoundError is returned if we received a 404 status code i.e. the container/blob/table the request
// addressed does not exist.
type ResourceNotFoundError struct {
	method   Method
	endpoint Endpoint
	code     string
}

func (e *ResourceNotFoundError) Error() string {
	if e.code == "" {
		return fmt.Sprintf("received an unexpected 404 status executing '%s' request to '%s'", e.method, e.endpoint)
	}

	return fmt.Sprintf("received an unexpected 404 status executing '%s' request to '%s' service returned code '%s'",
		e.method, e.endpoint, e.code)
}

// IsResourceNotFound returns a boolean indicating whether the given error is a 'ResourceNotFoundError'.
func IsResourceNotFound(err error) bool {
	var notFound *ResourceNotFoundError
	return err != nil && errors.As(err, &notFound)
}

// ConflictError is returned if we received a 409 status code e.g. creating a container which already exists, or
// operating on a blob with an active lease.
type ConflictError struct {
	method   Method
	endpoint Endpoint
	code     string
}

func (e *ConflictError) Error() string {
	if e.code == "" {
		return fmt.Sprintf("received an unexpected 409 status executing '%s' request to '%s'", e.method, e.endpoint)
	}

	return fmt.Sprintf("received an unexpected 409 status executing '%s' request to '%s' service returned code '%s'",
		e.method, e.endpoint, e.code)
}

// IsConflict returns a boolean indicating whether the given error is a 'ConflictError'.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return err != nil && errors.As(err, &conflict)
}

// PreconditionFailedError is returned if we received a 412 status code, for example a lease id which does not match
// the active lease, or an unsatisfied 'If-Match' condition.
type PreconditionFailedError struct {
	method   Method
	endpoint Endpoint
	code     string
}

func (e *PreconditionFailedError) Error() string {
	if e.code == "" {
		return fmt.Sprintf("received an unexpected 412 status executing '%s' request to '%s'", e.method, e.endpoint)
	}

	return fmt.Sprintf("received an unexpected 412 status executing '%s' request to '%s' service returned code '%s'",
		e.method, e.endpoint, e.code)
}

// IsPreconditionFailed returns a boolean indicating whether the given error is a 'PreconditionFailedError'.
func IsPreconditionFailed(err error) bool {
	var precondition *PreconditionFailedError
	return err != nil && errors.As(err, &precondition)
}

// InternalServerError is returned if we received a 500 status code.
type InternalServerError struct {
	method   Method
	endpoint Endpoint
	Body     []byte
}

func (e *InternalServerError) Error() string {
	if e.Body != nil {
		return fmt.Sprintf("internal server error executing '%s' request to '%s': %s", e.method, e.endpoint, e.Body)
	}

	return fmt.Sprintf("internal server error executing '%s' request to '%s' check the logs for more details",
		e.method, e.endpoint)
}
