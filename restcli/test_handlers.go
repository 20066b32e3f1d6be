package restcli

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHandlers is a readbility wrapper around the endpoint handlers for a test storage service.
type TestHandlers map[string]http.HandlerFunc

// Add a new handler to the endpoint handlers, note that the method is required to ensure unique handlers for each
// endpoint.
func (e TestHandlers) Add(method, endpoint string, handler http.HandlerFunc) {
	e[fmt.Sprintf("%s:%s", method, endpoint)] = handler
}

// Handle utility function which handles the provided request returning a 404 when no handler was found.
func (e TestHandlers) Handle(writer http.ResponseWriter, request *http.Request) {
	handler, ok := e[fmt.Sprintf("%s:%s", request.Method, request.URL.Path)]
	if !ok {
		writer.WriteHeader(http.StatusNotFound)
		return
	}

	handler(writer, request)
}

// NewTestHandler creates the most basic type of handler which will respond with the provided status/body.
func NewTestHandler(t *testing.T, status int, body []byte) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(status)

		_, err := writer.Write(body)
		require.NoError(t, err)
	}
}

// NewTestHandlerWithHeaders creates a handler which responds with the given status after stamping the provided
// headers, this should be used to validate response header decoding.
func NewTestHandlerWithHeaders(t *testing.T, status int, headers map[string]string, body []byte) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		for key, value := range headers {
			writer.Header().Set(key, value)
		}

		writer.WriteHeader(status)

		_, err := writer.Write(body)
		require.NoError(t, err)
	}
}

// CapturedRequest is populated by the handler created via 'NewTestHandlerWithCapture' and records the interesting
// attributes of a dispatched request.
type CapturedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// NewTestHandlerWithCapture creates a handler which records the dispatched request into the provided capture before
// responding with the given status/headers/body. This should be used to validate that a request was built as
// expected.
func NewTestHandlerWithCapture(t *testing.T, status int, headers map[string]string, body []byte,
	capture *CapturedRequest,
) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		data, err := io.ReadAll(request.Body)
		require.NoError(t, err)

		capture.Method = request.Method
		capture.Path = request.URL.Path
		capture.RawQuery = request.URL.RawQuery
		capture.Header = request.Header.Clone()
		capture.Body = data

		for key, value := range headers {
			writer.Header().Set(key, value)
		}

		writer.WriteHeader(status)

		_, err = writer.Write(body)
		require.NoError(t, err)
	}
}

// NewTestHandlerWithEOF creates a handler which will cause an EOF error when attempting to read the body.
func NewTestHandlerWithEOF(t *testing.T) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Length", "1")

		writer.WriteHeader(http.StatusOK)

		_, err := writer.Write(make([]byte, 0))
		require.NoError(t, err)
	}
}

// NewTestHandlerWithHijack creates a handler which will hijack the connection an immediately close it; this is
// simulating a socket closed in flight error.
func NewTestHandlerWithHijack(t *testing.T) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		hijacker, ok := writer.(http.Hijacker)
		require.True(t, ok)

		conn, _, err := hijacker.Hijack()
		require.NoError(t, err)
		require.NoError(t, conn.Close())
	}
}
