package restcli

import (
	"net/http"
	"time"

	"github.com/couchbase/azure-rest/aprov"
)

// Method is a readability wrapper around the supported REST methods, the 'http.Method*' constants may be assigned
// directly.
type Method string

// ContentType is a readability wrapper around the 'Content-Type' values dispatched by the library.
type ContentType string

const (
	// ContentTypeXML is used for requests whose bodies are XML documents.
	ContentTypeXML ContentType = "application/xml"

	// ContentTypeJSON is used for requests bound for the table service, which speaks OData JSON.
	ContentTypeJSON ContentType = "application/json"

	// ContentTypeOctetStream is the default content type for blob payload uploads.
	ContentTypeOctetStream ContentType = "application/octet-stream"
)

// Request encapsulates the parameters/options which are required when sending a REST request.
type Request struct {
	// Host is the 'scheme://authority' of the service this request is bound for e.g.
	// 'https://account.blob.core.windows.net'.
	Host string

	// Service indicates which storage service this request is bound for, it determines how the request is signed.
	Service aprov.Service

	// Endpoint is the path portion of the request URL, arguments must be escaped prior via 'Endpoint.Format'.
	Endpoint Endpoint

	Method             Method
	Body               []byte
	ContentType        ContentType
	ExpectedStatusCode int

	// QueryParameters will be postfixed to the request URL in the order they were added.
	QueryParameters *Values

	// Header contains additional headers stamped onto the request before dispatch, values here are set before the
	// computed headers i.e. 'Content-Type'/'User-Agent'/'Authorization' take precedence.
	Header map[string]string

	// Timeout is the client side timeout for this request, values larger than the clients own timeout take precedence,
	// -1 means no timeout.
	Timeout time.Duration
}

// Response encapsulates a REST response, the body is read fully into memory and the headers retained so that callers
// may decode the attributes the services return through them.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
