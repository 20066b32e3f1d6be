// Package azstore implements the account level client plus the vocabulary shared by the typed storage operations:
// wire header names with typed getters, the semantic enumerations reported by the services and the user metadata
// representation. The operations themselves live in the 'container', 'blob' and 'table' sub-packages.
package azstore

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/connstr"
	"github.com/couchbase/azure-rest/envvar"
	"github.com/couchbase/azure-rest/log"
	"github.com/couchbase/azure-rest/restcli"
)

// DefaultUserAgent is the user agent reported to the services when the caller doesn't supply one.
const DefaultUserAgent = "azure-rest"

// ErrMissingAccountKey is returned when the connection string carries no account key and no explicit authentication
// provider was supplied.
var ErrMissingAccountKey = errors.New("connection string does not contain an account key")

// Client is an account level client for the Azure storage services, it knows where each service lives and stamps the
// protocol headers common to every request before dispatch.
type Client struct {
	requester restcli.Requester
	account   string
	blobURL   string
	tableURL  string
}

// ClientOptions encapsulates the options for creating a new storage client.
type ClientOptions struct {
	// ConnectionString identifies and authenticates the storage account, see the 'connstr' package for the accepted
	// format.
	ConnectionString string

	// Provider overrides the authentication provider derived from the connection string, required when the connection
	// string carries no account key.
	Provider aprov.Provider

	// UserAgent is reported to the services with each request, defaults to 'DefaultUserAgent'.
	UserAgent string

	// TLSConfig is the TLS configuration used by the transport, a <nil> config means the defaults are used.
	TLSConfig *tls.Config

	// Logger is the passed Logger struct that implements the Log method for logger the user wants to use.
	Logger log.Logger

	// ReqResLogLevel is the level at which the dispatching and receiving of requests/responses is logged.
	ReqResLogLevel log.Level

	// RateLimit caps the rate at which requests are dispatched, a <nil> limiter means no limit.
	RateLimit *rate.Limiter
}

// NewClient creates a new storage client using the given options.
//
// NOTE: The client timeout, transport timeouts and rate limit may be overridden using the 'AZURE_REST_CLIENT_TIMEOUT',
// 'AZURE_REST_HTTP_TIMEOUTS' and 'AZURE_REST_RATE_LIMIT' environment variables.
func NewClient(options ClientOptions) (*Client, error) {
	clientTimeout, ok := envvar.GetDuration("AZURE_REST_CLIENT_TIMEOUT")
	if !ok {
		clientTimeout = restcli.DefaultClientTimeout
	} else {
		log.Infof("(Azure) Set HTTP client timeout to: %s", clientTimeout)
	}

	timeouts, err := envvar.GetHTTPTimeouts("AZURE_REST_HTTP_TIMEOUTS", newDefaultHTTPTimeouts())
	if err != nil {
		return nil, fmt.Errorf("failed to get HTTP timeouts from the environment: %w", err)
	}

	rateLimit := options.RateLimit

	if limit, ok := envvar.GetInt("AZURE_REST_RATE_LIMIT"); ok && limit > 0 {
		log.Infof("(Azure) Set request rate limit to: %d/s", limit)

		rateLimit = rate.NewLimiter(rate.Limit(limit), limit)
	}

	parsed, err := connstr.Parse(options.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	resolved, err := parsed.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve connection string: %w", err)
	}

	provider, err := resolveProvider(options, resolved)
	if err != nil {
		return nil, err
	}

	requester := restcli.NewClient(
		restcli.NewHTTPClient(clientTimeout, restcli.NewHTTPTransport(options.TLSConfig, timeouts)),
		provider,
		options.Logger,
		restcli.ClientOptions{ReqResLogLevel: options.ReqResLogLevel, RateLimit: rateLimit},
	)

	client := &Client{
		requester: requester,
		account:   resolved.AccountName,
		blobURL:   resolved.BlobEndpoint,
		tableURL:  resolved.TableEndpoint,
	}

	return client, nil
}

// NewEmulatorClient creates a client for the local storage emulator, equivalent to calling NewClient with the well
// known development storage connection string.
func NewEmulatorClient(options ClientOptions) (*Client, error) {
	options.ConnectionString = "UseDevelopmentStorage=true"
	return NewClient(options)
}

// NewClientWithRequester creates a client which dispatches requests using the given requester, mainly useful when
// testing the operation packages against a mock or local HTTP server.
func NewClientWithRequester(requester restcli.Requester, account, blobURL, tableURL string) *Client {
	return &Client{requester: requester, account: account, blobURL: blobURL, tableURL: tableURL}
}

// resolveProvider returns the authentication provider for the resolved connection string, an explicit provider takes
// precedence over the account key.
func resolveProvider(options ClientOptions, resolved *connstr.ResolvedConnectionString) (aprov.Provider, error) {
	if options.Provider != nil {
		return options.Provider, nil
	}

	if resolved.AccountKey == "" {
		return nil, ErrMissingAccountKey
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	provider, err := aprov.NewSharedKey(resolved.AccountName, resolved.AccountKey, userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key provider: %w", err)
	}

	return provider, nil
}

// Account returns the name of the storage account this client addresses.
func (c *Client) Account() string {
	return c.account
}

// ServiceURL returns the endpoint requests for the given service are dispatched to.
func (c *Client) ServiceURL(service aprov.Service) string {
	if service == aprov.ServiceTable {
		return c.tableURL
	}

	return c.blobURL
}

// Do dispatches the given request to the service it addresses, the protocol version and request date are stamped
// first so that the signature computed at dispatch covers them.
func (c *Client) Do(ctx context.Context, request *restcli.Request) (*restcli.Response, error) {
	if request.Host == "" {
		request.Host = c.ServiceURL(request.Service)
	}

	if request.Header == nil {
		request.Header = make(map[string]string)
	}

	request.Header[HeaderVersion] = APIVersion

	if _, ok := request.Header[HeaderDate]; !ok {
		request.Header[HeaderDate] = time.Now().UTC().Format(http.TimeFormat)
	}

	return c.requester.Execute(ctx, request)
}
