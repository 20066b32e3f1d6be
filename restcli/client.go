// Package restcli provides a REST client for dispatching requests to the Azure storage services, it handles request
// signing, logging, rate limiting and error handling leaving the semantics of each operation to the packages above it.
package restcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/errutil"
	"github.com/couchbase/azure-rest/log"
	"golang.org/x/time/rate"
)

// Requester is the interface implemented by types which can dispatch REST requests to the storage services, it's
// satisfied by 'Client' and may be mocked when testing the packages built on top of it.
//
//go:generate mockgen -source=client.go -destination=mock_requester.go -package=restcli
type Requester interface {
	Execute(ctx context.Context, request *Request) (*Response, error)
}

// Client is a generalized client for sending and receiving http requests that wraps various functionality such as
// error handling, logging as well as request signing.
type Client struct {
	client         *http.Client
	reqResLogLevel log.Level
	logger         log.WrappedLogger
	authProvider   aprov.Provider
	rateLimit      *rate.Limiter
}

var _ Requester = (*Client)(nil)

// ClientOptions wraps all optional parameters for client creation.
type ClientOptions struct {
	// ReqResLogLevel is the level at which the dispatching and receiving of requests/responses is logged.
	// Default is TRACE.
	ReqResLogLevel log.Level

	// RateLimit caps the rate at which requests are dispatched, a <nil> limiter means no limit.
	RateLimit *rate.Limiter
}

// NewClient creates a new generic REST client.
//
// Parameters:
//   - client: client is the base http client that should be used to send/receive requests.
//   - authProvider: authProvider is the authentication provider object that signs each request before it is
//     dispatched.
//   - logger: logger is the passed Logger struct that implements the Log method for logger the user wants to use.
//   - options: options is an object that contains optional parameters for the client.
func NewClient(client *http.Client, authProvider aprov.Provider, logger log.Logger, options ClientOptions) *Client {
	return &Client{
		client:         client,
		reqResLogLevel: options.ReqResLogLevel,
		logger:         log.NewWrappedLogger(logger),
		authProvider:   authProvider,
		rateLimit:      options.RateLimit,
	}
}

// GetBaseHTTPClient returns the http.Client that the client object uses. It only returns a read only copy of the
// client, not a pointer to the actual client.
func (c *Client) GetBaseHTTPClient() http.Client {
	return *c.client
}

// Execute the given request to completion, using the provided context, reading the entire response body whilst
// validating the response status code.
func (c *Client) Execute(ctx context.Context, request *Request) (*Response, error) {
	resp, err := c.do(ctx, request) //nolint:bodyclose
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	defer c.CleanupResp(resp)

	response := &Response{StatusCode: resp.StatusCode, Header: resp.Header}

	response.Body, err = ReadBody(request.Method, request.Endpoint, resp.Body, resp.ContentLength)
	if err != nil {
		return response, fmt.Errorf("failed to read response body: %w", err)
	}

	if response.StatusCode == request.ExpectedStatusCode {
		return response, nil
	}

	return response, HandleResponseError(request.Method, request.Endpoint, response.StatusCode, response.Body)
}

// do is a convenience which prepares then performs the provided request.
func (c *Client) do(ctx context.Context, request *Request) (*http.Response, error) {
	prep, err := c.prepare(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare request: %w", err)
	}

	resp, err := c.perform(ctx, prep, c.reqResLogLevel, request.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	return resp, nil
}

// prepare converts the request into a raw HTTP request which can be dispatched to the storage service.
func (c *Client) prepare(ctx context.Context, request *Request) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, string(request.Method), request.Host+string(request.Endpoint),
		bytes.NewReader(request.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// If we received one or more non-nil query parameters ensure that they will be postfixed to the request URL.
	if !request.QueryParameters.Empty() {
		req.URL.RawQuery = request.QueryParameters.Encode()
	}

	// Using 'Set' overwrites an existing values set in the header, set these values first so that the settings below
	// take precedence.
	for key, value := range request.Header {
		req.Header.Set(key, value)
	}

	// Set the content type for the request body. Note that we don't default to a value, an absent header signs the
	// same as an empty one.
	if request.ContentType != "" {
		req.Header.Set("Content-Type", string(request.ContentType))
	}

	// Set the 'User-Agent' so that we can trace how these requests are handled by the service
	req.Header.Set("User-Agent", c.authProvider.GetUserAgent())

	// Shared key signatures cover the headers, signing must take place after they have all been set
	err = c.authProvider.SignRequest(request.Service, req)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	return req, nil
}

// perform synchronously executes the provided request returning the response and any error that occurred during the
// process.
func (c *Client) perform(ctx context.Context, req *http.Request, level log.Level,
	timeout time.Duration,
) (*http.Response, error) {
	if c.rateLimit != nil {
		err := c.rateLimit.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to wait for rate limit: %w", err)
		}
	}

	c.logger.Log(level, "(REST) (%s) Dispatching request to '%s'", req.Method, log.MaskURL(req.URL.String()))

	client := c.client

	// We only use the custom timeout if it is bigger than the client one. This is so that it can be overridden via
	// environmental variables.
	if timeout == -1 || timeout > client.Timeout {
		client = NewHTTPClient(max(0, timeout), client.Transport)
	}

	resp, err := client.Do(req)
	if err == nil {
		c.logger.Log(level, "(REST) (%s) (%d) Received response from '%s'", req.Method, resp.StatusCode,
			log.MaskURL(req.URL.String()))

		return resp, nil
	}

	c.logger.Errorf("(REST) (%s) Failed to perform request to '%s': %s", req.Method, log.MaskURL(req.URL.String()), err)

	return nil, HandleRequestError(req, err)
}

// CleanupResp drains the response body and ensures it's closed.
func (c *Client) CleanupResp(resp *http.Response) {
	if resp == nil {
		return
	}

	defer resp.Body.Close()

	_, err := io.Copy(io.Discard, resp.Body)
	if err == nil ||
		errors.Is(err, http.ErrBodyReadAfterClose) ||
		errutil.Contains(err, "http: read on closed response body") {
		return
	}

	c.logger.Warnf("(REST) Failed to drain response body due to unexpected error: %s", err)
}
