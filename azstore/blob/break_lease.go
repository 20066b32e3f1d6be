package blob

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type breakLeaseParams struct {
	containerName   string
	blobName        string
	breakPeriod     *int
	timeout         uint64
	clientRequestID string
}

// BreakLease begins a request to break the active lease on a blob without knowing its id, the container and blob
// names must be supplied before the request can be finalized.
func BreakLease(client *azstore.Client) BreakLeaseContainerStage {
	return BreakLeaseContainerStage{client: client}
}

// BreakLeaseContainerStage is a lease break request which still requires the container name.
type BreakLeaseContainerStage struct {
	client *azstore.Client
	params breakLeaseParams
}

// WithContainerName sets the name of the container holding the blob.
func (s BreakLeaseContainerStage) WithContainerName(name string) BreakLeaseBlobStage {
	s.params.containerName = name
	return BreakLeaseBlobStage(s)
}

// WithBreakPeriod sets how long, in seconds, the lease keeps conditioning writes before it's free to reacquire, zero
// breaks it immediately. Without a period the remaining lease time is honored.
func (s BreakLeaseContainerStage) WithBreakPeriod(seconds int) BreakLeaseContainerStage {
	s.params.breakPeriod = &seconds
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s BreakLeaseContainerStage) WithTimeout(timeout uint64) BreakLeaseContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s BreakLeaseContainerStage) WithClientRequestID(id string) BreakLeaseContainerStage {
	s.params.clientRequestID = id
	return s
}

// BreakLeaseBlobStage is a lease break request which still requires the blob name.
type BreakLeaseBlobStage struct {
	client *azstore.Client
	params breakLeaseParams
}

// WithBlobName sets the name of the leased blob.
func (s BreakLeaseBlobStage) WithBlobName(name string) BreakLeaseBuilder {
	s.params.blobName = name
	return BreakLeaseBuilder(s)
}

// WithBreakPeriod sets how long, in seconds, the lease keeps conditioning writes before it's free to reacquire, zero
// breaks it immediately. Without a period the remaining lease time is honored.
func (s BreakLeaseBlobStage) WithBreakPeriod(seconds int) BreakLeaseBlobStage {
	s.params.breakPeriod = &seconds
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s BreakLeaseBlobStage) WithTimeout(timeout uint64) BreakLeaseBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s BreakLeaseBlobStage) WithClientRequestID(id string) BreakLeaseBlobStage {
	s.params.clientRequestID = id
	return s
}

// BreakLeaseBuilder is a fully specified lease break request.
type BreakLeaseBuilder struct {
	client *azstore.Client
	params breakLeaseParams
}

// WithBreakPeriod sets how long, in seconds, the lease keeps conditioning writes before it's free to reacquire, zero
// breaks it immediately. Without a period the remaining lease time is honored.
func (b BreakLeaseBuilder) WithBreakPeriod(seconds int) BreakLeaseBuilder {
	b.params.breakPeriod = &seconds
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b BreakLeaseBuilder) WithTimeout(timeout uint64) BreakLeaseBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b BreakLeaseBuilder) WithClientRequestID(id string) BreakLeaseBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, a broken lease can't be renewed and the blob can't be leased again until the
// returned lease time has elapsed.
func (b BreakLeaseBuilder) Finalize(ctx context.Context) (*BreakLeaseResponse, error) {
	values := restcli.NewValues().Add("comp", "lease")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	headers[azstore.HeaderLeaseAction] = "break"

	if b.params.breakPeriod != nil {
		headers[azstore.HeaderLeaseBreakPeriod] = strconv.Itoa(*b.params.breakPeriod)
	}

	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodPut,
		Endpoint:           restcli.Endpoint("/%s/%s").Format(b.params.containerName, b.params.blobName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusAccepted,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to break lease: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	eTag, err := azstore.GetHeader(response.Header, azstore.HeaderETag)
	if err != nil {
		return nil, err
	}

	lastModified, err := azstore.GetTimeHeader(response.Header, azstore.HeaderLastModified)
	if err != nil {
		return nil, err
	}

	seconds, err := azstore.GetInt64Header(response.Header, azstore.HeaderLeaseTime)
	if err != nil {
		return nil, err
	}

	broken := &BreakLeaseResponse{
		RequestInfo:  info,
		ETag:         eTag,
		LastModified: lastModified,
		LeaseTime:    time.Duration(seconds) * time.Second,
	}

	return broken, nil
}

// BreakLeaseResponse is the decoded response to a lease break, the lease time is how long the broken lease keeps
// conditioning writes.
type BreakLeaseResponse struct {
	azstore.RequestInfo

	ETag         string
	LastModified time.Time
	LeaseTime    time.Duration
}
