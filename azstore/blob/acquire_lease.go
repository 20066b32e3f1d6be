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

type acquireLeaseParams struct {
	containerName   string
	blobName        string
	duration        int
	proposedLeaseID *azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// AcquireLease begins a request to acquire a lease on a blob, the container name, blob name and lease duration must
// be supplied before the request can be finalized.
func AcquireLease(client *azstore.Client) AcquireLeaseContainerStage {
	return AcquireLeaseContainerStage{client: client}
}

// AcquireLeaseContainerStage is a lease acquisition request which still requires the container name.
type AcquireLeaseContainerStage struct {
	client *azstore.Client
	params acquireLeaseParams
}

// WithContainerName sets the name of the container holding the blob.
func (s AcquireLeaseContainerStage) WithContainerName(name string) AcquireLeaseBlobStage {
	s.params.containerName = name
	return AcquireLeaseBlobStage(s)
}

// WithProposedLeaseID sets the lease id to assign rather than a service generated one.
func (s AcquireLeaseContainerStage) WithProposedLeaseID(leaseID azstore.LeaseID) AcquireLeaseContainerStage {
	s.params.proposedLeaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s AcquireLeaseContainerStage) WithTimeout(timeout uint64) AcquireLeaseContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s AcquireLeaseContainerStage) WithClientRequestID(id string) AcquireLeaseContainerStage {
	s.params.clientRequestID = id
	return s
}

// AcquireLeaseBlobStage is a lease acquisition request which still requires the blob name.
type AcquireLeaseBlobStage struct {
	client *azstore.Client
	params acquireLeaseParams
}

// WithBlobName sets the name of the blob to lease.
func (s AcquireLeaseBlobStage) WithBlobName(name string) AcquireLeaseDurationStage {
	s.params.blobName = name
	return AcquireLeaseDurationStage(s)
}

// WithProposedLeaseID sets the lease id to assign rather than a service generated one.
func (s AcquireLeaseBlobStage) WithProposedLeaseID(leaseID azstore.LeaseID) AcquireLeaseBlobStage {
	s.params.proposedLeaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s AcquireLeaseBlobStage) WithTimeout(timeout uint64) AcquireLeaseBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s AcquireLeaseBlobStage) WithClientRequestID(id string) AcquireLeaseBlobStage {
	s.params.clientRequestID = id
	return s
}

// AcquireLeaseDurationStage is a lease acquisition request which still requires the lease duration.
type AcquireLeaseDurationStage struct {
	client *azstore.Client
	params acquireLeaseParams
}

// WithLeaseDuration sets the duration of the lease in seconds, -1 requests an infinite lease and fixed durations must
// be between 15 and 60 seconds. The range is validated by the service.
func (s AcquireLeaseDurationStage) WithLeaseDuration(seconds int) AcquireLeaseBuilder {
	s.params.duration = seconds
	return AcquireLeaseBuilder(s)
}

// WithProposedLeaseID sets the lease id to assign rather than a service generated one.
func (s AcquireLeaseDurationStage) WithProposedLeaseID(leaseID azstore.LeaseID) AcquireLeaseDurationStage {
	s.params.proposedLeaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s AcquireLeaseDurationStage) WithTimeout(timeout uint64) AcquireLeaseDurationStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s AcquireLeaseDurationStage) WithClientRequestID(id string) AcquireLeaseDurationStage {
	s.params.clientRequestID = id
	return s
}

// AcquireLeaseBuilder is a fully specified lease acquisition request.
type AcquireLeaseBuilder struct {
	client *azstore.Client
	params acquireLeaseParams
}

// WithProposedLeaseID sets the lease id to assign rather than a service generated one.
func (b AcquireLeaseBuilder) WithProposedLeaseID(leaseID azstore.LeaseID) AcquireLeaseBuilder {
	b.params.proposedLeaseID = &leaseID
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b AcquireLeaseBuilder) WithTimeout(timeout uint64) AcquireLeaseBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b AcquireLeaseBuilder) WithClientRequestID(id string) AcquireLeaseBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request.
func (b AcquireLeaseBuilder) Finalize(ctx context.Context) (*AcquireLeaseResponse, error) {
	values := restcli.NewValues().Add("comp", "lease")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	headers[azstore.HeaderLeaseAction] = "acquire"
	headers[azstore.HeaderLeaseDuration] = strconv.Itoa(b.params.duration)
	azstore.SetProposedLeaseID(headers, b.params.proposedLeaseID)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodPut,
		Endpoint:           restcli.Endpoint("/%s/%s").Format(b.params.containerName, b.params.blobName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusCreated,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lease: %w", err)
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

	leaseID, err := azstore.GetTypedHeader(response.Header, azstore.HeaderLeaseID, azstore.ParseLeaseID)
	if err != nil {
		return nil, err
	}

	acquired := &AcquireLeaseResponse{
		RequestInfo:  info,
		ETag:         eTag,
		LastModified: lastModified,
		LeaseID:      leaseID,
	}

	return acquired, nil
}

// AcquireLeaseResponse is the decoded response to a lease acquisition, the lease id conditions every write to the
// blob until the lease is released or broken.
type AcquireLeaseResponse struct {
	azstore.RequestInfo

	ETag         string
	LastModified time.Time
	LeaseID      azstore.LeaseID
}
