package blob

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type releaseLeaseParams struct {
	containerName   string
	blobName        string
	leaseID         azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// ReleaseLease begins a request to release an active lease, the container name, blob name and lease id must be
// supplied before the request can be finalized.
func ReleaseLease(client *azstore.Client) ReleaseLeaseContainerStage {
	return ReleaseLeaseContainerStage{client: client}
}

// ReleaseLeaseContainerStage is a lease release request which still requires the container name.
type ReleaseLeaseContainerStage struct {
	client *azstore.Client
	params releaseLeaseParams
}

// WithContainerName sets the name of the container holding the blob.
func (s ReleaseLeaseContainerStage) WithContainerName(name string) ReleaseLeaseBlobStage {
	s.params.containerName = name
	return ReleaseLeaseBlobStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s ReleaseLeaseContainerStage) WithTimeout(timeout uint64) ReleaseLeaseContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s ReleaseLeaseContainerStage) WithClientRequestID(id string) ReleaseLeaseContainerStage {
	s.params.clientRequestID = id
	return s
}

// ReleaseLeaseBlobStage is a lease release request which still requires the blob name.
type ReleaseLeaseBlobStage struct {
	client *azstore.Client
	params releaseLeaseParams
}

// WithBlobName sets the name of the leased blob.
func (s ReleaseLeaseBlobStage) WithBlobName(name string) ReleaseLeaseIDStage {
	s.params.blobName = name
	return ReleaseLeaseIDStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s ReleaseLeaseBlobStage) WithTimeout(timeout uint64) ReleaseLeaseBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s ReleaseLeaseBlobStage) WithClientRequestID(id string) ReleaseLeaseBlobStage {
	s.params.clientRequestID = id
	return s
}

// ReleaseLeaseIDStage is a lease release request which still requires the lease id.
type ReleaseLeaseIDStage struct {
	client *azstore.Client
	params releaseLeaseParams
}

// WithLeaseID sets the id of the lease to release.
func (s ReleaseLeaseIDStage) WithLeaseID(leaseID azstore.LeaseID) ReleaseLeaseBuilder {
	s.params.leaseID = leaseID
	return ReleaseLeaseBuilder(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s ReleaseLeaseIDStage) WithTimeout(timeout uint64) ReleaseLeaseIDStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s ReleaseLeaseIDStage) WithClientRequestID(id string) ReleaseLeaseIDStage {
	s.params.clientRequestID = id
	return s
}

// ReleaseLeaseBuilder is a fully specified lease release request.
type ReleaseLeaseBuilder struct {
	client *azstore.Client
	params releaseLeaseParams
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b ReleaseLeaseBuilder) WithTimeout(timeout uint64) ReleaseLeaseBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b ReleaseLeaseBuilder) WithClientRequestID(id string) ReleaseLeaseBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, once released the blob may be leased again immediately.
func (b ReleaseLeaseBuilder) Finalize(ctx context.Context) (*ReleaseLeaseResponse, error) {
	values := restcli.NewValues().Add("comp", "lease")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	headers[azstore.HeaderLeaseAction] = "release"
	headers[azstore.HeaderLeaseID] = b.params.leaseID.String()
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodPut,
		Endpoint:           restcli.Endpoint("/%s/%s").Format(b.params.containerName, b.params.blobName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to release lease: %w", err)
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

	released := &ReleaseLeaseResponse{
		RequestInfo:  info,
		ETag:         eTag,
		LastModified: lastModified,
	}

	return released, nil
}

// ReleaseLeaseResponse is the decoded response to a lease release.
type ReleaseLeaseResponse struct {
	azstore.RequestInfo

	ETag         string
	LastModified time.Time
}
