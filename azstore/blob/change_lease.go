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

type changeLeaseParams struct {
	containerName   string
	blobName        string
	leaseID         azstore.LeaseID
	proposedLeaseID azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// ChangeLease begins a request to change the id of an active lease, the container name, blob name, current lease id
// and proposed lease id must all be supplied before the request can be finalized.
func ChangeLease(client *azstore.Client) ChangeLeaseContainerStage {
	return ChangeLeaseContainerStage{client: client}
}

// ChangeLeaseContainerStage is a lease change request which still requires the container name.
type ChangeLeaseContainerStage struct {
	client *azstore.Client
	params changeLeaseParams
}

// WithContainerName sets the name of the container holding the blob.
func (s ChangeLeaseContainerStage) WithContainerName(name string) ChangeLeaseBlobStage {
	s.params.containerName = name
	return ChangeLeaseBlobStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s ChangeLeaseContainerStage) WithTimeout(timeout uint64) ChangeLeaseContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s ChangeLeaseContainerStage) WithClientRequestID(id string) ChangeLeaseContainerStage {
	s.params.clientRequestID = id
	return s
}

// ChangeLeaseBlobStage is a lease change request which still requires the blob name.
type ChangeLeaseBlobStage struct {
	client *azstore.Client
	params changeLeaseParams
}

// WithBlobName sets the name of the leased blob.
func (s ChangeLeaseBlobStage) WithBlobName(name string) ChangeLeaseIDStage {
	s.params.blobName = name
	return ChangeLeaseIDStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s ChangeLeaseBlobStage) WithTimeout(timeout uint64) ChangeLeaseBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s ChangeLeaseBlobStage) WithClientRequestID(id string) ChangeLeaseBlobStage {
	s.params.clientRequestID = id
	return s
}

// ChangeLeaseIDStage is a lease change request which still requires the current lease id.
type ChangeLeaseIDStage struct {
	client *azstore.Client
	params changeLeaseParams
}

// WithLeaseID sets the id of the active lease.
func (s ChangeLeaseIDStage) WithLeaseID(leaseID azstore.LeaseID) ChangeLeaseProposedStage {
	s.params.leaseID = leaseID
	return ChangeLeaseProposedStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s ChangeLeaseIDStage) WithTimeout(timeout uint64) ChangeLeaseIDStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s ChangeLeaseIDStage) WithClientRequestID(id string) ChangeLeaseIDStage {
	s.params.clientRequestID = id
	return s
}

// ChangeLeaseProposedStage is a lease change request which still requires the proposed lease id.
type ChangeLeaseProposedStage struct {
	client *azstore.Client
	params changeLeaseParams
}

// WithProposedLeaseID sets the lease id to change to.
func (s ChangeLeaseProposedStage) WithProposedLeaseID(leaseID azstore.LeaseID) ChangeLeaseBuilder {
	s.params.proposedLeaseID = leaseID
	return ChangeLeaseBuilder(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s ChangeLeaseProposedStage) WithTimeout(timeout uint64) ChangeLeaseProposedStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s ChangeLeaseProposedStage) WithClientRequestID(id string) ChangeLeaseProposedStage {
	s.params.clientRequestID = id
	return s
}

// ChangeLeaseBuilder is a fully specified lease change request.
type ChangeLeaseBuilder struct {
	client *azstore.Client
	params changeLeaseParams
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b ChangeLeaseBuilder) WithTimeout(timeout uint64) ChangeLeaseBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b ChangeLeaseBuilder) WithClientRequestID(id string) ChangeLeaseBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, on success the returned lease id is the proposed one and the previous id no longer
// conditions writes.
func (b ChangeLeaseBuilder) Finalize(ctx context.Context) (*ChangeLeaseResponse, error) {
	values := restcli.NewValues().Add("comp", "lease")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	headers[azstore.HeaderLeaseAction] = "change"
	headers[azstore.HeaderLeaseID] = b.params.leaseID.String()
	headers[azstore.HeaderProposedLeaseID] = b.params.proposedLeaseID.String()
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
		return nil, fmt.Errorf("failed to change lease: %w", err)
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

	changed := &ChangeLeaseResponse{
		RequestInfo:  info,
		ETag:         eTag,
		LastModified: lastModified,
		LeaseID:      leaseID,
	}

	return changed, nil
}

// ChangeLeaseResponse is the decoded response to a lease change.
type ChangeLeaseResponse struct {
	azstore.RequestInfo

	ETag         string
	LastModified time.Time
	LeaseID      azstore.LeaseID
}
