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

type renewLeaseParams struct {
	containerName   string
	blobName        string
	leaseID         azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// RenewLease begins a request to renew an active or expired lease, the container name, blob name and lease id must be
// supplied before the request can be finalized.
func RenewLease(client *azstore.Client) RenewLeaseContainerStage {
	return RenewLeaseContainerStage{client: client}
}

// RenewLeaseContainerStage is a lease renewal request which still requires the container name.
type RenewLeaseContainerStage struct {
	client *azstore.Client
	params renewLeaseParams
}

// WithContainerName sets the name of the container holding the blob.
func (s RenewLeaseContainerStage) WithContainerName(name string) RenewLeaseBlobStage {
	s.params.containerName = name
	return RenewLeaseBlobStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s RenewLeaseContainerStage) WithTimeout(timeout uint64) RenewLeaseContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s RenewLeaseContainerStage) WithClientRequestID(id string) RenewLeaseContainerStage {
	s.params.clientRequestID = id
	return s
}

// RenewLeaseBlobStage is a lease renewal request which still requires the blob name.
type RenewLeaseBlobStage struct {
	client *azstore.Client
	params renewLeaseParams
}

// WithBlobName sets the name of the leased blob.
func (s RenewLeaseBlobStage) WithBlobName(name string) RenewLeaseIDStage {
	s.params.blobName = name
	return RenewLeaseIDStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s RenewLeaseBlobStage) WithTimeout(timeout uint64) RenewLeaseBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s RenewLeaseBlobStage) WithClientRequestID(id string) RenewLeaseBlobStage {
	s.params.clientRequestID = id
	return s
}

// RenewLeaseIDStage is a lease renewal request which still requires the lease id.
type RenewLeaseIDStage struct {
	client *azstore.Client
	params renewLeaseParams
}

// WithLeaseID sets the id of the lease to renew.
func (s RenewLeaseIDStage) WithLeaseID(leaseID azstore.LeaseID) RenewLeaseBuilder {
	s.params.leaseID = leaseID
	return RenewLeaseBuilder(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s RenewLeaseIDStage) WithTimeout(timeout uint64) RenewLeaseIDStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s RenewLeaseIDStage) WithClientRequestID(id string) RenewLeaseIDStage {
	s.params.clientRequestID = id
	return s
}

// RenewLeaseBuilder is a fully specified lease renewal request.
type RenewLeaseBuilder struct {
	client *azstore.Client
	params renewLeaseParams
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b RenewLeaseBuilder) WithTimeout(timeout uint64) RenewLeaseBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b RenewLeaseBuilder) WithClientRequestID(id string) RenewLeaseBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, renewal restarts the lease clock.
func (b RenewLeaseBuilder) Finalize(ctx context.Context) (*RenewLeaseResponse, error) {
	values := restcli.NewValues().Add("comp", "lease")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	headers[azstore.HeaderLeaseAction] = "renew"
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
		return nil, fmt.Errorf("failed to renew lease: %w", err)
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

	renewed := &RenewLeaseResponse{
		RequestInfo:  info,
		ETag:         eTag,
		LastModified: lastModified,
		LeaseID:      leaseID,
	}

	return renewed, nil
}

// RenewLeaseResponse is the decoded response to a lease renewal.
type RenewLeaseResponse struct {
	azstore.RequestInfo

	ETag         string
	LastModified time.Time
	LeaseID      azstore.LeaseID
}
