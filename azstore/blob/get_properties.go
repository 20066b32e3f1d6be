package blob

import (
	"context"
	"fmt"
	"net/http"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type getPropertiesParams struct {
	containerName   string
	blobName        string
	leaseID         *azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// GetProperties begins a request for the system properties and metadata of a blob without its content, the container
// and blob names must be supplied before the request can be finalized.
func GetProperties(client *azstore.Client) GetPropertiesContainerStage {
	return GetPropertiesContainerStage{client: client}
}

// GetPropertiesContainerStage is a blob properties request which still requires the container name.
type GetPropertiesContainerStage struct {
	client *azstore.Client
	params getPropertiesParams
}

// WithContainerName sets the name of the container holding the blob.
func (s GetPropertiesContainerStage) WithContainerName(name string) GetPropertiesBlobStage {
	s.params.containerName = name
	return GetPropertiesBlobStage(s)
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
func (s GetPropertiesContainerStage) WithLeaseID(leaseID azstore.LeaseID) GetPropertiesContainerStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s GetPropertiesContainerStage) WithTimeout(timeout uint64) GetPropertiesContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s GetPropertiesContainerStage) WithClientRequestID(id string) GetPropertiesContainerStage {
	s.params.clientRequestID = id
	return s
}

// GetPropertiesBlobStage is a blob properties request which still requires the blob name.
type GetPropertiesBlobStage struct {
	client *azstore.Client
	params getPropertiesParams
}

// WithBlobName sets the name of the blob to describe.
func (s GetPropertiesBlobStage) WithBlobName(name string) GetPropertiesBuilder {
	s.params.blobName = name
	return GetPropertiesBuilder(s)
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
func (s GetPropertiesBlobStage) WithLeaseID(leaseID azstore.LeaseID) GetPropertiesBlobStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s GetPropertiesBlobStage) WithTimeout(timeout uint64) GetPropertiesBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s GetPropertiesBlobStage) WithClientRequestID(id string) GetPropertiesBlobStage {
	s.params.clientRequestID = id
	return s
}

// GetPropertiesBuilder is a fully specified blob properties request.
type GetPropertiesBuilder struct {
	client *azstore.Client
	params getPropertiesParams
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
func (b GetPropertiesBuilder) WithLeaseID(leaseID azstore.LeaseID) GetPropertiesBuilder {
	b.params.leaseID = &leaseID
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b GetPropertiesBuilder) WithTimeout(timeout uint64) GetPropertiesBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b GetPropertiesBuilder) WithClientRequestID(id string) GetPropertiesBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, the properties travel entirely in the response headers of the HEAD request.
func (b GetPropertiesBuilder) Finalize(ctx context.Context) (*GetPropertiesResponse, error) {
	values := restcli.NewValues()
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetLeaseID(headers, b.params.leaseID)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodHead,
		Endpoint:           restcli.Endpoint("/%s/%s").Format(b.params.containerName, b.params.blobName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob properties: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	decoded, err := FromHeaders(b.params.blobName, "", response.Header)
	if err != nil {
		return nil, err
	}

	return &GetPropertiesResponse{RequestInfo: info, Blob: *decoded}, nil
}

// GetPropertiesResponse is the decoded response to a blob properties request.
type GetPropertiesResponse struct {
	azstore.RequestInfo

	Blob Blob
}
