package container

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
	leaseID         *azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// GetProperties begins a request for the properties and user metadata of a container, the container name must be
// supplied before the request can be finalized.
func GetProperties(client *azstore.Client) GetPropertiesContainerStage {
	return GetPropertiesContainerStage{client: client}
}

// GetPropertiesContainerStage is a container properties request which still requires the container name.
type GetPropertiesContainerStage struct {
	client *azstore.Client
	params getPropertiesParams
}

// WithContainerName sets the name of the container to fetch the properties of.
func (s GetPropertiesContainerStage) WithContainerName(name string) GetPropertiesBuilder {
	s.params.containerName = name
	return GetPropertiesBuilder(s)
}

// WithLeaseID supplies the active lease id, the request fails if it doesn't match the current lease.
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

// GetPropertiesBuilder is a fully specified container properties request.
type GetPropertiesBuilder struct {
	client *azstore.Client
	params getPropertiesParams
}

// WithLeaseID supplies the active lease id, the request fails if it doesn't match the current lease.
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

// Finalize dispatches the request, the container is reconstructed from the response headers with the name taken from
// the request since the services don't echo it.
func (b GetPropertiesBuilder) Finalize(ctx context.Context) (*GetPropertiesResponse, error) {
	values := restcli.NewValues().Add("restype", "container")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetLeaseID(headers, b.params.leaseID)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodGet,
		Endpoint:           restcli.Endpoint("/%s").Format(b.params.containerName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to get container properties: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	decoded, err := FromHeaders(b.params.containerName, response.Header)
	if err != nil {
		return nil, err
	}

	return &GetPropertiesResponse{RequestInfo: info, Container: *decoded}, nil
}

// GetPropertiesResponse is the decoded response to a container properties request.
type GetPropertiesResponse struct {
	azstore.RequestInfo
	Container Container
}
