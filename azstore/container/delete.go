package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type deleteParams struct {
	containerName   string
	leaseID         *azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// Delete begins a request to delete a container and the blobs within it, the container name must be supplied before
// the request can be finalized.
func Delete(client *azstore.Client) DeleteContainerStage {
	return DeleteContainerStage{client: client}
}

// DeleteContainerStage is a container deletion request which still requires the container name.
type DeleteContainerStage struct {
	client *azstore.Client
	params deleteParams
}

// WithContainerName sets the name of the container to delete.
func (s DeleteContainerStage) WithContainerName(name string) DeleteBuilder {
	s.params.containerName = name
	return DeleteBuilder(s)
}

// WithLeaseID supplies the active lease id, required when the container is leased.
func (s DeleteContainerStage) WithLeaseID(leaseID azstore.LeaseID) DeleteContainerStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s DeleteContainerStage) WithTimeout(timeout uint64) DeleteContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s DeleteContainerStage) WithClientRequestID(id string) DeleteContainerStage {
	s.params.clientRequestID = id
	return s
}

// DeleteBuilder is a fully specified container deletion request.
type DeleteBuilder struct {
	client *azstore.Client
	params deleteParams
}

// WithLeaseID supplies the active lease id, required when the container is leased.
func (b DeleteBuilder) WithLeaseID(leaseID azstore.LeaseID) DeleteBuilder {
	b.params.leaseID = &leaseID
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b DeleteBuilder) WithTimeout(timeout uint64) DeleteBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b DeleteBuilder) WithClientRequestID(id string) DeleteBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, deletion is asynchronous on the service side hence the accepted status.
func (b DeleteBuilder) Finalize(ctx context.Context) (*DeleteResponse, error) {
	values := restcli.NewValues().Add("restype", "container")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetLeaseID(headers, b.params.leaseID)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodDelete,
		Endpoint:           restcli.Endpoint("/%s").Format(b.params.containerName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusAccepted,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to delete container: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	return &DeleteResponse{RequestInfo: info}, nil
}

// DeleteResponse is the decoded response to a container deletion.
type DeleteResponse struct {
	azstore.RequestInfo
}
