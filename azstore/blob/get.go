package blob

import (
	"context"
	"fmt"
	"net/http"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type getParams struct {
	containerName   string
	blobName        string
	snapshot        string
	leaseID         *azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// Get begins a request to download a blob, the container and blob names must be supplied before the request can be
// finalized.
func Get(client *azstore.Client) GetContainerStage {
	return GetContainerStage{client: client}
}

// GetContainerStage is a blob download request which still requires the container name.
type GetContainerStage struct {
	client *azstore.Client
	params getParams
}

// WithContainerName sets the name of the container to download from.
func (s GetContainerStage) WithContainerName(name string) GetBlobStage {
	s.params.containerName = name
	return GetBlobStage(s)
}

// WithSnapshot targets the snapshot with the given opaque timestamp rather than the base blob.
func (s GetContainerStage) WithSnapshot(snapshot string) GetContainerStage {
	s.params.snapshot = snapshot
	return s
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
func (s GetContainerStage) WithLeaseID(leaseID azstore.LeaseID) GetContainerStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s GetContainerStage) WithTimeout(timeout uint64) GetContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s GetContainerStage) WithClientRequestID(id string) GetContainerStage {
	s.params.clientRequestID = id
	return s
}

// GetBlobStage is a blob download request which still requires the blob name.
type GetBlobStage struct {
	client *azstore.Client
	params getParams
}

// WithBlobName sets the name of the blob to download.
func (s GetBlobStage) WithBlobName(name string) GetBuilder {
	s.params.blobName = name
	return GetBuilder(s)
}

// WithSnapshot targets the snapshot with the given opaque timestamp rather than the base blob.
func (s GetBlobStage) WithSnapshot(snapshot string) GetBlobStage {
	s.params.snapshot = snapshot
	return s
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
func (s GetBlobStage) WithLeaseID(leaseID azstore.LeaseID) GetBlobStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s GetBlobStage) WithTimeout(timeout uint64) GetBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s GetBlobStage) WithClientRequestID(id string) GetBlobStage {
	s.params.clientRequestID = id
	return s
}

// GetBuilder is a fully specified blob download request.
type GetBuilder struct {
	client *azstore.Client
	params getParams
}

// WithSnapshot targets the snapshot with the given opaque timestamp rather than the base blob.
func (b GetBuilder) WithSnapshot(snapshot string) GetBuilder {
	b.params.snapshot = snapshot
	return b
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
func (b GetBuilder) WithLeaseID(leaseID azstore.LeaseID) GetBuilder {
	b.params.leaseID = &leaseID
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b GetBuilder) WithTimeout(timeout uint64) GetBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b GetBuilder) WithClientRequestID(id string) GetBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, the body is read fully into memory.
func (b GetBuilder) Finalize(ctx context.Context) (*GetResponse, error) {
	values := restcli.NewValues()
	azstore.AppendSnapshot(values, b.params.snapshot)
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetLeaseID(headers, b.params.leaseID)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodGet,
		Endpoint:           restcli.Endpoint("/%s/%s").Format(b.params.containerName, b.params.blobName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	decoded, err := FromHeaders(b.params.blobName, b.params.snapshot, response.Header)
	if err != nil {
		return nil, err
	}

	return &GetResponse{RequestInfo: info, Blob: *decoded, Body: response.Body}, nil
}

// GetResponse is the decoded response to a blob download.
type GetResponse struct {
	azstore.RequestInfo

	Blob Blob
	Body []byte
}
