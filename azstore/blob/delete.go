package blob

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
	blobName        string
	deleteSnapshots azstore.DeleteSnapshots
	leaseID         *azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// Delete begins a request to delete a blob, the container and blob names must be supplied before the request can be
// finalized. Deleting a blob with snapshots requires a 'WithDeleteSnapshots' disposition.
func Delete(client *azstore.Client) DeleteContainerStage {
	return DeleteContainerStage{client: client}
}

// DeleteContainerStage is a blob deletion request which still requires the container name.
type DeleteContainerStage struct {
	client *azstore.Client
	params deleteParams
}

// WithContainerName sets the name of the container holding the blob.
func (s DeleteContainerStage) WithContainerName(name string) DeleteBlobStage {
	s.params.containerName = name
	return DeleteBlobStage(s)
}

// WithDeleteSnapshots sets what happens to the snapshots of the blob.
func (s DeleteContainerStage) WithDeleteSnapshots(snapshots azstore.DeleteSnapshots) DeleteContainerStage {
	s.params.deleteSnapshots = snapshots
	return s
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
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

// DeleteBlobStage is a blob deletion request which still requires the blob name.
type DeleteBlobStage struct {
	client *azstore.Client
	params deleteParams
}

// WithBlobName sets the name of the blob to delete.
func (s DeleteBlobStage) WithBlobName(name string) DeleteBuilder {
	s.params.blobName = name
	return DeleteBuilder(s)
}

// WithDeleteSnapshots sets what happens to the snapshots of the blob.
func (s DeleteBlobStage) WithDeleteSnapshots(snapshots azstore.DeleteSnapshots) DeleteBlobStage {
	s.params.deleteSnapshots = snapshots
	return s
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
func (s DeleteBlobStage) WithLeaseID(leaseID azstore.LeaseID) DeleteBlobStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s DeleteBlobStage) WithTimeout(timeout uint64) DeleteBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s DeleteBlobStage) WithClientRequestID(id string) DeleteBlobStage {
	s.params.clientRequestID = id
	return s
}

// DeleteBuilder is a fully specified blob deletion request.
type DeleteBuilder struct {
	client *azstore.Client
	params deleteParams
}

// WithDeleteSnapshots sets what happens to the snapshots of the blob.
func (b DeleteBuilder) WithDeleteSnapshots(snapshots azstore.DeleteSnapshots) DeleteBuilder {
	b.params.deleteSnapshots = snapshots
	return b
}

// WithLeaseID supplies the active lease id, required when the blob is leased.
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
	values := restcli.NewValues()
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetDeleteSnapshots(headers, b.params.deleteSnapshots)
	azstore.SetLeaseID(headers, b.params.leaseID)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodDelete,
		Endpoint:           restcli.Endpoint("/%s/%s").Format(b.params.containerName, b.params.blobName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusAccepted,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to delete blob: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	return &DeleteResponse{RequestInfo: info}, nil
}

// DeleteResponse is the decoded response to a blob deletion.
type DeleteResponse struct {
	azstore.RequestInfo
}
