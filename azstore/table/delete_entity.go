package table

import (
	"context"
	"fmt"
	"net/http"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type deleteEntityParams struct {
	tableName       string
	partitionKey    string
	rowKey          string
	eTag            string
	timeout         uint64
	clientRequestID string
}

// DeleteEntity begins a request to delete a single entity by its key pair, the table name, partition key and row key
// must all be supplied before the request can be finalized.
func DeleteEntity(client *azstore.Client) DeleteEntityTableStage {
	return DeleteEntityTableStage{client: client}
}

// DeleteEntityTableStage is an entity deletion request which still requires the table name.
type DeleteEntityTableStage struct {
	client *azstore.Client
	params deleteEntityParams
}

// WithTableName sets the name of the table holding the entity.
func (s DeleteEntityTableStage) WithTableName(name string) DeleteEntityPartitionStage {
	s.params.tableName = name
	return DeleteEntityPartitionStage(s)
}

// WithETag deletes only if the entity still carries the given etag, an unconditional delete is dispatched otherwise.
func (s DeleteEntityTableStage) WithETag(eTag string) DeleteEntityTableStage {
	s.params.eTag = eTag
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s DeleteEntityTableStage) WithTimeout(timeout uint64) DeleteEntityTableStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s DeleteEntityTableStage) WithClientRequestID(id string) DeleteEntityTableStage {
	s.params.clientRequestID = id
	return s
}

// DeleteEntityPartitionStage is an entity deletion request which still requires the partition key.
type DeleteEntityPartitionStage struct {
	client *azstore.Client
	params deleteEntityParams
}

// WithPartitionKey sets the partition key of the entity.
func (s DeleteEntityPartitionStage) WithPartitionKey(key string) DeleteEntityRowStage {
	s.params.partitionKey = key
	return DeleteEntityRowStage(s)
}

// WithETag deletes only if the entity still carries the given etag, an unconditional delete is dispatched otherwise.
func (s DeleteEntityPartitionStage) WithETag(eTag string) DeleteEntityPartitionStage {
	s.params.eTag = eTag
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s DeleteEntityPartitionStage) WithTimeout(timeout uint64) DeleteEntityPartitionStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s DeleteEntityPartitionStage) WithClientRequestID(id string) DeleteEntityPartitionStage {
	s.params.clientRequestID = id
	return s
}

// DeleteEntityRowStage is an entity deletion request which still requires the row key.
type DeleteEntityRowStage struct {
	client *azstore.Client
	params deleteEntityParams
}

// WithRowKey sets the row key of the entity.
func (s DeleteEntityRowStage) WithRowKey(key string) DeleteEntityBuilder {
	s.params.rowKey = key
	return DeleteEntityBuilder(s)
}

// WithETag deletes only if the entity still carries the given etag, an unconditional delete is dispatched otherwise.
func (s DeleteEntityRowStage) WithETag(eTag string) DeleteEntityRowStage {
	s.params.eTag = eTag
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s DeleteEntityRowStage) WithTimeout(timeout uint64) DeleteEntityRowStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s DeleteEntityRowStage) WithClientRequestID(id string) DeleteEntityRowStage {
	s.params.clientRequestID = id
	return s
}

// DeleteEntityBuilder is a fully specified entity deletion request.
type DeleteEntityBuilder struct {
	client *azstore.Client
	params deleteEntityParams
}

// WithETag deletes only if the entity still carries the given etag, an unconditional delete is dispatched otherwise.
func (b DeleteEntityBuilder) WithETag(eTag string) DeleteEntityBuilder {
	b.params.eTag = eTag
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b DeleteEntityBuilder) WithTimeout(timeout uint64) DeleteEntityBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b DeleteEntityBuilder) WithClientRequestID(id string) DeleteEntityBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request.
func (b DeleteEntityBuilder) Finalize(ctx context.Context) (*DeleteEntityResponse, error) {
	values := restcli.NewValues()
	azstore.AppendTimeout(values, b.params.timeout)

	// The service refuses a delete with no 'If-Match' at all, the wildcard is how an unconditional delete is spelt
	ifMatch := "*"
	if b.params.eTag != "" {
		ifMatch = b.params.eTag
	}

	headers := make(map[string]string)
	setODataHeaders(headers)
	headers[headerIfMatch] = ifMatch
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceTable,
		Method:             http.MethodDelete,
		Endpoint:           entityEndpoint(b.params.tableName, b.params.partitionKey, b.params.rowKey),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusNoContent,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to delete entity: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	return &DeleteEntityResponse{RequestInfo: info}, nil
}

// DeleteEntityResponse is the decoded response to an entity deletion.
type DeleteEntityResponse struct {
	azstore.RequestInfo
}
