package table

import (
	"context"
	"fmt"
	"net/http"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type getEntityParams struct {
	tableName       string
	partitionKey    string
	rowKey          string
	timeout         uint64
	clientRequestID string
}

// GetEntity begins a request to retrieve a single entity by its key pair, the table name, partition key and row key
// must all be supplied before the request can be finalized.
func GetEntity(client *azstore.Client) GetEntityTableStage {
	return GetEntityTableStage{client: client}
}

// GetEntityTableStage is an entity retrieval request which still requires the table name.
type GetEntityTableStage struct {
	client *azstore.Client
	params getEntityParams
}

// WithTableName sets the name of the table holding the entity.
func (s GetEntityTableStage) WithTableName(name string) GetEntityPartitionStage {
	s.params.tableName = name
	return GetEntityPartitionStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s GetEntityTableStage) WithTimeout(timeout uint64) GetEntityTableStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s GetEntityTableStage) WithClientRequestID(id string) GetEntityTableStage {
	s.params.clientRequestID = id
	return s
}

// GetEntityPartitionStage is an entity retrieval request which still requires the partition key.
type GetEntityPartitionStage struct {
	client *azstore.Client
	params getEntityParams
}

// WithPartitionKey sets the partition key of the entity.
func (s GetEntityPartitionStage) WithPartitionKey(key string) GetEntityRowStage {
	s.params.partitionKey = key
	return GetEntityRowStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s GetEntityPartitionStage) WithTimeout(timeout uint64) GetEntityPartitionStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s GetEntityPartitionStage) WithClientRequestID(id string) GetEntityPartitionStage {
	s.params.clientRequestID = id
	return s
}

// GetEntityRowStage is an entity retrieval request which still requires the row key.
type GetEntityRowStage struct {
	client *azstore.Client
	params getEntityParams
}

// WithRowKey sets the row key of the entity.
func (s GetEntityRowStage) WithRowKey(key string) GetEntityBuilder {
	s.params.rowKey = key
	return GetEntityBuilder(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s GetEntityRowStage) WithTimeout(timeout uint64) GetEntityRowStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s GetEntityRowStage) WithClientRequestID(id string) GetEntityRowStage {
	s.params.clientRequestID = id
	return s
}

// GetEntityBuilder is a fully specified entity retrieval request.
type GetEntityBuilder struct {
	client *azstore.Client
	params getEntityParams
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b GetEntityBuilder) WithTimeout(timeout uint64) GetEntityBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b GetEntityBuilder) WithClientRequestID(id string) GetEntityBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request.
func (b GetEntityBuilder) Finalize(ctx context.Context) (*GetEntityResponse, error) {
	values := restcli.NewValues()
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	setODataHeaders(headers)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceTable,
		Method:             http.MethodGet,
		Endpoint:           entityEndpoint(b.params.tableName, b.params.partitionKey, b.params.rowKey),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	eTag, err := azstore.GetHeader(response.Header, azstore.HeaderETag)
	if err != nil {
		return nil, err
	}

	entity, err := entityFromJSON(response.Body)
	if err != nil {
		return nil, err
	}

	entity.ETag = eTag

	return &GetEntityResponse{RequestInfo: info, Entity: entity}, nil
}

// GetEntityResponse is the decoded response to an entity retrieval.
type GetEntityResponse struct {
	azstore.RequestInfo

	Entity Entity
}
