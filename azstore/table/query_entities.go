package table

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type queryEntitiesParams struct {
	tableName        string
	filter           string
	top              uint32
	nextPartitionKey string
	nextRowKey       string
	timeout          uint64
	clientRequestID  string
}

// QueryEntities begins a request to query the entities of a table, the table name must be supplied before the request
// can be finalized.
func QueryEntities(client *azstore.Client) QueryEntitiesTableStage {
	return QueryEntitiesTableStage{client: client}
}

// QueryEntitiesTableStage is an entity query request which still requires the table name.
type QueryEntitiesTableStage struct {
	client *azstore.Client
	params queryEntitiesParams
}

// WithTableName sets the name of the table to query.
func (s QueryEntitiesTableStage) WithTableName(name string) QueryEntitiesBuilder {
	s.params.tableName = name
	return QueryEntitiesBuilder(s)
}

// WithFilter restricts the query to entities matching the given OData filter expression.
func (s QueryEntitiesTableStage) WithFilter(filter string) QueryEntitiesTableStage {
	s.params.filter = filter
	return s
}

// WithTop caps the number of entities returned in a single page.
func (s QueryEntitiesTableStage) WithTop(top uint32) QueryEntitiesTableStage {
	s.params.top = top
	return s
}

// WithNextPartitionKey resumes the query from the partition continuation returned by a previous page.
func (s QueryEntitiesTableStage) WithNextPartitionKey(key string) QueryEntitiesTableStage {
	s.params.nextPartitionKey = key
	return s
}

// WithNextRowKey resumes the query from the row continuation returned by a previous page.
func (s QueryEntitiesTableStage) WithNextRowKey(key string) QueryEntitiesTableStage {
	s.params.nextRowKey = key
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s QueryEntitiesTableStage) WithTimeout(timeout uint64) QueryEntitiesTableStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s QueryEntitiesTableStage) WithClientRequestID(id string) QueryEntitiesTableStage {
	s.params.clientRequestID = id
	return s
}

// QueryEntitiesBuilder is a fully specified entity query request.
type QueryEntitiesBuilder struct {
	client *azstore.Client
	params queryEntitiesParams
}

// WithFilter restricts the query to entities matching the given OData filter expression.
func (b QueryEntitiesBuilder) WithFilter(filter string) QueryEntitiesBuilder {
	b.params.filter = filter
	return b
}

// WithTop caps the number of entities returned in a single page.
func (b QueryEntitiesBuilder) WithTop(top uint32) QueryEntitiesBuilder {
	b.params.top = top
	return b
}

// WithNextPartitionKey resumes the query from the partition continuation returned by a previous page.
func (b QueryEntitiesBuilder) WithNextPartitionKey(key string) QueryEntitiesBuilder {
	b.params.nextPartitionKey = key
	return b
}

// WithNextRowKey resumes the query from the row continuation returned by a previous page.
func (b QueryEntitiesBuilder) WithNextRowKey(key string) QueryEntitiesBuilder {
	b.params.nextRowKey = key
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b QueryEntitiesBuilder) WithTimeout(timeout uint64) QueryEntitiesBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b QueryEntitiesBuilder) WithClientRequestID(id string) QueryEntitiesBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, a single page of results is returned and the next may be requested by passing the
// continuation keys to 'WithNextPartitionKey'/'WithNextRowKey'.
func (b QueryEntitiesBuilder) Finalize(ctx context.Context) (*QueryEntitiesResponse, error) {
	values := restcli.NewValues()

	if b.params.filter != "" {
		values.Add("$filter", b.params.filter)
	}

	if b.params.top != 0 {
		values.Add("$top", strconv.FormatUint(uint64(b.params.top), 10))
	}

	if b.params.nextPartitionKey != "" {
		values.Add("NextPartitionKey", b.params.nextPartitionKey)
	}

	if b.params.nextRowKey != "" {
		values.Add("NextRowKey", b.params.nextRowKey)
	}

	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	setODataHeaders(headers)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceTable,
		Method:             http.MethodGet,
		Endpoint:           restcli.Endpoint(fmt.Sprintf("/%s()", b.params.tableName)),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}

	return queryEntitiesResponseFromResponse(response)
}

// QueryEntitiesResponse is the decoded response to an entity query, non-empty continuation keys mean the query has
// further pages.
type QueryEntitiesResponse struct {
	azstore.RequestInfo

	Entities []Entity

	NextPartitionKey string
	NextRowKey       string
}

func queryEntitiesResponseFromResponse(response *restcli.Response) (*QueryEntitiesResponse, error) {
	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	value := jsoniter.Get(response.Body, "value")
	if value.ValueType() != jsoniter.ArrayValue {
		return nil, &MissingPropertyError{Property: "value"}
	}

	entities := make([]Entity, 0, value.Size())

	for idx := 0; idx < value.Size(); idx++ {
		entity, err := entityFromJSON([]byte(value.Get(idx).ToString()))
		if err != nil {
			return nil, err
		}

		entities = append(entities, entity)
	}

	query := &QueryEntitiesResponse{
		RequestInfo:      info,
		Entities:         entities,
		NextPartitionKey: response.Header.Get(azstore.HeaderContinuationNextPartitionKey),
		NextRowKey:       response.Header.Get(azstore.HeaderContinuationNextRowKey),
	}

	return query, nil
}
