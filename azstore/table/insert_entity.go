package table

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type insertEntityParams struct {
	tableName       string
	entity          Entity
	timeout         uint64
	clientRequestID string
}

// InsertEntity begins a request to insert an entity into a table, the table name and entity must be supplied before
// the request can be finalized.
func InsertEntity(client *azstore.Client) InsertEntityTableStage {
	return InsertEntityTableStage{client: client}
}

// InsertEntityTableStage is an entity insertion request which still requires the table name.
type InsertEntityTableStage struct {
	client *azstore.Client
	params insertEntityParams
}

// WithTableName sets the name of the table to insert into.
func (s InsertEntityTableStage) WithTableName(name string) InsertEntityBodyStage {
	s.params.tableName = name
	return InsertEntityBodyStage(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s InsertEntityTableStage) WithTimeout(timeout uint64) InsertEntityTableStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s InsertEntityTableStage) WithClientRequestID(id string) InsertEntityTableStage {
	s.params.clientRequestID = id
	return s
}

// InsertEntityBodyStage is an entity insertion request which still requires the entity.
type InsertEntityBodyStage struct {
	client *azstore.Client
	params insertEntityParams
}

// WithEntity sets the entity to insert, its keys and user properties form the request body.
func (s InsertEntityBodyStage) WithEntity(entity Entity) InsertEntityBuilder {
	s.params.entity = entity
	return InsertEntityBuilder(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s InsertEntityBodyStage) WithTimeout(timeout uint64) InsertEntityBodyStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s InsertEntityBodyStage) WithClientRequestID(id string) InsertEntityBodyStage {
	s.params.clientRequestID = id
	return s
}

// InsertEntityBuilder is a fully specified entity insertion request.
type InsertEntityBuilder struct {
	client *azstore.Client
	params insertEntityParams
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b InsertEntityBuilder) WithTimeout(timeout uint64) InsertEntityBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b InsertEntityBuilder) WithClientRequestID(id string) InsertEntityBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request.
func (b InsertEntityBuilder) Finalize(ctx context.Context) (*InsertEntityResponse, error) {
	body, err := jsoniter.Marshal(b.params.entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	values := restcli.NewValues()
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	setODataHeaders(headers)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceTable,
		Method:             http.MethodPost,
		Endpoint:           restcli.Endpoint("/%s").Format(b.params.tableName),
		Body:               body,
		ContentType:        restcli.ContentTypeJSON,
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusCreated,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entity: %w", err)
	}

	return insertEntityResponseFromResponse(response)
}

// InsertEntityResponse is the decoded response to an entity insertion, the entity is the service's echo with the
// assigned etag and timestamp.
type InsertEntityResponse struct {
	azstore.RequestInfo

	Entity Entity
}

func insertEntityResponseFromResponse(response *restcli.Response) (*InsertEntityResponse, error) {
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

	return &InsertEntityResponse{RequestInfo: info, Entity: entity}, nil
}
