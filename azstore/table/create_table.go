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

type createTableParams struct {
	tableName       string
	timeout         uint64
	clientRequestID string
}

// CreateTable begins a request to create a new table, the table name must be supplied before the request can be
// finalized.
func CreateTable(client *azstore.Client) CreateTableNameStage {
	return CreateTableNameStage{client: client}
}

// CreateTableNameStage is a table creation request which still requires the table name.
type CreateTableNameStage struct {
	client *azstore.Client
	params createTableParams
}

// WithTableName sets the name of the table to create.
func (s CreateTableNameStage) WithTableName(name string) CreateTableBuilder {
	s.params.tableName = name
	return CreateTableBuilder(s)
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s CreateTableNameStage) WithTimeout(timeout uint64) CreateTableNameStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s CreateTableNameStage) WithClientRequestID(id string) CreateTableNameStage {
	s.params.clientRequestID = id
	return s
}

// CreateTableBuilder is a fully specified table creation request.
type CreateTableBuilder struct {
	client *azstore.Client
	params createTableParams
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b CreateTableBuilder) WithTimeout(timeout uint64) CreateTableBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b CreateTableBuilder) WithClientRequestID(id string) CreateTableBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request.
func (b CreateTableBuilder) Finalize(ctx context.Context) (*CreateTableResponse, error) {
	body, err := jsoniter.Marshal(map[string]string{"TableName": b.params.tableName})
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
		Endpoint:           "/Tables",
		Body:               body,
		ContentType:        restcli.ContentTypeJSON,
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusCreated,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	name := jsoniter.Get(response.Body, "TableName")
	if name.ValueType() != jsoniter.StringValue {
		return nil, &MissingPropertyError{Property: "TableName"}
	}

	return &CreateTableResponse{RequestInfo: info, TableName: name.ToString()}, nil
}

// CreateTableResponse is the decoded response to a table creation.
type CreateTableResponse struct {
	azstore.RequestInfo

	TableName string
}
