package table

import (
	"context"
	"net/http"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

func TestCreateTable(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, aprov.ServiceTable, request.Service)
			require.Equal(t, restcli.Method(http.MethodPost), request.Method)
			require.Equal(t, restcli.Endpoint("/Tables"), request.Endpoint)
			require.JSONEq(t, `{"TableName":"beerfest"}`, string(request.Body))
			require.Equal(t, restcli.ContentTypeJSON, request.ContentType)
			require.True(t, request.QueryParameters.Empty())
			require.Equal(t, http.StatusCreated, request.ExpectedStatusCode)
			requireODataHeaders(t, request.Header)

			response := &restcli.Response{
				StatusCode: http.StatusCreated,
				Header:     newResponseHeader(nil),
				Body:       []byte(`{"TableName":"beerfest"}`),
			}

			return response, nil
		})

	response, err := CreateTable(client).WithTableName("beerfest").Finalize(context.Background())
	require.NoError(t, err)

	expected := &CreateTableResponse{
		RequestInfo: azstore.RequestInfo{RequestID: testRequestID, Date: testTime},
		TableName:   "beerfest",
	}

	require.Equal(t, expected, response)
}

func TestCreateTableWithAllOptions(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, "timeout=30", request.QueryParameters.Encode())
			require.Equal(t, "backup-0042", request.Header[azstore.HeaderClientRequestID])

			response := &restcli.Response{
				StatusCode: http.StatusCreated,
				Header:     newResponseHeader(nil),
				Body:       []byte(`{"TableName":"beerfest"}`),
			}

			return response, nil
		})

	_, err := CreateTable(client).
		WithTimeout(30).
		WithTableName("beerfest").
		WithClientRequestID("backup-0042").
		Finalize(context.Background())
	require.NoError(t, err)
}

func TestCreateTableDispatchError(t *testing.T) {
	client, requester := newTestClient(t)

	requester.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	_, err := CreateTable(client).WithTableName("beerfest").Finalize(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorContains(t, err, "failed to create table")
}

func TestCreateTableMissingEcho(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *restcli.Request) (*restcli.Response, error) {
			return &restcli.Response{StatusCode: http.StatusCreated, Header: newResponseHeader(nil), Body: []byte(`{}`)}, nil
		})

	_, err := CreateTable(client).WithTableName("beerfest").Finalize(context.Background())

	var missingProperty *MissingPropertyError

	require.ErrorAs(t, err, &missingProperty)
	require.Equal(t, "TableName", missingProperty.Property)
}

func TestCreateTableStagesCopyOnWrite(t *testing.T) {
	base := CreateTable(nil)

	first := base.WithTableName("beerfest")
	second := base.WithTimeout(30).WithTableName("backups")

	require.Empty(t, base.params.tableName)
	require.Equal(t, "beerfest", first.params.tableName)
	require.Zero(t, first.params.timeout)
	require.Equal(t, "backups", second.params.tableName)
	require.Equal(t, uint64(30), second.params.timeout)
}
