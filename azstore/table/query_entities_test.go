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

func TestQueryEntities(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, aprov.ServiceTable, request.Service)
			require.Equal(t, restcli.Method(http.MethodGet), request.Method)
			require.Equal(t, restcli.Endpoint("/beerfest()"), request.Endpoint)
			require.True(t, request.QueryParameters.Empty())
			require.Equal(t, http.StatusOK, request.ExpectedStatusCode)
			requireODataHeaders(t, request.Header)

			body := `{"value":[` +
				`{"PartitionKey":"events","RowKey":"0041","Timestamp":"2026-08-24T10:00:00.0000000Z","Age":30},` +
				`{"PartitionKey":"events","RowKey":"0042","Timestamp":"2026-08-24T10:00:00.0000000Z","Age":31}]}`

			extra := map[string]string{
				azstore.HeaderContinuationNextPartitionKey: "1!8!ZXZlbnRz",
				azstore.HeaderContinuationNextRowKey:       "1!4!MDA0Mg--",
			}

			return &restcli.Response{StatusCode: http.StatusOK, Header: newResponseHeader(extra), Body: []byte(body)}, nil
		})

	response, err := QueryEntities(client).WithTableName("beerfest").Finalize(context.Background())
	require.NoError(t, err)

	expected := &QueryEntitiesResponse{
		RequestInfo: azstore.RequestInfo{RequestID: testRequestID, Date: testTime},
		Entities: []Entity{
			{
				PartitionKey: "events",
				RowKey:       "0041",
				Timestamp:    testTime,
				Properties:   map[string]any{"Age": float64(30)},
			},
			{
				PartitionKey: "events",
				RowKey:       "0042",
				Timestamp:    testTime,
				Properties:   map[string]any{"Age": float64(31)},
			},
		},
		NextPartitionKey: "1!8!ZXZlbnRz",
		NextRowKey:       "1!4!MDA0Mg--",
	}

	require.Equal(t, expected, response)
}

func TestQueryEntitiesWithAllOptions(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			encoded := "%24filter=Age+gt+25&%24top=2&NextPartitionKey=1%218%21ZXZlbnRz&NextRowKey=1%214%21MDA0Mg--&" +
				"timeout=30"
			require.Equal(t, encoded, request.QueryParameters.Encode())
			require.Equal(t, "backup-0042", request.Header[azstore.HeaderClientRequestID])

			return &restcli.Response{StatusCode: http.StatusOK, Header: newResponseHeader(nil), Body: []byte(`{"value":[]}`)}, nil
		})

	_, err := QueryEntities(client).
		WithFilter("Age gt 25").
		WithTop(2).
		WithNextPartitionKey("1!8!ZXZlbnRz").
		WithNextRowKey("1!4!MDA0Mg--").
		WithTimeout(30).
		WithClientRequestID("backup-0042").
		WithTableName("beerfest").
		Finalize(context.Background())
	require.NoError(t, err)
}

func TestQueryEntitiesEmptyResults(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *restcli.Request) (*restcli.Response, error) {
			return &restcli.Response{StatusCode: http.StatusOK, Header: newResponseHeader(nil), Body: []byte(`{"value":[]}`)}, nil
		})

	response, err := QueryEntities(client).WithTableName("beerfest").Finalize(context.Background())
	require.NoError(t, err)

	expected := &QueryEntitiesResponse{
		RequestInfo: azstore.RequestInfo{RequestID: testRequestID, Date: testTime},
		Entities:    []Entity{},
	}

	require.Equal(t, expected, response)
}

func TestQueryEntitiesDispatchError(t *testing.T) {
	client, requester := newTestClient(t)

	requester.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	_, err := QueryEntities(client).WithTableName("beerfest").Finalize(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorContains(t, err, "failed to query entities")
}

func TestQueryEntitiesMalformedEntity(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *restcli.Request) (*restcli.Response, error) {
			body := `{"value":[{"RowKey":"0042"}]}`
			return &restcli.Response{StatusCode: http.StatusOK, Header: newResponseHeader(nil), Body: []byte(body)}, nil
		})

	_, err := QueryEntities(client).WithTableName("beerfest").Finalize(context.Background())

	var missingProperty *MissingPropertyError

	require.ErrorAs(t, err, &missingProperty)
	require.Equal(t, "PartitionKey", missingProperty.Property)
}

func TestQueryEntitiesMissingValue(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *restcli.Request) (*restcli.Response, error) {
			body := `{"odata.metadata":"discarded"}`
			return &restcli.Response{StatusCode: http.StatusOK, Header: newResponseHeader(nil), Body: []byte(body)}, nil
		})

	_, err := QueryEntities(client).WithTableName("beerfest").Finalize(context.Background())

	var missingProperty *MissingPropertyError

	require.ErrorAs(t, err, &missingProperty)
	require.Equal(t, "value", missingProperty.Property)
}

func TestQueryEntitiesOptionalOrderIndependence(t *testing.T) {
	first := QueryEntities(nil).
		WithTop(2).
		WithTableName("beerfest").
		WithFilter("Age gt 25").
		WithTimeout(30)

	second := QueryEntities(nil).
		WithFilter("Age gt 25").
		WithTimeout(30).
		WithTop(2).
		WithTableName("beerfest")

	require.Equal(t, first.params, second.params)
}
