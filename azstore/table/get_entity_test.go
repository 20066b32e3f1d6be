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

func TestGetEntity(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, aprov.ServiceTable, request.Service)
			require.Equal(t, restcli.Method(http.MethodGet), request.Method)
			require.Equal(t, restcli.Endpoint("/beerfest(PartitionKey='events',RowKey='0042')"), request.Endpoint)
			require.Empty(t, request.Body)
			require.True(t, request.QueryParameters.Empty())
			require.Equal(t, http.StatusOK, request.ExpectedStatusCode)
			requireODataHeaders(t, request.Header)

			body := `{"PartitionKey":"events","RowKey":"0042","Timestamp":"2026-08-24T10:00:00.0000000Z",` +
				`"Age":30,"Name":"bbq"}`

			response := &restcli.Response{
				StatusCode: http.StatusOK,
				Header:     newResponseHeader(map[string]string{azstore.HeaderETag: testETag}),
				Body:       []byte(body),
			}

			return response, nil
		})

	response, err := GetEntity(client).
		WithTableName("beerfest").
		WithPartitionKey("events").
		WithRowKey("0042").
		Finalize(context.Background())
	require.NoError(t, err)

	expected := &GetEntityResponse{
		RequestInfo: azstore.RequestInfo{RequestID: testRequestID, Date: testTime},
		Entity: Entity{
			PartitionKey: "events",
			RowKey:       "0042",
			ETag:         testETag,
			Timestamp:    testTime,
			Properties:   map[string]any{"Age": float64(30), "Name": "bbq"},
		},
	}

	require.Equal(t, expected, response)
}

func TestGetEntityEscapesKeys(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, restcli.Endpoint("/beerfest(PartitionKey='O''Brien',RowKey='0042')"), request.Endpoint)

			response := &restcli.Response{
				StatusCode: http.StatusOK,
				Header:     newResponseHeader(map[string]string{azstore.HeaderETag: testETag}),
				Body:       []byte(`{"PartitionKey":"O'Brien","RowKey":"0042"}`),
			}

			return response, nil
		})

	response, err := GetEntity(client).
		WithTableName("beerfest").
		WithPartitionKey("O'Brien").
		WithRowKey("0042").
		Finalize(context.Background())
	require.NoError(t, err)
	require.Equal(t, "O'Brien", response.Entity.PartitionKey)
}

func TestGetEntityWithAllOptions(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, "timeout=30", request.QueryParameters.Encode())
			require.Equal(t, "backup-0042", request.Header[azstore.HeaderClientRequestID])

			response := &restcli.Response{
				StatusCode: http.StatusOK,
				Header:     newResponseHeader(map[string]string{azstore.HeaderETag: testETag}),
				Body:       []byte(`{"PartitionKey":"events","RowKey":"0042"}`),
			}

			return response, nil
		})

	_, err := GetEntity(client).
		WithTimeout(30).
		WithTableName("beerfest").
		WithPartitionKey("events").
		WithClientRequestID("backup-0042").
		WithRowKey("0042").
		Finalize(context.Background())
	require.NoError(t, err)
}

func TestGetEntityDispatchError(t *testing.T) {
	client, requester := newTestClient(t)

	requester.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	_, err := GetEntity(client).
		WithTableName("beerfest").
		WithPartitionKey("events").
		WithRowKey("0042").
		Finalize(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorContains(t, err, "failed to get entity")
}

func TestGetEntityStagesCopyOnWrite(t *testing.T) {
	base := GetEntity(nil).WithTableName("beerfest").WithPartitionKey("events")

	first := base.WithRowKey("0042")
	second := base.WithTimeout(30).WithRowKey("0043")

	require.Empty(t, base.params.rowKey)
	require.Equal(t, "0042", first.params.rowKey)
	require.Zero(t, first.params.timeout)
	require.Equal(t, "0043", second.params.rowKey)
	require.Equal(t, uint64(30), second.params.timeout)
}
