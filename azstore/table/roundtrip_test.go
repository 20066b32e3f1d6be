package table

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

// newWireClient returns a client whose connection string points both services at a local emulator style server,
// exercising the connection string bootstrap, shared key signing and HTTP dispatch rather than the requester seam.
func newWireClient(t *testing.T, handlers restcli.TestHandlers) *azstore.Client {
	server := httptest.NewServer(http.HandlerFunc(handlers.Handle))
	t.Cleanup(server.Close)

	connectionString := fmt.Sprintf(
		"DefaultEndpointsProtocol=http;AccountName=%s;AccountKey=%s;BlobEndpoint=%s/%s;TableEndpoint=%s/%s",
		aprov.EmulatorAccountName, aprov.EmulatorAccountKey,
		server.URL, aprov.EmulatorAccountName,
		server.URL, aprov.EmulatorAccountName,
	)

	client, err := azstore.NewClient(azstore.ClientOptions{ConnectionString: connectionString})
	require.NoError(t, err)

	return client
}

func TestInsertEntityRoundTrip(t *testing.T) {
	var capture restcli.CapturedRequest

	headers := map[string]string{
		azstore.HeaderRequestID:    testRequestID,
		azstore.HeaderResponseDate: testDate,
		azstore.HeaderETag:         testETag,
	}

	body := fmt.Sprintf(`{"PartitionKey":"events","RowKey":"0042","Timestamp":"%s","Name":"bbq"}`, testTimestamp)

	handlers := make(restcli.TestHandlers)
	handlers.Add(http.MethodPost, "/devstoreaccount1/events",
		restcli.NewTestHandlerWithCapture(t, http.StatusCreated, headers, []byte(body), &capture))

	client := newWireClient(t, handlers)

	entity := Entity{PartitionKey: "events", RowKey: "0042", Properties: map[string]any{"Name": "bbq"}}

	response, err := InsertEntity(client).
		WithTableName("events").
		WithEntity(entity).
		Finalize(context.Background())
	require.NoError(t, err)

	require.JSONEq(t, `{"PartitionKey":"events","RowKey":"0042","Name":"bbq"}`, string(capture.Body))
	require.Equal(t, string(restcli.ContentTypeJSON), capture.Header.Get("Content-Type"))
	require.Equal(t, acceptNoMetadata, capture.Header.Get(headerAccept))
	require.Equal(t, dataServiceVersion, capture.Header.Get(headerDataServiceVersion))
	require.Equal(t, azstore.APIVersion, capture.Header.Get(azstore.HeaderVersion))
	require.True(t, strings.HasPrefix(capture.Header.Get("Authorization"), "SharedKey devstoreaccount1:"))

	expected := &InsertEntityResponse{
		RequestInfo: azstore.RequestInfo{RequestID: testRequestID, Date: testTime},
		Entity: Entity{
			PartitionKey: "events",
			RowKey:       "0042",
			ETag:         testETag,
			Timestamp:    testTime,
			Properties:   map[string]any{"Name": "bbq"},
		},
	}

	require.Equal(t, expected, response)
}

// TestGetEntityRoundTrip addresses an entity whose keys carry quotes, proving the doubled form survives the trip
// through the transport and arrives at the server as the same path.
func TestGetEntityRoundTrip(t *testing.T) {
	var capture restcli.CapturedRequest

	headers := map[string]string{
		azstore.HeaderRequestID:    testRequestID,
		azstore.HeaderResponseDate: testDate,
		azstore.HeaderETag:         testETag,
	}

	body := fmt.Sprintf(`{"PartitionKey":"O'Brien","RowKey":"0042","Timestamp":"%s","Age":30}`, testTimestamp)

	handlers := make(restcli.TestHandlers)
	handlers.Add(http.MethodGet, "/devstoreaccount1/events(PartitionKey='O''Brien',RowKey='0042')",
		restcli.NewTestHandlerWithCapture(t, http.StatusOK, headers, []byte(body), &capture))

	client := newWireClient(t, handlers)

	response, err := GetEntity(client).
		WithTableName("events").
		WithPartitionKey("O'Brien").
		WithRowKey("0042").
		Finalize(context.Background())
	require.NoError(t, err)

	require.Equal(t, "/devstoreaccount1/events(PartitionKey='O''Brien',RowKey='0042')", capture.Path)
	require.Equal(t, acceptNoMetadata, capture.Header.Get(headerAccept))

	expected := &GetEntityResponse{
		RequestInfo: azstore.RequestInfo{RequestID: testRequestID, Date: testTime},
		Entity: Entity{
			PartitionKey: "O'Brien",
			RowKey:       "0042",
			ETag:         testETag,
			Timestamp:    testTime,
			Properties:   map[string]any{"Age": float64(30)},
		},
	}

	require.Equal(t, expected, response)
}
