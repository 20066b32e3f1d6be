package table

import (
	"net/http"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

const (
	testDate      = "Mon, 24 Aug 2026 10:00:00 GMT"
	testTimestamp = "2026-08-24T10:00:00.0000000Z"
	testRequestID = "5ea2f589-a985-484c-9355-bba2f4e3f801"
	testETag      = `W/"datetime'2026-08-24T10%3A00%3A00.0000000Z'"`
)

var testTime = time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T) (*azstore.Client, *restcli.MockRequester) {
	requester := restcli.NewMockRequester(gomock.NewController(t))

	client := azstore.NewClientWithRequester(requester, "beerfest", "https://beerfest.blob.core.windows.net",
		"https://beerfest.table.core.windows.net")

	return client, requester
}

func newResponseHeader(extra map[string]string) http.Header {
	header := http.Header{}
	header.Set(azstore.HeaderRequestID, testRequestID)
	header.Set(azstore.HeaderResponseDate, testDate)

	for name, value := range extra {
		header.Set(name, value)
	}

	return header
}

func requireODataHeaders(t *testing.T, headers map[string]string) {
	require.Equal(t, "application/json;odata=nometadata", headers[headerAccept])
	require.Equal(t, "3.0;NetFx", headers[headerDataServiceVersion])
	require.Equal(t, "3.0;NetFx", headers[headerMaxDataServiceVersion])
}
