package azstore

import (
	"context"
	"net/http"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/connstr"
	"github.com/couchbase/azure-rest/restcli"
)

const testConnectionString = "DefaultEndpointsProtocol=https;AccountName=beerfest;AccountKey=bXlhY2NvdW50a2V5"

func TestNewClient(t *testing.T) {
	client, err := NewClient(ClientOptions{ConnectionString: testConnectionString})
	require.NoError(t, err)
	require.NotNil(t, client.requester)
	require.Equal(t, "beerfest", client.Account())
	require.Equal(t, "https://beerfest.blob.core.windows.net", client.ServiceURL(aprov.ServiceBlob))
	require.Equal(t, "https://beerfest.table.core.windows.net", client.ServiceURL(aprov.ServiceTable))
}

func TestNewClientInvalidConnectionString(t *testing.T) {
	_, err := NewClient(ClientOptions{ConnectionString: "beerfest"})
	require.ErrorIs(t, err, connstr.ErrInvalidConnectionString)
}

func TestNewClientMissingAccountKey(t *testing.T) {
	_, err := NewClient(ClientOptions{ConnectionString: "AccountName=beerfest"})
	require.ErrorIs(t, err, ErrMissingAccountKey)
}

func TestNewClientWithExplicitProvider(t *testing.T) {
	options := ClientOptions{ConnectionString: "AccountName=beerfest", Provider: &aprov.Anonymous{}}

	client, err := NewClient(options)
	require.NoError(t, err)
	require.NotNil(t, client.requester)
}

func TestNewClientDefaultTimeout(t *testing.T) {
	client, err := NewClient(ClientOptions{ConnectionString: testConnectionString})
	require.NoError(t, err)

	requester, ok := client.requester.(*restcli.Client)
	require.True(t, ok)
	require.Equal(t, restcli.DefaultClientTimeout, requester.GetBaseHTTPClient().Timeout)
}

func TestNewClientTimeoutFromEnv(t *testing.T) {
	t.Setenv("AZURE_REST_CLIENT_TIMEOUT", "30s")

	client, err := NewClient(ClientOptions{ConnectionString: testConnectionString})
	require.NoError(t, err)

	requester, ok := client.requester.(*restcli.Client)
	require.True(t, ok)
	require.Equal(t, 30*time.Second, requester.GetBaseHTTPClient().Timeout)
}

func TestNewClientInvalidHTTPTimeoutsFromEnv(t *testing.T) {
	t.Setenv("AZURE_REST_HTTP_TIMEOUTS", `{"dialer":"sixty"}`)

	_, err := NewClient(ClientOptions{ConnectionString: testConnectionString})
	require.Error(t, err)
}

func TestNewEmulatorClient(t *testing.T) {
	client, err := NewEmulatorClient(ClientOptions{})
	require.NoError(t, err)
	require.Equal(t, aprov.EmulatorAccountName, client.Account())
	require.Equal(t, connstr.EmulatorBlobEndpoint, client.ServiceURL(aprov.ServiceBlob))
	require.Equal(t, connstr.EmulatorTableEndpoint, client.ServiceURL(aprov.ServiceTable))
}

func TestClientDo(t *testing.T) {
	var (
		ctrl      = gomock.NewController(t)
		requester = restcli.NewMockRequester(ctrl)
		client    = NewClientWithRequester(requester, "beerfest", "https://beerfest.blob.core.windows.net",
			"https://beerfest.table.core.windows.net")
	)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, "https://beerfest.table.core.windows.net", request.Host)
			require.Equal(t, APIVersion, request.Header[HeaderVersion])

			stamped, err := time.Parse(http.TimeFormat, request.Header[HeaderDate])
			require.NoError(t, err)
			require.WithinDuration(t, time.Now().UTC(), stamped, time.Minute)

			return &restcli.Response{StatusCode: http.StatusOK}, nil
		})

	response, err := client.Do(context.Background(), &restcli.Request{
		Service:            aprov.ServiceTable,
		Method:             http.MethodGet,
		Endpoint:           "/Tables",
		ExpectedStatusCode: http.StatusOK,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)
}

func TestClientDoPreservesExplicitValues(t *testing.T) {
	var (
		ctrl      = gomock.NewController(t)
		requester = restcli.NewMockRequester(ctrl)
		client    = NewClientWithRequester(requester, "beerfest", "https://beerfest.blob.core.windows.net",
			"https://beerfest.table.core.windows.net")
	)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, "http://127.0.0.1:10000/devstoreaccount1", request.Host)
			require.Equal(t, "Mon, 24 Aug 2026 10:00:00 GMT", request.Header[HeaderDate])
			require.Equal(t, APIVersion, request.Header[HeaderVersion])

			return &restcli.Response{StatusCode: http.StatusOK}, nil
		})

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Host:               "http://127.0.0.1:10000/devstoreaccount1",
		Method:             http.MethodGet,
		Endpoint:           "/container",
		Header:             map[string]string{HeaderDate: "Mon, 24 Aug 2026 10:00:00 GMT"},
		ExpectedStatusCode: http.StatusOK,
	}

	_, err := client.Do(context.Background(), request)
	require.NoError(t, err)
}
