package container

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

func TestDelete(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, aprov.ServiceBlob, request.Service)
			require.Equal(t, restcli.Method(http.MethodDelete), request.Method)
			require.Equal(t, restcli.Endpoint("/beerfest"), request.Endpoint)
			require.Equal(t, "restype=container", request.QueryParameters.Encode())
			require.Equal(t, http.StatusAccepted, request.ExpectedStatusCode)
			require.NotContains(t, request.Header, azstore.HeaderLeaseID)

			return &restcli.Response{StatusCode: http.StatusAccepted, Header: newResponseHeader(nil)}, nil
		})

	response, err := Delete(client).WithContainerName("beerfest").Finalize(context.Background())
	require.NoError(t, err)

	expected := &DeleteResponse{
		RequestInfo: azstore.RequestInfo{RequestID: testRequestID, Date: testTime},
	}

	require.Equal(t, expected, response)
}

func TestDeleteWithAllOptions(t *testing.T) {
	client, requester := newTestClient(t)

	leaseID, err := azstore.ParseLeaseID("67ab7eb6-f4a8-4336-b4a0-3b51a41db5a3")
	require.NoError(t, err)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, "restype=container&timeout=30", request.QueryParameters.Encode())
			require.Equal(t, leaseID.String(), request.Header[azstore.HeaderLeaseID])
			require.Equal(t, "backup-0042", request.Header[azstore.HeaderClientRequestID])

			return &restcli.Response{StatusCode: http.StatusAccepted, Header: newResponseHeader(nil)}, nil
		})

	_, err = Delete(client).
		WithLeaseID(leaseID).
		WithTimeout(30).
		WithClientRequestID("backup-0042").
		WithContainerName("beerfest").
		Finalize(context.Background())
	require.NoError(t, err)
}

func TestDeleteDispatchError(t *testing.T) {
	client, requester := newTestClient(t)

	requester.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	_, err := Delete(client).WithContainerName("beerfest").Finalize(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorContains(t, err, "failed to delete container")
}

func TestDeleteStagesCopyOnWrite(t *testing.T) {
	base := Delete(nil).WithContainerName("beerfest")

	withTimeout := base.WithTimeout(30)

	require.Zero(t, base.params.timeout)
	require.Equal(t, uint64(30), withTimeout.params.timeout)
}
