package blob

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

func TestRenewLease(t *testing.T) {
	client, requester := newTestClient(t)

	leaseID, err := azstore.ParseLeaseID(testLeaseID)
	require.NoError(t, err)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, aprov.ServiceBlob, request.Service)
			require.Equal(t, restcli.Method(http.MethodPut), request.Method)
			require.Equal(t, restcli.Endpoint("/beerfest/doc.txt"), request.Endpoint)
			require.Equal(t, "comp=lease", request.QueryParameters.Encode())
			require.Equal(t, http.StatusOK, request.ExpectedStatusCode)
			require.Equal(t, "renew", request.Header[azstore.HeaderLeaseAction])
			require.Equal(t, testLeaseID, request.Header[azstore.HeaderLeaseID])

			extra := map[string]string{azstore.HeaderLeaseID: testLeaseID}

			return &restcli.Response{StatusCode: http.StatusOK, Header: newLeaseHeader(extra)}, nil
		})

	response, err := RenewLease(client).
		WithContainerName("beerfest").
		WithBlobName("doc.txt").
		WithLeaseID(leaseID).
		Finalize(context.Background())
	require.NoError(t, err)

	expected := &RenewLeaseResponse{
		RequestInfo:  azstore.RequestInfo{RequestID: testRequestID, Date: testTime},
		ETag:         testETag,
		LastModified: testTime,
		LeaseID:      leaseID,
	}

	require.Equal(t, expected, response)
}

func TestRenewLeaseWithAllOptions(t *testing.T) {
	client, requester := newTestClient(t)

	leaseID, err := azstore.ParseLeaseID(testLeaseID)
	require.NoError(t, err)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *restcli.Request) (*restcli.Response, error) {
			require.Equal(t, "comp=lease&timeout=30", request.QueryParameters.Encode())
			require.Equal(t, "backup-0042", request.Header[azstore.HeaderClientRequestID])

			extra := map[string]string{azstore.HeaderLeaseID: testLeaseID}

			return &restcli.Response{StatusCode: http.StatusOK, Header: newLeaseHeader(extra)}, nil
		})

	_, err = RenewLease(client).
		WithTimeout(30).
		WithContainerName("beerfest").
		WithClientRequestID("backup-0042").
		WithBlobName("doc.txt").
		WithLeaseID(leaseID).
		Finalize(context.Background())
	require.NoError(t, err)
}

func TestRenewLeaseDispatchError(t *testing.T) {
	client, requester := newTestClient(t)

	requester.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	leaseID, err := azstore.ParseLeaseID(testLeaseID)
	require.NoError(t, err)

	_, err = RenewLease(client).
		WithContainerName("beerfest").
		WithBlobName("doc.txt").
		WithLeaseID(leaseID).
		Finalize(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorContains(t, err, "failed to renew lease")
}

func TestRenewLeaseMissingResponseHeader(t *testing.T) {
	client, requester := newTestClient(t)

	requester.
		EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *restcli.Request) (*restcli.Response, error) {
			return &restcli.Response{StatusCode: http.StatusOK, Header: newLeaseHeader(nil)}, nil
		})

	leaseID, err := azstore.ParseLeaseID(testLeaseID)
	require.NoError(t, err)

	_, err = RenewLease(client).
		WithContainerName("beerfest").
		WithBlobName("doc.txt").
		WithLeaseID(leaseID).
		Finalize(context.Background())

	var missingHeader *azstore.MissingHeaderError

	require.ErrorAs(t, err, &missingHeader)
	require.Equal(t, azstore.HeaderLeaseID, missingHeader.Header)
}
