package azstore

import (
	"github.com/couchbase/azure-rest/ptrutil"
	"github.com/couchbase/azure-rest/restcli"
)

// newDefaultHTTPTimeouts returns the default timeouts used by the underlying HTTP client/transport.
func newDefaultHTTPTimeouts() restcli.HTTPTimeouts {
	return restcli.HTTPTimeouts{
		Dialer:                  ptrutil.ToPtr(restcli.DefaultDialerTimeout),
		KeepAlive:               ptrutil.ToPtr(restcli.DefaultDialerKeepAlive),
		TransportIdleConn:       ptrutil.ToPtr(restcli.DefaultTransportIdleConnTimeout),
		TransportContinue:       ptrutil.ToPtr(restcli.DefaultTransportContinueTimeout),
		TransportResponseHeader: ptrutil.ToPtr(restcli.DefaultResponseHeaderTimeout),
		TransportTLSHandshake:   ptrutil.ToPtr(restcli.DefaultTLSHandshakeTimeout),
	}
}
