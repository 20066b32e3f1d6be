package envvar

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/couchbase/azure-rest/ptrutil"
	"github.com/couchbase/azure-rest/restcli"
)

// GetHTTPTimeouts returns the timeouts that should be used for a HTTP client from the environment or uses provided
// default values.
//
// NOTE: This function does not guarantee that every field of the returned restcli.HTTPTimeouts is going to be non-nil,
// instead this is ensured by restcli.NewHTTPTransport().
func GetHTTPTimeouts(envVar string, defaults restcli.HTTPTimeouts) (restcli.HTTPTimeouts, error) {
	timeouts, err := getHTTPTimeoutsFromEnv(envVar)
	if err != nil {
		return restcli.HTTPTimeouts{}, fmt.Errorf("failed to get timeouts from environment: %w", err)
	}

	ptrutil.SetPtrIfNil(&timeouts.Dialer, defaults.Dialer)
	ptrutil.SetPtrIfNil(&timeouts.KeepAlive, defaults.KeepAlive)
	ptrutil.SetPtrIfNil(&timeouts.TransportIdleConn, defaults.TransportIdleConn)
	ptrutil.SetPtrIfNil(&timeouts.TransportContinue, defaults.TransportContinue)
	ptrutil.SetPtrIfNil(&timeouts.TransportResponseHeader, defaults.TransportResponseHeader)
	ptrutil.SetPtrIfNil(&timeouts.TransportTLSHandshake, defaults.TransportTLSHandshake)

	return timeouts, nil
}

// getHTTPTimeoutsFromEnv returns the timeouts that should be used for a HTTP client from the environment.
func getHTTPTimeoutsFromEnv(envVar string) (restcli.HTTPTimeouts, error) {
	env, ok := os.LookupEnv(envVar)
	if !ok {
		return restcli.HTTPTimeouts{}, nil
	}

	var timeouts restcli.HTTPTimeouts

	// Unmarshal only updates the timeouts provided using the environment variable, the rest remain nil and fall back
	// to the given defaults
	return timeouts, json.Unmarshal([]byte(env), &timeouts)
}
