package envvar

import (
	"testing"
	"time"

	"github.com/couchbase/azure-rest/ptrutil"
	"github.com/couchbase/azure-rest/restcli"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPTimeouts(t *testing.T) {
	type test struct {
		name             string
		envVarValue      string
		expectedTimeouts restcli.HTTPTimeouts
	}

	var (
		defaultDialer                  = ptrutil.ToPtr(time.Duration(1))
		defaultKeepAlive               = ptrutil.ToPtr(time.Duration(2))
		defaultTransportIdleConn       = ptrutil.ToPtr(time.Duration(3))
		defaultTransportContinue       = ptrutil.ToPtr(time.Duration(4))
		defaultTransportResponseHeader = ptrutil.ToPtr(time.Duration(5))
		defaultTransportTLSHandshake   = ptrutil.ToPtr(time.Duration(6))
	)

	defaultTimeouts := restcli.HTTPTimeouts{
		Dialer:                  defaultDialer,
		KeepAlive:               defaultKeepAlive,
		TransportIdleConn:       defaultTransportIdleConn,
		TransportContinue:       defaultTransportContinue,
		TransportResponseHeader: defaultTransportResponseHeader,
		TransportTLSHandshake:   defaultTransportTLSHandshake,
	}

	envVar := "AZURE_REST_CUSTOMTEST_HTTP_TIMEOUTS"

	tests := []*test{
		{
			name:             "EnvVariableNotSet",
			expectedTimeouts: defaultTimeouts,
		},
		{
			name:        "OneTimeoutSet",
			envVarValue: `{"dialer":"1s"}`,
			expectedTimeouts: restcli.HTTPTimeouts{
				Dialer:                  ptrutil.ToPtr(time.Second),
				KeepAlive:               defaultKeepAlive,
				TransportIdleConn:       defaultTransportIdleConn,
				TransportContinue:       defaultTransportContinue,
				TransportResponseHeader: defaultTransportResponseHeader,
				TransportTLSHandshake:   defaultTransportTLSHandshake,
			},
		},
		{
			name: "AllTimeoutsSet",
			envVarValue: `{"dialer":"1s", "keep_alive":"10s", "transport_idle_conn":"100s", "transport_continue":"1m"` +
				`, "transport_response_header":"10m", "transport_tls_handshake":"100m"}`,
			expectedTimeouts: restcli.HTTPTimeouts{
				Dialer:                  ptrutil.ToPtr(time.Second),
				KeepAlive:               ptrutil.ToPtr(10 * time.Second),
				TransportIdleConn:       ptrutil.ToPtr(100 * time.Second),
				TransportContinue:       ptrutil.ToPtr(time.Minute),
				TransportResponseHeader: ptrutil.ToPtr(10 * time.Minute),
				TransportTLSHandshake:   ptrutil.ToPtr(100 * time.Minute),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.envVarValue != "" {
				t.Setenv(envVar, test.envVarValue)
			}

			timeouts, err := GetHTTPTimeouts(envVar, defaultTimeouts)

			require.NoError(t, err)
			require.Equal(t, test.expectedTimeouts, timeouts)
		})
	}
}

func TestGetHTTPTimeoutsInvalidJSON(t *testing.T) {
	envVar := "AZURE_REST_CUSTOMTEST_HTTP_TIMEOUTS"

	t.Setenv(envVar, `{"dialer":"not a duration"}`)

	_, err := GetHTTPTimeouts(envVar, restcli.HTTPTimeouts{})
	require.Error(t, err)
}
