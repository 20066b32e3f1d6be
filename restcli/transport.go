package restcli

import (
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"time"
)

// HTTPTimeouts encapsulates the timeouts for a HTTP client into an object which can be parsed as an environment
// variable.
type HTTPTimeouts struct {
	Dialer                  *time.Duration
	KeepAlive               *time.Duration
	TransportIdleConn       *time.Duration
	TransportContinue       *time.Duration
	TransportResponseHeader *time.Duration
	TransportTLSHandshake   *time.Duration
}

func (ct *HTTPTimeouts) UnmarshalJSON(data []byte) error {
	type overlay struct {
		Dialer                  string `json:"dialer,omitempty"`
		KeepAlive               string `json:"keep_alive,omitempty"`
		TransportIdleConn       string `json:"transport_idle_conn,omitempty"`
		TransportContinue       string `json:"transport_continue,omitempty"`
		TransportResponseHeader string `json:"transport_response_header,omitempty"`
		TransportTLSHandshake   string `json:"transport_tls_handshake,omitempty"`
	}

	var decoded overlay

	err := json.Unmarshal(data, &decoded)
	if err != nil {
		return err
	}

	parse := func(duration string) (*time.Duration, error) {
		if duration == "" {
			return nil, nil
		}

		parsed, err := time.ParseDuration(duration)
		if err != nil {
			return nil, err
		}

		return &parsed, nil
	}

	ct.Dialer, err = parse(decoded.Dialer)
	if err != nil {
		return err
	}

	ct.KeepAlive, err = parse(decoded.KeepAlive)
	if err != nil {
		return err
	}

	ct.TransportIdleConn, err = parse(decoded.TransportIdleConn)
	if err != nil {
		return err
	}

	ct.TransportContinue, err = parse(decoded.TransportContinue)
	if err != nil {
		return err
	}

	ct.TransportResponseHeader, err = parse(decoded.TransportResponseHeader)
	if err != nil {
		return err
	}

	ct.TransportTLSHandshake, err = parse(decoded.TransportTLSHandshake)
	if err != nil {
		return err
	}

	return nil
}

// NewHTTPTransport returns a new HTTP transport using the given TLS config and timeouts.
func NewHTTPTransport(tlsConfig *tls.Config, timeouts HTTPTimeouts) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   timeoutOrDefault(timeouts.Dialer, DefaultDialerTimeout),
		KeepAlive: timeoutOrDefault(timeouts.KeepAlive, DefaultDialerKeepAlive),
	}

	return &http.Transport{
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		TLSClientConfig:       tlsConfig,
		DialContext:           dialer.DialContext,
		IdleConnTimeout:       timeoutOrDefault(timeouts.TransportIdleConn, DefaultTransportIdleConnTimeout),
		ExpectContinueTimeout: timeoutOrDefault(timeouts.TransportContinue, DefaultTransportContinueTimeout),
		ResponseHeaderTimeout: timeoutOrDefault(timeouts.TransportResponseHeader, DefaultResponseHeaderTimeout),
		TLSHandshakeTimeout:   timeoutOrDefault(timeouts.TransportTLSHandshake, DefaultTLSHandshakeTimeout),
	}
}

// timeoutOrDefault returns the given timeout if it's not nil, otherwise it returns the given default value.
func timeoutOrDefault(timeout *time.Duration, defaultTimeout time.Duration) time.Duration {
	if timeout != nil {
		return *timeout
	}

	return defaultTimeout
}
