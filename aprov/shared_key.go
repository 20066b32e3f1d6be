package aprov

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// EmulatorAccountName is the well known account name accepted by the Azure storage emulator.
	EmulatorAccountName = "devstoreaccount1"

	// EmulatorAccountKey is the well known account key accepted by the Azure storage emulator.
	EmulatorAccountKey = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// SharedKey implements the 'Provider' interface and signs requests using the storage account access key.
type SharedKey struct {
	account   string
	key       []byte
	userAgent string
}

var _ Provider = (*SharedKey)(nil)

// NewSharedKey creates a provider which signs requests using the given base64 encoded account key.
func NewSharedKey(account, key, userAgent string) (*SharedKey, error) {
	decoded, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("failed to decode account key: %w", err)
	}

	return &SharedKey{account: account, key: decoded, userAgent: userAgent}, nil
}

// NewEmulatorSharedKey creates a provider which signs requests using the well known emulator credentials.
func NewEmulatorSharedKey(userAgent string) *SharedKey {
	// The emulator key is a known constant, it always decodes
	key, _ := base64.StdEncoding.DecodeString(EmulatorAccountKey)

	return &SharedKey{account: EmulatorAccountName, key: key, userAgent: userAgent}
}

// SignRequest attaches a shared key 'Authorization' header to the given request.
func (s *SharedKey) SignRequest(service Service, req *http.Request) error {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(s.stringToSign(service, req)))

	req.Header.Set("Authorization",
		fmt.Sprintf("SharedKey %s:%s", s.account, base64.StdEncoding.EncodeToString(mac.Sum(nil))))

	return nil
}

func (s *SharedKey) GetUserAgent() string {
	return s.userAgent
}

// stringToSign assembles the canonical representation of the given request which the service expects to have been
// signed.
func (s *SharedKey) stringToSign(service Service, req *http.Request) string {
	if service == ServiceTable {
		return strings.Join([]string{
			req.Method,
			req.Header.Get("Content-MD5"),
			req.Header.Get("Content-Type"),
			req.Header.Get("x-ms-date"),
			s.canonicalizedResourceTable(req),
		}, "\n")
	}

	parts := []string{
		req.Method,
		req.Header.Get("Content-Encoding"),
		req.Header.Get("Content-Language"),
		contentLength(req),
		req.Header.Get("Content-MD5"),
		req.Header.Get("Content-Type"),
		req.Header.Get("Date"),
		req.Header.Get("If-Modified-Since"),
		req.Header.Get("If-Match"),
		req.Header.Get("If-None-Match"),
		req.Header.Get("If-Unmodified-Since"),
		req.Header.Get("Range"),
	}

	if headers := s.canonicalizedHeaders(req); headers != "" {
		parts = append(parts, headers)
	}

	parts = append(parts, s.canonicalizedResource(req))

	return strings.Join(parts, "\n")
}

// canonicalizedHeaders returns the 'x-ms-' prefixed headers of the given request in the form the service signs them,
// lowercased then sorted lexicographically.
func (s *SharedKey) canonicalizedHeaders(req *http.Request) string {
	grouped := make(map[string][]string)

	for name, values := range req.Header {
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, "x-ms-") {
			continue
		}

		for _, value := range values {
			grouped[lower] = append(grouped[lower], strings.TrimSpace(value))
		}
	}

	names := maps.Keys(grouped)
	slices.Sort(names)

	lines := make([]string, 0, len(names))

	for _, name := range names {
		lines = append(lines, name+":"+strings.Join(grouped[name], ","))
	}

	return strings.Join(lines, "\n")
}

// canonicalizedResource returns the account qualified resource path of the given request followed by its query
// parameters, sorted with their values comma separated.
//
// NOTE: The path portion must be encoded exactly as it is dispatched in the request line.
func (s *SharedKey) canonicalizedResource(req *http.Request) string {
	var builder strings.Builder

	builder.WriteString("/")
	builder.WriteString(s.account)
	builder.WriteString(req.URL.EscapedPath())

	query := req.URL.Query()

	names := maps.Keys(query)
	slices.Sort(names)

	for _, name := range names {
		values := query[name]
		slices.Sort(values)

		builder.WriteString("\n")
		builder.WriteString(strings.ToLower(name))
		builder.WriteString(":")
		builder.WriteString(strings.Join(values, ","))
	}

	return builder.String()
}

// canonicalizedResourceTable returns the reduced resource form signed for table service requests, only the 'comp'
// query parameter is included.
func (s *SharedKey) canonicalizedResourceTable(req *http.Request) string {
	resource := "/" + s.account + req.URL.EscapedPath()

	if comp := req.URL.Query().Get("comp"); comp != "" {
		resource += "?comp=" + comp
	}

	return resource
}

// contentLength returns the length of the request body as signed, zero length bodies sign as the empty string.
func contentLength(req *http.Request) string {
	if req.ContentLength <= 0 {
		return ""
	}

	return strconv.FormatInt(req.ContentLength, 10)
}
