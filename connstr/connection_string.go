// Package connstr provides parsing of Azure storage connection strings into the account, credential and endpoint
// parts used to bootstrap a storage client.
package connstr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchbase/azure-rest/aprov"
)

const (
	// DefaultProtocol is the scheme used to derive service endpoints when 'DefaultEndpointsProtocol' is not supplied.
	DefaultProtocol = "https"

	// DefaultEndpointSuffix is the DNS suffix for the public Azure cloud, used to derive service endpoints when
	// 'EndpointSuffix' is not supplied.
	DefaultEndpointSuffix = "core.windows.net"

	// EmulatorBlobEndpoint is the path style blob endpoint exposed by the local storage emulator.
	EmulatorBlobEndpoint = "http://127.0.0.1:10000/" + aprov.EmulatorAccountName

	// EmulatorTableEndpoint is the path style table endpoint exposed by the local storage emulator.
	EmulatorTableEndpoint = "http://127.0.0.1:10002/" + aprov.EmulatorAccountName
)

var (
	// ErrInvalidConnectionString is returned if the connection string is structurally invalid i.e. it contains a part
	// which isn't a 'key=value' pair.
	ErrInvalidConnectionString = errors.New("invalid connection string")

	// ErrBadProtocol is returned if the connection string supplies an endpoints protocol which is neither 'http' nor
	// 'https'.
	ErrBadProtocol = errors.New("expected the endpoints protocol to be one of 'http' or 'https'")

	// ErrMissingAccountName is returned at resolution when the connection string doesn't identify a storage account.
	ErrMissingAccountName = errors.New("connection string does not contain an account name")
)

// ConnectionString represents a parsed storage connection string, values are verbatim from the input; see 'Resolve'
// for the conversion into usable account/endpoint values.
type ConnectionString struct {
	// Protocol is the value of 'DefaultEndpointsProtocol', may be empty in which case https is assumed.
	Protocol string

	// AccountName is the name of the storage account being addressed.
	AccountName string

	// AccountKey is the base64 encoded shared key for the account, may be empty when another authentication mechanism
	// is going to be used.
	AccountKey string

	// EndpointSuffix overrides the public cloud DNS suffix, used for sovereign clouds e.g. 'core.chinacloudapi.cn'.
	EndpointSuffix string

	// BlobEndpoint is an explicit blob service endpoint which takes precedence over the derived one.
	BlobEndpoint string

	// TableEndpoint is an explicit table service endpoint which takes precedence over the derived one.
	TableEndpoint string

	// UseDevelopmentStorage indicates the well known local emulator account should be used, all other values are
	// ignored when set.
	UseDevelopmentStorage bool
}

// Parse the given connection string and perform first tier validation i.e. it's possible for a parsed connection
// string to fail when the 'Resolve' function is called.
func Parse(connectionString string) (*ConnectionString, error) {
	parsed := &ConnectionString{}

	for _, part := range strings.Split(connectionString, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, found := strings.Cut(part, "=")
		if !found || key == "" || value == "" {
			return nil, ErrInvalidConnectionString
		}

		// Settings we don't support, for example 'QueueEndpoint', are skipped without error
		switch key {
		case "DefaultEndpointsProtocol":
			parsed.Protocol = value
		case "AccountName":
			parsed.AccountName = value
		case "AccountKey":
			parsed.AccountKey = value
		case "EndpointSuffix":
			parsed.EndpointSuffix = value
		case "BlobEndpoint":
			parsed.BlobEndpoint = value
		case "TableEndpoint":
			parsed.TableEndpoint = value
		case "UseDevelopmentStorage":
			parsed.UseDevelopmentStorage = value == "true"
		}
	}

	if parsed.Protocol != "" && parsed.Protocol != "http" && parsed.Protocol != "https" {
		return nil, ErrBadProtocol
	}

	return parsed, nil
}

// Resolve the current connection string into the concrete account/endpoint values required to bootstrap a client.
// Will perform additional validation, once resolved the connection string is valid and can be used.
func (c *ConnectionString) Resolve() (*ResolvedConnectionString, error) {
	if c.UseDevelopmentStorage {
		return &ResolvedConnectionString{
			AccountName:   aprov.EmulatorAccountName,
			AccountKey:    aprov.EmulatorAccountKey,
			BlobEndpoint:  EmulatorBlobEndpoint,
			TableEndpoint: EmulatorTableEndpoint,
		}, nil
	}

	if c.AccountName == "" {
		return nil, ErrMissingAccountName
	}

	var (
		protocol = c.Protocol
		suffix   = c.EndpointSuffix
	)

	if protocol == "" {
		protocol = DefaultProtocol
	}

	if suffix == "" {
		suffix = DefaultEndpointSuffix
	}

	resolved := &ResolvedConnectionString{
		AccountName:   c.AccountName,
		AccountKey:    c.AccountKey,
		BlobEndpoint:  strings.TrimSuffix(c.BlobEndpoint, "/"),
		TableEndpoint: strings.TrimSuffix(c.TableEndpoint, "/"),
	}

	if resolved.BlobEndpoint == "" {
		resolved.BlobEndpoint = fmt.Sprintf("%s://%s.blob.%s", protocol, c.AccountName, suffix)
	}

	if resolved.TableEndpoint == "" {
		resolved.TableEndpoint = fmt.Sprintf("%s://%s.table.%s", protocol, c.AccountName, suffix)
	}

	return resolved, nil
}

// ResolvedConnectionString is similar to a 'ConnectionString', however, endpoints are resolved i.e. defaults are
// applied and the values may be used directly to address the storage services.
type ResolvedConnectionString struct {
	// AccountName is the name of the storage account being addressed.
	AccountName string

	// AccountKey is the base64 encoded shared key, may be empty when another authentication mechanism is going to be
	// used.
	AccountKey string

	// BlobEndpoint is the blob service URL without a trailing slash.
	BlobEndpoint string

	// TableEndpoint is the table service URL without a trailing slash.
	TableEndpoint string
}
