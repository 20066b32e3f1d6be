// Package aprov provides the interface, and useful implementations which provide authentication for requests
// dispatched to the Azure storage services.
package aprov

import "net/http"

// Service indicates which storage service a request is bound for, the shared key signature scheme differs between
// them.
type Service uint8

const (
	// ServiceBlob covers requests bound for the blob service, signed using the full canonical header/resource form.
	ServiceBlob Service = iota

	// ServiceTable covers requests bound for the table service, which signs a reduced canonical form.
	ServiceTable
)

// Provider is an interface which defines basic functions allowing access credentials/information required to
// authenticate against an Azure storage account.
type Provider interface {
	// SignRequest authorizes the given request in place, for example by attaching an 'Authorization' header.
	//
	// NOTE: Signing must take place after all other headers have been set, schemes such as shared key cover them with
	// the signature.
	SignRequest(service Service, req *http.Request) error

	// GetUserAgent returns the value used as the 'User-Agent' header for all requests.
	GetUserAgent() string
}
