// Package container implements the typed container operations of the blob service. Each operation is started with a
// function taking the account client and built up through a chain of stage types, only a fully specified request
// exposes 'Finalize'.
package container

import (
	"net/http"
	"time"

	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/azxml"
)

// Container represents a container as reconstructed from a service response, either the property headers of a single
// container request or a '<Container>' listing element.
type Container struct {
	Name                  string
	LastModified          time.Time
	ETag                  string
	LeaseStatus           azstore.LeaseStatus
	LeaseState            azstore.LeaseState
	LeaseDuration         *azstore.LeaseDuration
	PublicAccess          azstore.PublicAccess
	HasImmutabilityPolicy bool
	HasLegalHold          bool
	Metadata              azstore.Metadata
}

// FromHeaders reconstructs a container from the property headers of a response, the name is taken from the caller
// since the services don't echo it.
func FromHeaders(name string, header http.Header) (*Container, error) {
	lastModified, err := azstore.GetTimeHeader(header, azstore.HeaderLastModified)
	if err != nil {
		return nil, err
	}

	eTag, err := azstore.GetHeader(header, azstore.HeaderETag)
	if err != nil {
		return nil, err
	}

	leaseStatus, err := azstore.GetTypedHeader(header, azstore.HeaderLeaseStatus, azstore.ParseLeaseStatus)
	if err != nil {
		return nil, err
	}

	leaseState, err := azstore.GetTypedHeader(header, azstore.HeaderLeaseState, azstore.ParseLeaseState)
	if err != nil {
		return nil, err
	}

	leaseDuration, err := azstore.GetOptionalHeader(header, azstore.HeaderLeaseDuration, azstore.ParseLeaseDuration)
	if err != nil {
		return nil, err
	}

	publicAccess, err := azstore.PublicAccessFromHeader(header)
	if err != nil {
		return nil, err
	}

	hasImmutabilityPolicy, err := azstore.GetBoolHeader(header, azstore.HeaderHasImmutabilityPolicy)
	if err != nil {
		return nil, err
	}

	hasLegalHold, err := azstore.GetBoolHeader(header, azstore.HeaderHasLegalHold)
	if err != nil {
		return nil, err
	}

	container := &Container{
		Name:                  name,
		LastModified:          lastModified,
		ETag:                  eTag,
		LeaseStatus:           leaseStatus,
		LeaseState:            leaseState,
		LeaseDuration:         leaseDuration,
		PublicAccess:          publicAccess,
		HasImmutabilityPolicy: hasImmutabilityPolicy,
		HasLegalHold:          hasLegalHold,
		Metadata:              azstore.MetadataFromHeaders(header),
	}

	return container, nil
}

// FromElement reconstructs a container from a '<Container>' element of a listing response.
func FromElement(element *azxml.Element) (*Container, error) {
	name, err := azxml.CastMust(element, azxml.ParseString, "Name")
	if err != nil {
		return nil, err
	}

	lastModified, err := azxml.CastMust(element, azstore.ParseDate, "Properties", "Last-Modified")
	if err != nil {
		return nil, err
	}

	eTag, err := azxml.CastMust(element, azxml.ParseString, "Properties", "Etag")
	if err != nil {
		return nil, err
	}

	leaseStatus, err := azxml.CastMust(element, azstore.ParseLeaseStatus, "Properties", "LeaseStatus")
	if err != nil {
		return nil, err
	}

	leaseState, err := azxml.CastMust(element, azstore.ParseLeaseState, "Properties", "LeaseState")
	if err != nil {
		return nil, err
	}

	leaseDuration, err := azxml.CastOptional(element, azstore.ParseLeaseDuration, "Properties", "LeaseDuration")
	if err != nil {
		return nil, err
	}

	publicAccess, err := azxml.CastOptional(element, azstore.ParsePublicAccess, "Properties", "PublicAccess")
	if err != nil {
		return nil, err
	}

	hasImmutabilityPolicy, err := azxml.CastMust(element, azstore.ParseBool, "Properties", "HasImmutabilityPolicy")
	if err != nil {
		return nil, err
	}

	hasLegalHold, err := azxml.CastMust(element, azstore.ParseBool, "Properties", "HasLegalHold")
	if err != nil {
		return nil, err
	}

	metadata, err := azstore.MetadataFromElement(element)
	if err != nil {
		return nil, err
	}

	container := &Container{
		Name:                  name,
		LastModified:          lastModified,
		ETag:                  eTag,
		LeaseStatus:           leaseStatus,
		LeaseState:            leaseState,
		LeaseDuration:         leaseDuration,
		PublicAccess:          azstore.PublicAccessNone,
		HasImmutabilityPolicy: hasImmutabilityPolicy,
		HasLegalHold:          hasLegalHold,
		Metadata:              metadata,
	}

	// Listings omit the access level for private containers
	if publicAccess != nil {
		container.PublicAccess = *publicAccess
	}

	return container, nil
}
