package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type setMetadataParams struct {
	containerName   string
	metadata        azstore.Metadata
	leaseID         *azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// SetMetadata begins a request to replace the user metadata of a container, the container name and the new metadata
// must be supplied before the request can be finalized.
//
// NOTE: The service replaces the metadata wholesale, an empty set clears it.
func SetMetadata(client *azstore.Client) SetMetadataContainerStage {
	return SetMetadataContainerStage{client: client}
}

// SetMetadataContainerStage is a metadata replacement request which still requires the container name.
type SetMetadataContainerStage struct {
	client *azstore.Client
	params setMetadataParams
}

// WithContainerName sets the name of the container to replace the metadata of.
func (s SetMetadataContainerStage) WithContainerName(name string) SetMetadataValuesStage {
	s.params.containerName = name
	return SetMetadataValuesStage(s)
}

// WithLeaseID supplies the active lease id, required when the container is leased.
func (s SetMetadataContainerStage) WithLeaseID(leaseID azstore.LeaseID) SetMetadataContainerStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s SetMetadataContainerStage) WithTimeout(timeout uint64) SetMetadataContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s SetMetadataContainerStage) WithClientRequestID(id string) SetMetadataContainerStage {
	s.params.clientRequestID = id
	return s
}

// SetMetadataValuesStage is a metadata replacement request which still requires the replacement metadata.
type SetMetadataValuesStage struct {
	client *azstore.Client
	params setMetadataParams
}

// WithMetadata sets the metadata the container metadata is replaced with.
func (s SetMetadataValuesStage) WithMetadata(metadata azstore.Metadata) SetMetadataBuilder {
	s.params.metadata = metadata
	return SetMetadataBuilder(s)
}

// WithLeaseID supplies the active lease id, required when the container is leased.
func (s SetMetadataValuesStage) WithLeaseID(leaseID azstore.LeaseID) SetMetadataValuesStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s SetMetadataValuesStage) WithTimeout(timeout uint64) SetMetadataValuesStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s SetMetadataValuesStage) WithClientRequestID(id string) SetMetadataValuesStage {
	s.params.clientRequestID = id
	return s
}

// SetMetadataBuilder is a fully specified metadata replacement request.
type SetMetadataBuilder struct {
	client *azstore.Client
	params setMetadataParams
}

// WithLeaseID supplies the active lease id, required when the container is leased.
func (b SetMetadataBuilder) WithLeaseID(leaseID azstore.LeaseID) SetMetadataBuilder {
	b.params.leaseID = &leaseID
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b SetMetadataBuilder) WithTimeout(timeout uint64) SetMetadataBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b SetMetadataBuilder) WithClientRequestID(id string) SetMetadataBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request.
func (b SetMetadataBuilder) Finalize(ctx context.Context) (*SetMetadataResponse, error) {
	values := restcli.NewValues().Add("restype", "container").Add("comp", "metadata")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetMetadataHeaders(headers, b.params.metadata)
	azstore.SetLeaseID(headers, b.params.leaseID)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodPut,
		Endpoint:           restcli.Endpoint("/%s").Format(b.params.containerName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to set container metadata: %w", err)
	}

	return setMetadataResponseFromHeaders(response.Header)
}

// SetMetadataResponse is the decoded response to a metadata replacement.
type SetMetadataResponse struct {
	azstore.RequestInfo
	ETag         string
	LastModified time.Time
}

func setMetadataResponseFromHeaders(header http.Header) (*SetMetadataResponse, error) {
	info, err := azstore.RequestInfoFromHeaders(header)
	if err != nil {
		return nil, err
	}

	eTag, err := azstore.GetHeader(header, azstore.HeaderETag)
	if err != nil {
		return nil, err
	}

	lastModified, err := azstore.GetTimeHeader(header, azstore.HeaderLastModified)
	if err != nil {
		return nil, err
	}

	return &SetMetadataResponse{RequestInfo: info, ETag: eTag, LastModified: lastModified}, nil
}
