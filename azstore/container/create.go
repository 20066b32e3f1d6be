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

// createParams collects the request parameters for a container creation. Stages hold it by value, reusing an earlier
// stage never observes a later mutation.
type createParams struct {
	containerName   string
	publicAccess    azstore.PublicAccess
	metadata        azstore.Metadata
	timeout         uint64
	clientRequestID string
}

// Create begins a request to create a new container, the container name and public access level must be supplied
// before the request can be finalized.
func Create(client *azstore.Client) CreateContainerStage {
	return CreateContainerStage{client: client}
}

// CreateContainerStage is a container creation request which still requires the container name.
type CreateContainerStage struct {
	client *azstore.Client
	params createParams
}

// WithContainerName sets the name of the container to create.
func (s CreateContainerStage) WithContainerName(name string) CreateAccessStage {
	s.params.containerName = name
	return CreateAccessStage(s)
}

// WithMetadata attaches user metadata to the new container.
func (s CreateContainerStage) WithMetadata(metadata azstore.Metadata) CreateContainerStage {
	s.params.metadata = metadata
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s CreateContainerStage) WithTimeout(timeout uint64) CreateContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s CreateContainerStage) WithClientRequestID(id string) CreateContainerStage {
	s.params.clientRequestID = id
	return s
}

// CreateAccessStage is a container creation request which still requires the public access level.
type CreateAccessStage struct {
	client *azstore.Client
	params createParams
}

// WithPublicAccess sets the level of anonymous access to the new container.
func (s CreateAccessStage) WithPublicAccess(access azstore.PublicAccess) CreateBuilder {
	s.params.publicAccess = access
	return CreateBuilder(s)
}

// WithMetadata attaches user metadata to the new container.
func (s CreateAccessStage) WithMetadata(metadata azstore.Metadata) CreateAccessStage {
	s.params.metadata = metadata
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s CreateAccessStage) WithTimeout(timeout uint64) CreateAccessStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s CreateAccessStage) WithClientRequestID(id string) CreateAccessStage {
	s.params.clientRequestID = id
	return s
}

// CreateBuilder is a fully specified container creation request.
type CreateBuilder struct {
	client *azstore.Client
	params createParams
}

// WithMetadata attaches user metadata to the new container.
func (b CreateBuilder) WithMetadata(metadata azstore.Metadata) CreateBuilder {
	b.params.metadata = metadata
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b CreateBuilder) WithTimeout(timeout uint64) CreateBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b CreateBuilder) WithClientRequestID(id string) CreateBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, creating a container which already exists surfaces as a 'restcli.ConflictError'.
func (b CreateBuilder) Finalize(ctx context.Context) (*CreateResponse, error) {
	values := restcli.NewValues().Add("restype", "container")
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetPublicAccess(headers, b.params.publicAccess)
	azstore.SetMetadataHeaders(headers, b.params.metadata)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodPut,
		Endpoint:           restcli.Endpoint("/%s").Format(b.params.containerName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusCreated,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return createResponseFromHeaders(response.Header)
}

// CreateResponse is the decoded response to a container creation.
type CreateResponse struct {
	azstore.RequestInfo
	ETag         string
	LastModified time.Time
}

func createResponseFromHeaders(header http.Header) (*CreateResponse, error) {
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

	return &CreateResponse{RequestInfo: info, ETag: eTag, LastModified: lastModified}, nil
}
