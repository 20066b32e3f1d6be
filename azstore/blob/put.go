package blob

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

type putParams struct {
	containerName   string
	blobName        string
	body            []byte
	contentType     string
	contentMD5      string
	metadata        azstore.Metadata
	leaseID         *azstore.LeaseID
	timeout         uint64
	clientRequestID string
}

// Put begins a request to upload a block blob, the container name, blob name and body must be supplied before the
// request can be finalized. An existing blob with the same name is overwritten.
func Put(client *azstore.Client) PutContainerStage {
	return PutContainerStage{client: client}
}

// PutContainerStage is a blob upload request which still requires the container name.
type PutContainerStage struct {
	client *azstore.Client
	params putParams
}

// WithContainerName sets the name of the container to upload into.
func (s PutContainerStage) WithContainerName(name string) PutBlobStage {
	s.params.containerName = name
	return PutBlobStage(s)
}

// WithContentType sets the content type stored with the blob, the default is 'application/octet-stream'.
func (s PutContainerStage) WithContentType(contentType string) PutContainerStage {
	s.params.contentType = contentType
	return s
}

// WithContentMD5 sets the base64 encoded MD5 of the body, the service recomputes and verifies it on arrival.
func (s PutContainerStage) WithContentMD5(contentMD5 string) PutContainerStage {
	s.params.contentMD5 = contentMD5
	return s
}

// WithMetadata sets the user defined metadata stored with the blob.
func (s PutContainerStage) WithMetadata(metadata azstore.Metadata) PutContainerStage {
	s.params.metadata = metadata
	return s
}

// WithLeaseID supplies the active lease id, required when overwriting a leased blob.
func (s PutContainerStage) WithLeaseID(leaseID azstore.LeaseID) PutContainerStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s PutContainerStage) WithTimeout(timeout uint64) PutContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s PutContainerStage) WithClientRequestID(id string) PutContainerStage {
	s.params.clientRequestID = id
	return s
}

// PutBlobStage is a blob upload request which still requires the blob name.
type PutBlobStage struct {
	client *azstore.Client
	params putParams
}

// WithBlobName sets the name of the blob to upload.
func (s PutBlobStage) WithBlobName(name string) PutBodyStage {
	s.params.blobName = name
	return PutBodyStage(s)
}

// WithContentType sets the content type stored with the blob, the default is 'application/octet-stream'.
func (s PutBlobStage) WithContentType(contentType string) PutBlobStage {
	s.params.contentType = contentType
	return s
}

// WithContentMD5 sets the base64 encoded MD5 of the body, the service recomputes and verifies it on arrival.
func (s PutBlobStage) WithContentMD5(contentMD5 string) PutBlobStage {
	s.params.contentMD5 = contentMD5
	return s
}

// WithMetadata sets the user defined metadata stored with the blob.
func (s PutBlobStage) WithMetadata(metadata azstore.Metadata) PutBlobStage {
	s.params.metadata = metadata
	return s
}

// WithLeaseID supplies the active lease id, required when overwriting a leased blob.
func (s PutBlobStage) WithLeaseID(leaseID azstore.LeaseID) PutBlobStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s PutBlobStage) WithTimeout(timeout uint64) PutBlobStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s PutBlobStage) WithClientRequestID(id string) PutBlobStage {
	s.params.clientRequestID = id
	return s
}

// PutBodyStage is a blob upload request which still requires the body.
type PutBodyStage struct {
	client *azstore.Client
	params putParams
}

// WithBody sets the content of the blob, an empty body creates an empty blob.
func (s PutBodyStage) WithBody(body []byte) PutBuilder {
	s.params.body = body
	return PutBuilder(s)
}

// WithContentType sets the content type stored with the blob, the default is 'application/octet-stream'.
func (s PutBodyStage) WithContentType(contentType string) PutBodyStage {
	s.params.contentType = contentType
	return s
}

// WithContentMD5 sets the base64 encoded MD5 of the body, the service recomputes and verifies it on arrival.
func (s PutBodyStage) WithContentMD5(contentMD5 string) PutBodyStage {
	s.params.contentMD5 = contentMD5
	return s
}

// WithMetadata sets the user defined metadata stored with the blob.
func (s PutBodyStage) WithMetadata(metadata azstore.Metadata) PutBodyStage {
	s.params.metadata = metadata
	return s
}

// WithLeaseID supplies the active lease id, required when overwriting a leased blob.
func (s PutBodyStage) WithLeaseID(leaseID azstore.LeaseID) PutBodyStage {
	s.params.leaseID = &leaseID
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s PutBodyStage) WithTimeout(timeout uint64) PutBodyStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s PutBodyStage) WithClientRequestID(id string) PutBodyStage {
	s.params.clientRequestID = id
	return s
}

// PutBuilder is a fully specified blob upload request.
type PutBuilder struct {
	client *azstore.Client
	params putParams
}

// WithContentType sets the content type stored with the blob, the default is 'application/octet-stream'.
func (b PutBuilder) WithContentType(contentType string) PutBuilder {
	b.params.contentType = contentType
	return b
}

// WithContentMD5 sets the base64 encoded MD5 of the body, the service recomputes and verifies it on arrival.
func (b PutBuilder) WithContentMD5(contentMD5 string) PutBuilder {
	b.params.contentMD5 = contentMD5
	return b
}

// WithMetadata sets the user defined metadata stored with the blob.
func (b PutBuilder) WithMetadata(metadata azstore.Metadata) PutBuilder {
	b.params.metadata = metadata
	return b
}

// WithLeaseID supplies the active lease id, required when overwriting a leased blob.
func (b PutBuilder) WithLeaseID(leaseID azstore.LeaseID) PutBuilder {
	b.params.leaseID = &leaseID
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b PutBuilder) WithTimeout(timeout uint64) PutBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b PutBuilder) WithClientRequestID(id string) PutBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request.
func (b PutBuilder) Finalize(ctx context.Context) (*PutResponse, error) {
	values := restcli.NewValues()
	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	headers[azstore.HeaderBlobType] = string(azstore.BlobTypeBlock)

	if b.params.contentMD5 != "" {
		headers[azstore.HeaderContentMD5] = b.params.contentMD5
	}

	azstore.SetMetadataHeaders(headers, b.params.metadata)
	azstore.SetLeaseID(headers, b.params.leaseID)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	contentType := restcli.ContentTypeOctetStream
	if b.params.contentType != "" {
		contentType = restcli.ContentType(b.params.contentType)
	}

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodPut,
		Endpoint:           restcli.Endpoint("/%s/%s").Format(b.params.containerName, b.params.blobName),
		Body:               b.params.body,
		ContentType:        contentType,
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusCreated,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to put blob: %w", err)
	}

	return putResponseFromHeaders(response.Header)
}

// PutResponse is the decoded response to a blob upload, the content MD5 is the one computed by the service and may be
// compared against a local digest to verify the upload.
type PutResponse struct {
	azstore.RequestInfo

	ETag            string
	LastModified    time.Time
	ContentMD5      string
	ServerEncrypted bool
}

func putResponseFromHeaders(header http.Header) (*PutResponse, error) {
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

	contentMD5, err := azstore.GetHeader(header, azstore.HeaderContentMD5)
	if err != nil {
		return nil, err
	}

	serverEncrypted, err := azstore.GetBoolHeader(header, azstore.HeaderRequestServerEncrypted)
	if err != nil {
		return nil, err
	}

	put := &PutResponse{
		RequestInfo:     info,
		ETag:            eTag,
		LastModified:    lastModified,
		ContentMD5:      contentMD5,
		ServerEncrypted: serverEncrypted,
	}

	return put, nil
}
