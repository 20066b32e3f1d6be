package blob

import (
	"context"
	"fmt"
	"net/http"

	"github.com/couchbase/azure-rest/aprov"
	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/azxml"
	"github.com/couchbase/azure-rest/restcli"
)

type listParams struct {
	containerName   string
	prefix          string
	marker          string
	maxResults      uint32
	delimiter       string
	includeMetadata bool
	timeout         uint64
	clientRequestID string
}

// List begins a request to list the blobs within a container, the container name must be supplied before the request
// can be finalized.
func List(client *azstore.Client) ListContainerStage {
	return ListContainerStage{client: client}
}

// ListContainerStage is a blob listing request which still requires the container name.
type ListContainerStage struct {
	client *azstore.Client
	params listParams
}

// WithContainerName sets the name of the container to list.
func (s ListContainerStage) WithContainerName(name string) ListBuilder {
	s.params.containerName = name
	return ListBuilder(s)
}

// WithPrefix restricts the listing to blobs whose names begin with the given prefix.
func (s ListContainerStage) WithPrefix(prefix string) ListContainerStage {
	s.params.prefix = prefix
	return s
}

// WithMarker resumes the listing from the continuation marker returned by a previous page.
func (s ListContainerStage) WithMarker(marker string) ListContainerStage {
	s.params.marker = marker
	return s
}

// WithMaxResults caps the number of blobs returned in a single page.
func (s ListContainerStage) WithMaxResults(maxResults uint32) ListContainerStage {
	s.params.maxResults = maxResults
	return s
}

// WithDelimiter groups the listing, names below the delimiter are rolled up into the blob prefixes of the response.
func (s ListContainerStage) WithDelimiter(delimiter string) ListContainerStage {
	s.params.delimiter = delimiter
	return s
}

// WithMetadata includes the user defined metadata of each blob in the listing.
func (s ListContainerStage) WithMetadata() ListContainerStage {
	s.params.includeMetadata = true
	return s
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (s ListContainerStage) WithTimeout(timeout uint64) ListContainerStage {
	s.params.timeout = timeout
	return s
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (s ListContainerStage) WithClientRequestID(id string) ListContainerStage {
	s.params.clientRequestID = id
	return s
}

// ListBuilder is a fully specified blob listing request.
type ListBuilder struct {
	client *azstore.Client
	params listParams
}

// WithPrefix restricts the listing to blobs whose names begin with the given prefix.
func (b ListBuilder) WithPrefix(prefix string) ListBuilder {
	b.params.prefix = prefix
	return b
}

// WithMarker resumes the listing from the continuation marker returned by a previous page.
func (b ListBuilder) WithMarker(marker string) ListBuilder {
	b.params.marker = marker
	return b
}

// WithMaxResults caps the number of blobs returned in a single page.
func (b ListBuilder) WithMaxResults(maxResults uint32) ListBuilder {
	b.params.maxResults = maxResults
	return b
}

// WithDelimiter groups the listing, names below the delimiter are rolled up into the blob prefixes of the response.
func (b ListBuilder) WithDelimiter(delimiter string) ListBuilder {
	b.params.delimiter = delimiter
	return b
}

// WithMetadata includes the user defined metadata of each blob in the listing.
func (b ListBuilder) WithMetadata() ListBuilder {
	b.params.includeMetadata = true
	return b
}

// WithTimeout sets the server side processing timeout, in seconds, for the request.
func (b ListBuilder) WithTimeout(timeout uint64) ListBuilder {
	b.params.timeout = timeout
	return b
}

// WithClientRequestID sets the correlation id recorded in the service analytics logs.
func (b ListBuilder) WithClientRequestID(id string) ListBuilder {
	b.params.clientRequestID = id
	return b
}

// Finalize dispatches the request, a single page of results is returned and the next may be requested by passing
// 'NextMarker' to 'WithMarker'.
func (b ListBuilder) Finalize(ctx context.Context) (*ListResponse, error) {
	values := restcli.NewValues().Add("restype", "container").Add("comp", "list")
	azstore.AppendPrefix(values, b.params.prefix)
	azstore.AppendMarker(values, b.params.marker)
	azstore.AppendMaxResults(values, b.params.maxResults)
	azstore.AppendDelimiter(values, b.params.delimiter)

	if b.params.includeMetadata {
		values.Add("include", "metadata")
	}

	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodGet,
		Endpoint:           restcli.Endpoint("/%s").Format(b.params.containerName),
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}

	return listResponseFromResponse(response)
}

// ListResponse is the decoded response to a blob listing.
type ListResponse struct {
	azstore.RequestInfo

	Blobs []Blob

	// BlobPrefixes are the name groups rolled up under the requested delimiter, empty unless one was supplied.
	BlobPrefixes []string

	Prefix     string
	Marker     string
	MaxResults int64
	Delimiter  string
	NextMarker string
}

func listResponseFromResponse(response *restcli.Response) (*ListResponse, error) {
	info, err := azstore.RequestInfoFromHeaders(response.Header)
	if err != nil {
		return nil, err
	}

	root, err := azxml.Parse(response.Body)
	if err != nil {
		return nil, err
	}

	elements, err := azxml.Traverse(root, "Blobs", "Blob")
	if err != nil {
		return nil, err
	}

	blobs := make([]Blob, 0, len(elements))

	for _, element := range elements {
		decoded, err := FromElement(element)
		if err != nil {
			return nil, err
		}

		blobs = append(blobs, *decoded)
	}

	elements, err = azxml.Traverse(root, "Blobs", "BlobPrefix")
	if err != nil {
		return nil, err
	}

	prefixes := make([]string, 0, len(elements))

	for _, element := range elements {
		name, err := azxml.CastMust(element, azxml.ParseString, "Name")
		if err != nil {
			return nil, err
		}

		prefixes = append(prefixes, name)
	}

	list := &ListResponse{RequestInfo: info, Blobs: blobs, BlobPrefixes: prefixes}

	// The service echoes the paging parameters it applied, all are absent when defaulted
	if prefix, err := azxml.CastOptional(root, azxml.ParseString, "Prefix"); err != nil {
		return nil, err
	} else if prefix != nil {
		list.Prefix = *prefix
	}

	if marker, err := azxml.CastOptional(root, azxml.ParseString, "Marker"); err != nil {
		return nil, err
	} else if marker != nil {
		list.Marker = *marker
	}

	if maxResults, err := azxml.CastOptional(root, azstore.ParseInt64, "MaxResults"); err != nil {
		return nil, err
	} else if maxResults != nil {
		list.MaxResults = *maxResults
	}

	if delimiter, err := azxml.CastOptional(root, azxml.ParseString, "Delimiter"); err != nil {
		return nil, err
	} else if delimiter != nil {
		list.Delimiter = *delimiter
	}

	if nextMarker, err := azxml.CastOptional(root, azxml.ParseString, "NextMarker"); err != nil {
		return nil, err
	} else if nextMarker != nil {
		list.NextMarker = *nextMarker
	}

	return list, nil
}
