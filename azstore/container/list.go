package container

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
	prefix          string
	marker          string
	maxResults      uint32
	includeMetadata bool
	timeout         uint64
	clientRequestID string
}

// List begins a request for a page of the containers in the account, there are no mandatory parameters so the request
// may be finalized immediately.
func List(client *azstore.Client) ListBuilder {
	return ListBuilder{client: client}
}

// ListBuilder is a container listing request.
type ListBuilder struct {
	client *azstore.Client
	params listParams
}

// WithPrefix restricts the listing to containers whose name begins with the given prefix.
func (b ListBuilder) WithPrefix(prefix string) ListBuilder {
	b.params.prefix = prefix
	return b
}

// WithMarker resumes the listing from the 'NextMarker' returned by a previous page.
func (b ListBuilder) WithMarker(marker string) ListBuilder {
	b.params.marker = marker
	return b
}

// WithMaxResults caps the number of containers returned in this page.
func (b ListBuilder) WithMaxResults(maxResults uint32) ListBuilder {
	b.params.maxResults = maxResults
	return b
}

// WithMetadata includes each container's user metadata in the listing.
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

// Finalize dispatches the request, decoding the 'EnumerationResults' body.
func (b ListBuilder) Finalize(ctx context.Context) (*ListResponse, error) {
	values := restcli.NewValues().Add("comp", "list")
	azstore.AppendPrefix(values, b.params.prefix)
	azstore.AppendMarker(values, b.params.marker)
	azstore.AppendMaxResults(values, b.params.maxResults)

	if b.params.includeMetadata {
		values.Add("include", "metadata")
	}

	azstore.AppendTimeout(values, b.params.timeout)

	headers := make(map[string]string)
	azstore.SetClientRequestID(headers, b.params.clientRequestID)

	request := &restcli.Request{
		Service:            aprov.ServiceBlob,
		Method:             http.MethodGet,
		Endpoint:           "/",
		QueryParameters:    values,
		Header:             headers,
		ExpectedStatusCode: http.StatusOK,
	}

	response, err := b.client.Do(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	return listResponseFromResponse(response)
}

// ListResponse is the decoded response to a container listing, a non-empty 'NextMarker' means another page is
// available.
type ListResponse struct {
	azstore.RequestInfo
	Containers []Container
	Prefix     string
	Marker     string
	MaxResults int64
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

	elements, err := azxml.Traverse(root, "Containers", "Container")
	if err != nil {
		return nil, err
	}

	containers := make([]Container, 0, len(elements))

	for _, element := range elements {
		decoded, err := FromElement(element)
		if err != nil {
			return nil, err
		}

		containers = append(containers, *decoded)
	}

	list := &ListResponse{RequestInfo: info, Containers: containers}

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

	if nextMarker, err := azxml.CastOptional(root, azxml.ParseString, "NextMarker"); err != nil {
		return nil, err
	} else if nextMarker != nil {
		list.NextMarker = *nextMarker
	}

	return list, nil
}
