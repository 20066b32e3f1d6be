// Package table implements the typed table and entity operations of the table service. Each operation is started with
// a function taking the account client and built up through a chain of stage types, only a fully specified request
// exposes 'Finalize'. The table service exchanges OData JSON rather than the XML bodies of the blob service.
package table

import (
	"fmt"
	"strings"

	"github.com/couchbase/azure-rest/restcli"
)

const (
	headerAccept                = "Accept"
	headerDataServiceVersion    = "DataServiceVersion"
	headerMaxDataServiceVersion = "MaxDataServiceVersion"
	headerIfMatch               = "If-Match"

	// acceptNoMetadata keeps response payloads free of OData annotations, entity properties travel as their plain
	// JSON forms.
	acceptNoMetadata = "application/json;odata=nometadata"

	// dataServiceVersion is the OData protocol version required for the JSON format.
	dataServiceVersion = "3.0;NetFx"
)

// setODataHeaders stamps the protocol headers every table request carries.
func setODataHeaders(headers map[string]string) {
	headers[headerAccept] = acceptNoMetadata
	headers[headerDataServiceVersion] = dataServiceVersion
	headers[headerMaxDataServiceVersion] = dataServiceVersion
}

// entityEndpoint returns the endpoint which addresses a single entity by its key pair. The key predicate characters
// are structural so the endpoint is assembled here rather than with 'Endpoint.Format', which would escape them as
// segment content.
func entityEndpoint(tableName, partitionKey, rowKey string) restcli.Endpoint {
	return restcli.Endpoint(fmt.Sprintf("/%s(PartitionKey='%s',RowKey='%s')", tableName, escapeKey(partitionKey),
		escapeKey(rowKey)))
}

// escapeKey doubles any single quotes in a key value, the quoting convention the service expects inside a key
// predicate.
func escapeKey(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
