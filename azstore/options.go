package azstore

import (
	"strconv"

	"github.com/couchbase/azure-rest/restcli"
)

// The operation packages share a number of optional request parameters, the emitters below do nothing when given the
// zero value meaning an unset option never reaches the wire.

// AppendTimeout adds the server side processing timeout, in seconds, to the query parameters.
func AppendTimeout(values *restcli.Values, timeout uint64) {
	if timeout == 0 {
		return
	}

	values.Add("timeout", strconv.FormatUint(timeout, 10))
}

// AppendPrefix restricts a listing to names beginning with the given prefix.
func AppendPrefix(values *restcli.Values, prefix string) {
	if prefix == "" {
		return
	}

	values.Add("prefix", prefix)
}

// AppendMarker resumes a listing from the continuation marker returned by a previous page.
func AppendMarker(values *restcli.Values, marker string) {
	if marker == "" {
		return
	}

	values.Add("marker", marker)
}

// AppendMaxResults caps the number of results returned by a single listing page.
func AppendMaxResults(values *restcli.Values, maxResults uint32) {
	if maxResults == 0 {
		return
	}

	values.Add("maxresults", strconv.FormatUint(uint64(maxResults), 10))
}

// AppendDelimiter groups a blob listing by the given delimiter, names below a delimiter are rolled up into a single
// blob prefix result.
func AppendDelimiter(values *restcli.Values, delimiter string) {
	if delimiter == "" {
		return
	}

	values.Add("delimiter", delimiter)
}

// AppendSnapshot targets a request at the snapshot with the given opaque timestamp rather than the base blob.
func AppendSnapshot(values *restcli.Values, snapshot string) {
	if snapshot == "" {
		return
	}

	values.Add("snapshot", snapshot)
}

// SetClientRequestID adds the caller supplied correlation id recorded in the service side analytics logs.
func SetClientRequestID(headers map[string]string, id string) {
	if id == "" {
		return
	}

	headers[HeaderClientRequestID] = id
}

// SetLeaseID adds the lease id condition required when operating on a leased container or blob.
func SetLeaseID(headers map[string]string, leaseID *LeaseID) {
	if leaseID == nil {
		return
	}

	headers[HeaderLeaseID] = leaseID.String()
}

// SetProposedLeaseID adds the lease id the caller would like the service to assign rather than a generated one.
func SetProposedLeaseID(headers map[string]string, leaseID *LeaseID) {
	if leaseID == nil {
		return
	}

	headers[HeaderProposedLeaseID] = leaseID.String()
}
