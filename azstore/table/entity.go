package table

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/couchbase/azure-rest/azstore"
)

// Entity represents a table entity, a pair of keys plus an open set of user properties.
//
// Property values cross the wire as their plain JSON forms so numbers decode as 'float64', to store the wider OData
// types supply the matching '@odata.type' annotation as an additional property.
type Entity struct {
	PartitionKey string
	RowKey       string

	// ETag conditions updates and deletes, it's populated from the response which returned the entity and is never
	// part of the JSON body.
	ETag string

	// Timestamp is maintained by the service, it's ignored when the entity is sent.
	Timestamp time.Time

	Properties map[string]any
}

// MarshalJSON renders the entity in the flat JSON object form the service exchanges, the keys sit alongside the user
// properties.
func (e Entity) MarshalJSON() ([]byte, error) {
	flattened := make(map[string]any, len(e.Properties)+2)

	for name, value := range e.Properties {
		flattened[name] = value
	}

	flattened["PartitionKey"] = e.PartitionKey
	flattened["RowKey"] = e.RowKey

	return jsoniter.Marshal(flattened)
}

// UnmarshalJSON decodes the flat JSON object form of an entity, both keys are mandatory and the service maintained
// fields are split out of the user properties.
//
// NOTE: The typed decode errors only survive a direct call, 'jsoniter' flattens errors reported by an 'Unmarshaler'
// into strings; the operations in this package decode through 'entityFromJSON' for that reason.
func (e *Entity) UnmarshalJSON(data []byte) error {
	entity, err := entityFromJSON(data)
	if err != nil {
		return err
	}

	*e = entity

	return nil
}

// entityFromJSON decodes the flat JSON object form of an entity.
func entityFromJSON(data []byte) (Entity, error) {
	var flattened map[string]any

	err := jsoniter.Unmarshal(data, &flattened)
	if err != nil {
		return Entity{}, err
	}

	partitionKey, err := stringProperty(flattened, "PartitionKey")
	if err != nil {
		return Entity{}, err
	}

	rowKey, err := stringProperty(flattened, "RowKey")
	if err != nil {
		return Entity{}, err
	}

	entity := Entity{PartitionKey: partitionKey, RowKey: rowKey, Properties: make(map[string]any)}

	if _, ok := flattened["Timestamp"]; ok {
		value, err := stringProperty(flattened, "Timestamp")
		if err != nil {
			return Entity{}, err
		}

		entity.Timestamp, err = azstore.ParseISODate(value)
		if err != nil {
			return Entity{}, err
		}
	}

	// Annotated payloads carry the etag in the body, the plain JSON format leaves it to the response headers
	if _, ok := flattened["odata.etag"]; ok {
		entity.ETag, err = stringProperty(flattened, "odata.etag")
		if err != nil {
			return Entity{}, err
		}
	}

	for name, value := range flattened {
		if name == "PartitionKey" || name == "RowKey" || name == "Timestamp" || strings.HasPrefix(name, "odata.") {
			continue
		}

		entity.Properties[name] = value
	}

	return entity, nil
}

// stringProperty returns the given property of a decoded JSON object, distinguishing an absent property from one of
// the wrong type.
func stringProperty(flattened map[string]any, name string) (string, error) {
	value, ok := flattened[name]
	if !ok {
		return "", &MissingPropertyError{Property: name}
	}

	converted, ok := value.(string)
	if !ok {
		return "", &azstore.ParseError{Kind: "string", Value: fmt.Sprint(value)}
	}

	return converted, nil
}
