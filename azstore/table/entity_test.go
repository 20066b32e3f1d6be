package table

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"github.com/couchbase/azure-rest/azstore"
	"github.com/couchbase/azure-rest/restcli"
)

func TestEntityMarshalJSON(t *testing.T) {
	entity := Entity{
		PartitionKey: "events",
		RowKey:       "0042",
		ETag:         testETag,
		Timestamp:    testTime,
		Properties:   map[string]any{"Age": 30, "Name": "bbq", "Active": true},
	}

	body, err := jsoniter.Marshal(entity)
	require.NoError(t, err)

	// The etag and timestamp are service maintained, only the keys and user properties are sent
	require.JSONEq(t, `{"PartitionKey":"events","RowKey":"0042","Age":30,"Name":"bbq","Active":true}`, string(body))
}

func TestEntityUnmarshalJSON(t *testing.T) {
	body := `{"PartitionKey":"events","RowKey":"0042","Timestamp":"2026-08-24T10:00:00.0000000Z",` +
		`"Age":30,"Name":"bbq","Active":true}`

	var entity Entity

	err := jsoniter.Unmarshal([]byte(body), &entity)
	require.NoError(t, err)

	expected := Entity{
		PartitionKey: "events",
		RowKey:       "0042",
		Timestamp:    testTime,
		Properties:   map[string]any{"Age": float64(30), "Name": "bbq", "Active": true},
	}

	require.Equal(t, expected, entity)
}

func TestEntityUnmarshalJSONAnnotatedETag(t *testing.T) {
	body, err := jsoniter.Marshal(map[string]any{
		"odata.etag":   testETag,
		"PartitionKey": "events",
		"RowKey":       "0042",
	})
	require.NoError(t, err)

	var entity Entity

	err = jsoniter.Unmarshal(body, &entity)
	require.NoError(t, err)

	require.Equal(t, testETag, entity.ETag)
	require.NotContains(t, entity.Properties, "odata.etag")
}

func TestEntityUnmarshalJSONNoProperties(t *testing.T) {
	var entity Entity

	err := jsoniter.Unmarshal([]byte(`{"PartitionKey":"events","RowKey":"0042"}`), &entity)
	require.NoError(t, err)

	require.NotNil(t, entity.Properties)
	require.Empty(t, entity.Properties)
	require.Zero(t, entity.Timestamp)
}

func TestEntityUnmarshalJSONMissingKeys(t *testing.T) {
	type test struct {
		name     string
		body     string
		property string
	}

	tests := []*test{
		{
			name:     "PartitionKey",
			body:     `{"RowKey":"0042"}`,
			property: "PartitionKey",
		},
		{
			name:     "RowKey",
			body:     `{"PartitionKey":"events"}`,
			property: "RowKey",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var entity Entity

			// The typed errors only survive a direct decode, 'jsoniter' flattens errors reported by an
			// 'Unmarshaler' into strings
			err := entity.UnmarshalJSON([]byte(test.body))

			var missingProperty *MissingPropertyError

			require.ErrorAs(t, err, &missingProperty)
			require.Equal(t, test.property, missingProperty.Property)
			require.True(t, IsMissingProperty(err))
		})
	}
}

func TestEntityUnmarshalJSONMistypedKey(t *testing.T) {
	var entity Entity

	err := entity.UnmarshalJSON([]byte(`{"PartitionKey":42,"RowKey":"0042"}`))

	var parseError *azstore.ParseError

	require.ErrorAs(t, err, &parseError)
	require.Equal(t, "string", parseError.Kind)
}

func TestEntityUnmarshalJSONInvalidTimestamp(t *testing.T) {
	var entity Entity

	err := entity.UnmarshalJSON([]byte(`{"PartitionKey":"events","RowKey":"0042","Timestamp":"yesterday"}`))

	var parseError *azstore.ParseError

	require.ErrorAs(t, err, &parseError)
	require.Equal(t, "date", parseError.Kind)
}

func TestEntityEndpoint(t *testing.T) {
	endpoint := entityEndpoint("beerfest", "events", "0042")
	require.Equal(t, restcli.Endpoint("/beerfest(PartitionKey='events',RowKey='0042')"), endpoint)
}

func TestEntityEndpointEscapesQuotes(t *testing.T) {
	endpoint := entityEndpoint("beerfest", "O'Brien", "rock'n'roll")
	require.Equal(t, restcli.Endpoint("/beerfest(PartitionKey='O''Brien',RowKey='rock''n''roll')"), endpoint)
}
