package internal

import "github.com/planetscale/hubspot-airbyte-source/lib"

// BuildStream converts a stream definition into its Airbyte catalog entry for the given mode.
func BuildStream(def lib.StreamDefinition, mode lib.StreamMode) Stream {
	stream := Stream{
		Name: def.Name,
		Schema: StreamSchema{
			Type:       "object",
			Properties: map[string]PropertyType{},
		},
		SupportedSyncModes:  []string{SYNC_MODE_FULL_REFRESH},
		PrimaryKeys:         [][]string{},
		DefaultCursorFields: []string{},
	}

	primaryKeys := map[string]bool{}
	for _, key := range def.PrimaryKeys {
		primaryKeys[key] = true
		stream.PrimaryKeys = append(stream.PrimaryKeys, []string{key})
	}

	for _, field := range mode.Schema(def) {
		stream.Schema.Properties[field.Name] = getJsonSchemaType(field.Type, !primaryKeys[field.Name])
	}

	if mode.Incremental() {
		stream.SupportedSyncModes = append(stream.SupportedSyncModes, SYNC_MODE_INCREMENTAL)
		stream.SourceDefinedCursor = true
		stream.DefaultCursorFields = []string{mode.ReplicationKey()}
	}

	return stream
}

// Convert a field type to its Airbyte type, see
// https://docs.airbyte.com/understanding-airbyte/supported-data-types/#the-types
func getJsonSchemaType(fieldType lib.FieldType, nullable bool) PropertyType {
	var propertyType PropertyType
	switch fieldType {
	case lib.FieldTypeTimestamp:
		propertyType = PropertyType{
			Type:         []string{"string"},
			CustomFormat: "date-time",
			AirbyteType:  "timestamp_with_timezone",
		}
	case lib.FieldTypeBoolean:
		propertyType = PropertyType{Type: []string{"boolean"}}
	default:
		propertyType = PropertyType{Type: []string{"string"}}
	}

	if nullable {
		propertyType.Type = []string{"null", propertyType.Type[0]}
	}
	return propertyType
}
