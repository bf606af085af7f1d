package saveparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Test Plan for JSONDeserializer:
// - Full entity with every property kind decodes correctly
// - Nested array-of-structs decodes recursively
// - Unknown property kinds and missing values are structured failures
// - Invalid JSON is a structured failure

func TestJSONDeserializer_AllKinds(t *testing.T) {
	t.Parallel()

	dump := `{
		"entities": [
			{
				"id": "L.Build_TrainStation_C_1",
				"typePath": "/Game/X/Build_TrainStation.Build_TrainStation_C",
				"parentActorName": "L.Owner_1",
				"position": {"x": 1.5, "y": -2.25},
				"components": ["L.Build_TrainStation_C_1.Output0"],
				"properties": {
					"mIsInLoadMode": {"kind": "bool", "bool": false},
					"mCount": {"kind": "int", "int": 42},
					"mBuildingTag": {"kind": "str", "str": "Depot"},
					"mStationName": {"kind": "text", "text": "Iron Central"},
					"mStation": {"kind": "ref", "ref": "L.Target_9"},
					"mStops": {
						"kind": "array",
						"array": [
							{"kind": "struct", "struct": {"Station": {"kind": "ref", "ref": "L.Ident_1"}}}
						]
					}
				}
			}
		]
	}`

	entities, err := NewJSONDeserializer().Deserialize([]byte(dump))
	require.NoError(t, err)
	require.Len(t, entities, 1)

	e := entities[0]
	assert.Equal(t, "L.Build_TrainStation_C_1", e.ID)
	assert.Equal(t, "/Game/X/Build_TrainStation.Build_TrainStation_C", e.TypePath)
	assert.Equal(t, "L.Owner_1", e.ParentActorName)
	require.NotNil(t, e.Position)
	assert.Equal(t, 1.5, e.Position.X)
	assert.Equal(t, -2.25, e.Position.Y)
	assert.Equal(t, []string{"L.Build_TrainStation_C_1.Output0"}, e.Components)

	b, ok := e.Bool("mIsInLoadMode")
	require.True(t, ok)
	assert.False(t, b)

	n, ok := e.Int("mCount")
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	s, ok := e.Str("mBuildingTag")
	require.True(t, ok)
	assert.Equal(t, "Depot", s)

	txt, ok := e.Text("mStationName")
	require.True(t, ok)
	assert.Equal(t, "Iron Central", txt)

	ref, ok := e.Ref("mStation")
	require.True(t, ok)
	assert.Equal(t, "L.Target_9", ref.PathName)

	stops, ok := e.Array("mStops")
	require.True(t, ok)
	require.Len(t, stops, 1)
	stop, ok := stops[0].(savegraph.Struct)
	require.True(t, ok)
	stationRef, ok := stop["Station"].(savegraph.Ref)
	require.True(t, ok)
	assert.Equal(t, "L.Ident_1", stationRef.PathName)
}

func TestJSONDeserializer_UnknownKind(t *testing.T) {
	t.Parallel()

	dump := `{"entities": [{"id": "e", "typePath": "t", "properties": {"p": {"kind": "float"}}}]}`

	_, err := NewJSONDeserializer().Deserialize([]byte(dump))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported property kind")
	assert.Contains(t, err.Error(), `"p"`)
}

func TestJSONDeserializer_MissingValue(t *testing.T) {
	t.Parallel()

	dump := `{"entities": [{"id": "e", "typePath": "t", "properties": {"p": {"kind": "int"}}}]}`

	_, err := NewJSONDeserializer().Deserialize([]byte(dump))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "int property without value")
}

func TestJSONDeserializer_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := NewJSONDeserializer().Deserialize([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode save dump")
}
