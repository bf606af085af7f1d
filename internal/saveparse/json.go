package saveparse

import (
	"encoding/json"
	"fmt"

	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// JSONDeserializer reads the intermediate JSON dump format:
//
//	{
//	  "entities": [
//	    {
//	      "id": "Persistent_Level:PersistentLevel.Build_TrainStation_C_1",
//	      "typePath": "/Game/.../Build_TrainStation.Build_TrainStation_C",
//	      "parentActorName": "",
//	      "position": {"x": 1.5, "y": -2.25},
//	      "components": ["....inventory"],
//	      "properties": {
//	        "mStationName": {"kind": "text", "text": "Iron Central"}
//	      }
//	    }
//	  ]
//	}
//
// Property values are tagged by "kind": bool, int, str, text, ref, array,
// struct. Arrays and structs nest recursively.
type JSONDeserializer struct{}

// NewJSONDeserializer creates a deserializer for the JSON dump format.
func NewJSONDeserializer() *JSONDeserializer {
	return &JSONDeserializer{}
}

type saveJSON struct {
	Entities []entityJSON `json:"entities"`
}

type entityJSON struct {
	ID              string                  `json:"id"`
	TypePath        string                  `json:"typePath"`
	ParentActorName string                  `json:"parentActorName,omitempty"`
	Position        *positionJSON           `json:"position,omitempty"`
	Components      []string                `json:"components,omitempty"`
	Properties      map[string]propertyJSON `json:"properties,omitempty"`
}

type positionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type propertyJSON struct {
	Kind   string                  `json:"kind"`
	Bool   *bool                   `json:"bool,omitempty"`
	Int    *int64                  `json:"int,omitempty"`
	Str    *string                 `json:"str,omitempty"`
	Text   *string                 `json:"text,omitempty"`
	Ref    *string                 `json:"ref,omitempty"`
	Array  []propertyJSON          `json:"array,omitempty"`
	Struct map[string]propertyJSON `json:"struct,omitempty"`
}

// Deserialize implements Deserializer.
func (d *JSONDeserializer) Deserialize(data []byte) ([]savegraph.Entity, error) {
	var save saveJSON
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("failed to decode save dump: %w", err)
	}

	entities := make([]savegraph.Entity, 0, len(save.Entities))
	for i, raw := range save.Entities {
		entity, err := toEntity(raw)
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, raw.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func toEntity(raw entityJSON) (savegraph.Entity, error) {
	entity := savegraph.Entity{
		ID:              raw.ID,
		TypePath:        raw.TypePath,
		ParentActorName: raw.ParentActorName,
		Components:      raw.Components,
	}

	if raw.Position != nil {
		entity.Position = &savegraph.Position{X: raw.Position.X, Y: raw.Position.Y}
	}

	if len(raw.Properties) > 0 {
		entity.Properties = make(map[string]savegraph.Value, len(raw.Properties))
		for name, prop := range raw.Properties {
			value, err := toValue(prop)
			if err != nil {
				return savegraph.Entity{}, fmt.Errorf("property %q: %w", name, err)
			}
			entity.Properties[name] = value
		}
	}

	return entity, nil
}

func toValue(prop propertyJSON) (savegraph.Value, error) {
	switch prop.Kind {
	case "bool":
		if prop.Bool == nil {
			return nil, fmt.Errorf("bool property without value")
		}
		return savegraph.Bool(*prop.Bool), nil
	case "int":
		if prop.Int == nil {
			return nil, fmt.Errorf("int property without value")
		}
		return savegraph.Int(*prop.Int), nil
	case "str":
		if prop.Str == nil {
			return nil, fmt.Errorf("str property without value")
		}
		return savegraph.Str(*prop.Str), nil
	case "text":
		if prop.Text == nil {
			return nil, fmt.Errorf("text property without value")
		}
		return savegraph.Text(*prop.Text), nil
	case "ref":
		if prop.Ref == nil {
			return nil, fmt.Errorf("ref property without value")
		}
		return savegraph.Ref{PathName: *prop.Ref}, nil
	case "array":
		values := make(savegraph.Array, 0, len(prop.Array))
		for i, el := range prop.Array {
			value, err := toValue(el)
			if err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
			values = append(values, value)
		}
		return values, nil
	case "struct":
		values := make(savegraph.Struct, len(prop.Struct))
		for name, el := range prop.Struct {
			value, err := toValue(el)
			if err != nil {
				return nil, fmt.Errorf("struct field %q: %w", name, err)
			}
			values[name] = value
		}
		return values, nil
	default:
		return nil, fmt.Errorf("unsupported property kind %q", prop.Kind)
	}
}
