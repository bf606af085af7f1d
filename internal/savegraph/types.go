package savegraph

import "strings"

// Entity is one object from a deserialized save game: a typed game object with
// named properties, an optional world transform, and references to its child
// components. Entities are produced by the external save-file deserializer and
// are read-only from this package's point of view.
type Entity struct {
	// ID is the full path-like instance name,
	// e.g. "Persistent_Level:PersistentLevel.Build_TrainStation_C_2147007670".
	ID string

	// TypePath identifies the game-object class,
	// e.g. "/Script/FactoryGame.FGTrainStationIdentifier".
	TypePath string

	// ParentActorName is the path of the owning actor for component-style
	// entities (empty for top-level actors).
	ParentActorName string

	// Properties maps in-game property names to their values.
	Properties map[string]Value

	// Position is the actor's world transform, when the entity has one.
	Position *Position

	// Components lists the path-like ids of child components.
	Components []string
}

// Position is a 2D world coordinate. The save stores full 3D transforms, but
// the logistics model only needs the map plane.
type Position struct {
	X float64
	Y float64
}

// Value is the closed set of property kinds an entity can carry. Consumers
// type-switch over the concrete kinds; there is no implicit coercion between
// them.
type Value interface {
	isValue()
}

// Bool is a boolean property.
type Bool bool

// Int is an integer property.
type Int int64

// Str is a plain string property.
type Str string

// Text is a localized text property. The save format distinguishes it from
// Str, and so do the extraction rules (station names are Text, building tags
// are Str).
type Text string

// Ref is an object-reference property holding the target's path name.
type Ref struct {
	PathName string
}

// Array is an ordered sequence of values.
type Array []Value

// Struct is a set of named sub-properties.
type Struct map[string]Value

func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Str) isValue()    {}
func (Text) isValue()   {}
func (Ref) isValue()    {}
func (Array) isValue()  {}
func (Struct) isValue() {}

// Bool returns the named boolean property.
func (e *Entity) Bool(name string) (bool, bool) {
	if v, ok := e.Properties[name].(Bool); ok {
		return bool(v), true
	}
	return false, false
}

// Int returns the named integer property.
func (e *Entity) Int(name string) (int64, bool) {
	if v, ok := e.Properties[name].(Int); ok {
		return int64(v), true
	}
	return 0, false
}

// Str returns the named plain-string property.
func (e *Entity) Str(name string) (string, bool) {
	if v, ok := e.Properties[name].(Str); ok {
		return string(v), true
	}
	return "", false
}

// Text returns the named localized-text property.
func (e *Entity) Text(name string) (string, bool) {
	if v, ok := e.Properties[name].(Text); ok {
		return string(v), true
	}
	return "", false
}

// Ref returns the named object-reference property.
func (e *Entity) Ref(name string) (Ref, bool) {
	if v, ok := e.Properties[name].(Ref); ok {
		return v, true
	}
	return Ref{}, false
}

// Array returns the named array property.
func (e *Entity) Array(name string) (Array, bool) {
	if v, ok := e.Properties[name].(Array); ok {
		return v, true
	}
	return nil, false
}

// Component returns the first child component whose path contains sub
// (case-insensitive).
func (e *Entity) Component(sub string) (string, bool) {
	sub = strings.ToLower(sub)
	for _, c := range e.Components {
		if strings.Contains(strings.ToLower(c), sub) {
			return c, true
		}
	}
	return "", false
}

// ShortID returns the short form of a path-like id: the final "_"-delimited
// segment. "Persistent_Level:PersistentLevel.Build_TrainStation_C_2147007670"
// becomes "2147007670".
func ShortID(id string) string {
	if i := strings.LastIndex(id, "_"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// ParentPath strips the last "."-delimited segment from a path, turning a
// component path like "...Build_TrainDockingStation_C_214.inventory" into its
// owning actor's path. Paths without a "." are returned unchanged.
func ParentPath(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return path
}
