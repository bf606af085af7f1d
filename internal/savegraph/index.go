package savegraph

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGraph is returned when BuildIndex receives no entities.
	ErrEmptyGraph = errors.New("savegraph: entity list is empty")

	// ErrEmptyID is returned when an entity has no id.
	ErrEmptyID = errors.New("savegraph: entity with empty id")

	// ErrDuplicateID is returned when two entities share the same id.
	ErrDuplicateID = errors.New("savegraph: duplicate entity id")
)

// Index holds the lookup tables derived from one deserialized save graph:
// entities by id and entities by type path. Both preserve source order where
// order matters (per-type lists iterate in insertion order of the input).
// An Index is immutable after BuildIndex and safe for concurrent readers.
type Index struct {
	byID   map[string]*Entity
	byType map[string][]*Entity
	count  int
}

// BuildIndex indexes the raw entity list. Duplicate ids and empty ids are
// fatal input errors: they indicate a corrupt or mis-deserialized save and no
// extraction can be trusted on top of them.
func BuildIndex(entities []Entity) (*Index, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyGraph
	}

	ix := &Index{
		byID:   make(map[string]*Entity, len(entities)),
		byType: make(map[string][]*Entity),
		count:  len(entities),
	}

	for i := range entities {
		e := &entities[i]
		if e.ID == "" {
			return nil, fmt.Errorf("%w (index %d, type %q)", ErrEmptyID, i, e.TypePath)
		}
		if _, exists := ix.byID[e.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		ix.byID[e.ID] = e
		ix.byType[e.TypePath] = append(ix.byType[e.TypePath], e)
	}

	return ix, nil
}

// Entity looks up an entity by its full path-like id.
func (ix *Index) Entity(id string) (*Entity, bool) {
	e, ok := ix.byID[id]
	return e, ok
}

// OfType returns all entities with the exact type path, in source order.
// Unknown type paths yield an empty slice.
func (ix *Index) OfType(typePath string) []*Entity {
	return ix.byType[typePath]
}

// Len returns the number of indexed entities.
func (ix *Index) Len() int {
	return ix.count
}
