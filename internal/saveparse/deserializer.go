// Package saveparse defines the boundary to the save-file deserializer: the
// external component that turns save-file bytes into a flat list of typed
// entities. The binary save format itself is not parsed here; deployments
// plug in a binary-capable implementation, while tests and fixture-driven
// local runs use the JSON dump format implemented in this package.
package saveparse

import "github.com/ficsit-ops/stationboard/internal/savegraph"

// Deserializer turns raw save-file bytes into the entity graph the extraction
// engine consumes.
type Deserializer interface {
	// Deserialize parses the file bytes. A structured failure aborts the
	// whole build; it never returns a partial graph.
	Deserialize(data []byte) ([]savegraph.Entity, error)
}
