// Package extract turns an indexed save graph into the normalized logistics
// model served to the status dashboard: stations, the transporters linking
// them, and their cargo.
package extract

import (
	"github.com/ficsit-ops/stationboard/internal/nameparse"
	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Station subsystem kinds.
const (
	StationTrain = "train"
	StationDrone = "drone"
	StationTruck = "truck"
)

// Station is a normalized logistics endpoint extracted from the save graph.
// JSON field names are the persisted snapshot contract; the front end reads
// them verbatim.
type Station struct {
	// ID is the short form of the owning actor's path (last "_" segment).
	// Unique per extraction run.
	ID string `json:"id"`

	// Name is the raw, user-editable display label.
	Name string `json:"name"`

	// ShortName is the name with the embedded flow annotation stripped.
	ShortName string `json:"shortName"`

	// Type is one of StationTrain, StationDrone, StationTruck.
	Type string `json:"type"`

	// CargoTypes are the distinct item identifiers currently held, never
	// containing empty strings.
	CargoTypes []string `json:"cargoTypes"`

	// CargoFlows are the rate annotations parsed from the name, in name
	// order.
	CargoFlows []nameparse.CargoFlow `json:"cargoFlows"`

	// IsUnload reports whether the station hands cargo to consumers rather
	// than loading transporters.
	IsUnload bool `json:"isUnload"`

	// Transporters are the trains/drones serving this station.
	Transporters []Transporter `json:"transporters"`

	// X, Y are world coordinates of the station actor.
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Transporter is a train, drone, or vehicle route linking stations. From and
// To are the short ids of the route's first two stops; OtherStops holds the
// ordered remainder.
type Transporter struct {
	ID         string   `json:"id"`
	Name       *string  `json:"name"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	OtherStops []string `json:"otherStops"`
}

// SaveDetails is the snapshot persisted after a successful extraction run.
type SaveDetails struct {
	Stations []Station `json:"stations"`

	// Networks groups stations connected through shared transporters, for
	// the dashboard's network view. Groups and members are sorted.
	Networks [][]string `json:"networks,omitempty"`
}

// Diagnostic records a station-scoped extraction problem. Diagnostics are
// informational: the run continues and the affected station is degraded or
// skipped per the failure policy.
type Diagnostic struct {
	Subsystem string
	EntityID  string
	Reason    string
}

// Extractor is one subsystem pipeline. Extractors only read the shared index
// and resolver, so the orchestrator runs them concurrently.
type Extractor interface {
	// Subsystem names the pipeline ("train", "drone", "truck").
	Subsystem() string

	// Extract builds the normalized stations for this subsystem.
	Extract(ix *savegraph.Index, r *savegraph.Resolver) ([]Station, []Diagnostic)
}
