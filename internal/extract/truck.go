package extract

import (
	"github.com/ficsit-ops/stationboard/internal/nameparse"
	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Road subsystem type paths.
const (
	typeTruckStation     = "/Game/FactoryGame/Buildable/Factory/TruckStation/Build_TruckStation.Build_TruckStation_C"
	typeTruckStationInfo = "/Script/FactoryGame.FGDockingStationInfo"
)

// truckExtractor builds stations for the road subsystem. A physical
// TruckStation actor is joined with its FGDockingStationInfo identity record
// and its own inventory; the unload heuristic inspects the station's output
// conveyor components.
type truckExtractor struct {
	parser *nameparse.Parser
}

// NewTruckExtractor creates the road pipeline.
func NewTruckExtractor(parser *nameparse.Parser) Extractor {
	return &truckExtractor{parser: parser}
}

func (e *truckExtractor) Subsystem() string { return StationTruck }

type truckIdentity struct {
	name      string
	stationID string
}

func (e *truckExtractor) Extract(ix *savegraph.Index, r *savegraph.Resolver) ([]Station, []Diagnostic) {
	byStation := make(map[string]truckIdentity)
	for _, entity := range ix.OfType(typeTruckStationInfo) {
		identity := truckIdentity{}
		identity.name, _ = entity.Str("mBuildingTag")
		if ref, ok := entity.Ref("mStation"); ok {
			identity.stationID = ref.PathName
		}
		if identity.stationID != "" {
			byStation[identity.stationID] = identity
		}
	}

	var stations []Station
	var diags []Diagnostic
	for _, actor := range ix.OfType(typeTruckStation) {
		identity, ok := byStation[actor.ID]
		if !ok {
			diags = append(diags, Diagnostic{
				Subsystem: StationTruck,
				EntityID:  actor.ID,
				Reason:    "no docking station info record",
			})
			continue
		}

		cargo := inventoryCargo(actor, "mInventory", r)
		shortName, flows := e.parser.Parse(identity.name, cargo)

		station := Station{
			ID:           savegraph.ShortID(actor.ID),
			Name:         identity.name,
			ShortName:    shortName,
			Type:         StationTruck,
			CargoTypes:   cargo,
			CargoFlows:   flows,
			IsUnload:     e.isUnloading(actor, r),
			Transporters: []Transporter{},
		}
		if actor.Position != nil {
			station.X = actor.Position.X
			station.Y = actor.Position.Y
		}
		stations = append(stations, station)
	}

	return stations, diags
}

// isUnloading reports whether either output conveyor component carries any
// properties. A populated output component means the station is actively
// dispensing, which the save only encodes this incidental way.
func (e *truckExtractor) isUnloading(actor *savegraph.Entity, r *savegraph.Resolver) bool {
	for _, sub := range []string{"output0", "output1"} {
		path, ok := actor.Component(sub)
		if !ok {
			continue
		}
		output, ok := r.Entity(path)
		if !ok {
			continue
		}
		if len(output.Properties) > 0 {
			return true
		}
	}
	return false
}
