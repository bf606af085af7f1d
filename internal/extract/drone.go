package extract

import (
	"github.com/ficsit-ops/stationboard/internal/nameparse"
	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Drone subsystem type paths.
const (
	typeDroneStation     = "/Game/FactoryGame/Buildable/Factory/DroneStation/Build_DroneStation.Build_DroneStation_C"
	typeDroneStationInfo = "/Script/FactoryGame.FGDroneStationInfo"
)

// droneExtractor builds stations for the drone subsystem. A physical
// DroneStation actor is joined with its FGDroneStationInfo identity record
// (name, optional paired station) and its own input/output inventories.
type droneExtractor struct {
	parser *nameparse.Parser
}

// NewDroneExtractor creates the drone pipeline.
func NewDroneExtractor(parser *nameparse.Parser) Extractor {
	return &droneExtractor{parser: parser}
}

func (e *droneExtractor) Subsystem() string { return StationDrone }

// droneIdentity is the refined FGDroneStationInfo record.
type droneIdentity struct {
	id        string
	name      string
	stationID string
	pairedID  string // path of the partner's FGDroneStationInfo
}

func (e *droneExtractor) Extract(ix *savegraph.Index, r *savegraph.Resolver) ([]Station, []Diagnostic) {
	byStation := make(map[string]droneIdentity)
	byID := make(map[string]droneIdentity)
	for _, entity := range ix.OfType(typeDroneStationInfo) {
		identity := droneIdentity{id: entity.ID}
		identity.name, _ = entity.Str("mBuildingTag")
		if ref, ok := entity.Ref("mStation"); ok {
			identity.stationID = ref.PathName
		}
		if ref, ok := entity.Ref("mPairedStation"); ok {
			identity.pairedID = ref.PathName
		}
		byID[entity.ID] = identity
		if identity.stationID != "" {
			byStation[identity.stationID] = identity
		}
	}

	var stations []Station
	var diags []Diagnostic
	for _, actor := range ix.OfType(typeDroneStation) {
		identity, ok := byStation[actor.ID]
		if !ok {
			diags = append(diags, Diagnostic{
				Subsystem: StationDrone,
				EntityID:  actor.ID,
				Reason:    "no drone station info record",
			})
			continue
		}

		inputCargo := inventoryCargo(actor, "mInputInventory", r)
		outputCargo := inventoryCargo(actor, "mOutputInventory", r)
		cargo := dedupe(inputCargo, outputCargo)

		// A station holding at least as many outbound item types as inbound
		// ones is mostly dispensing cargo that already arrived.
		isUnload := len(outputCargo) >= len(inputCargo)

		shortName, flows := e.parser.Parse(identity.name, cargo)

		station := Station{
			ID:           savegraph.ShortID(actor.ID),
			Name:         identity.name,
			ShortName:    shortName,
			Type:         StationDrone,
			CargoTypes:   cargo,
			CargoFlows:   flows,
			IsUnload:     isUnload,
			Transporters: e.transporters(actor, identity, byID),
		}
		if actor.Position != nil {
			station.X = actor.Position.X
			station.Y = actor.Position.Y
		}
		stations = append(stations, station)
	}

	return stations, diags
}

// transporters is the single drone referenced by the station, flying between
// this station and its paired partner.
func (e *droneExtractor) transporters(actor *savegraph.Entity, identity droneIdentity, byID map[string]droneIdentity) []Transporter {
	droneRef, ok := actor.Ref("mStationDrone")
	if !ok || droneRef.PathName == "" {
		return nil
	}

	to := ""
	if paired, ok := byID[identity.pairedID]; ok && paired.stationID != "" {
		to = savegraph.ShortID(paired.stationID)
	}

	return []Transporter{{
		ID:   savegraph.ShortID(droneRef.PathName),
		From: savegraph.ShortID(actor.ID),
		To:   to,
	}}
}

// inventoryCargo dereferences a named inventory reference and reads its cargo.
func inventoryCargo(actor *savegraph.Entity, property string, r *savegraph.Resolver) []string {
	ref, ok := actor.Ref(property)
	if !ok {
		return nil
	}
	inventory, ok := r.Deref(ref)
	if !ok {
		return nil
	}
	return cargoTypes(inventory)
}
