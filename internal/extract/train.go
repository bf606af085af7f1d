package extract

import (
	"github.com/ficsit-ops/stationboard/internal/nameparse"
	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Rail subsystem type paths.
const (
	typeTrainStation            = "/Game/FactoryGame/Buildable/Factory/Train/Station/Build_TrainStation.Build_TrainStation_C"
	typeTrainDockingStation     = "/Game/FactoryGame/Buildable/Factory/Train/Station/Build_TrainDockingStation.Build_TrainDockingStation_C"
	typeTrainStationIdentifier  = "/Script/FactoryGame.FGTrainStationIdentifier"
	typeTrainPlatformConnection = "/Script/FactoryGame.FGTrainPlatformConnection"
	typeRailroadTimeTable       = "/Script/FactoryGame.FGRailroadTimeTable"
	typeTrain                   = "/Script/FactoryGame.FGTrain"
)

// trainExtractor builds stations for the rail subsystem. A physical
// TrainStation actor is joined with its FGTrainStationIdentifier (name),
// its docking platforms (cargo + load mode, reached through platform
// connections), and the timetables stopping at it (transporters).
type trainExtractor struct {
	parser *nameparse.Parser
}

// NewTrainExtractor creates the rail pipeline.
func NewTrainExtractor(parser *nameparse.Parser) Extractor {
	return &trainExtractor{parser: parser}
}

func (e *trainExtractor) Subsystem() string { return StationTrain }

// trainIdentity is the refined FGTrainStationIdentifier record.
type trainIdentity struct {
	id        string // identifier entity path
	name      string // user-visible station name
	stationID string // physical station actor path
}

// dockingPlatform is the refined TrainDockingStation record.
type dockingPlatform struct {
	inventoryID string
	isUnload    bool
}

// timetable is the refined FGRailroadTimeTable record plus the owning train's
// display name, when one exists.
type timetable struct {
	id    string
	stops []string // FGTrainStationIdentifier paths, in timetable order
	name  *string
}

func (e *trainExtractor) Extract(ix *savegraph.Index, r *savegraph.Resolver) ([]Station, []Diagnostic) {
	identities := e.collectIdentities(ix)
	platforms := e.collectPlatforms(ix)
	timetables := e.collectTimetables(ix)

	var stations []Station
	var diags []Diagnostic
	for _, actor := range ix.OfType(typeTrainStation) {
		identity, ok := identities.byStation[actor.ID]
		if !ok {
			diags = append(diags, Diagnostic{
				Subsystem: StationTrain,
				EntityID:  actor.ID,
				Reason:    "no station identifier record",
			})
			continue
		}

		// Platforms hang off the station through connection children; each
		// connection references a component of the docking actor.
		var resolved []dockingPlatform
		for _, conn := range r.ChildrenOf(typeTrainPlatformConnection, actor.ID) {
			ref, ok := conn.Ref("mConnectedTo")
			if !ok {
				continue
			}
			if platform, ok := platforms[savegraph.ParentPath(ref.PathName)]; ok {
				resolved = append(resolved, platform)
			}
		}

		// Cargo and load mode come from the first platform; a station with
		// no resolvable platform is still emitted, just empty.
		var cargo []string
		isUnload := false
		if len(resolved) > 0 {
			if inventory, ok := r.Entity(resolved[0].inventoryID); ok {
				cargo = cargoTypes(inventory)
			}
			isUnload = resolved[0].isUnload
		}

		shortName, flows := e.parser.Parse(identity.name, cargo)

		var transporters []Transporter
		for _, tt := range timetables {
			if !containsStop(tt.stops, identity.id) {
				continue
			}
			transporters = append(transporters, e.toTransporter(tt, identities.byID))
		}

		station := Station{
			ID:           savegraph.ShortID(actor.ID),
			Name:         identity.name,
			ShortName:    shortName,
			Type:         StationTrain,
			CargoTypes:   cargo,
			CargoFlows:   flows,
			IsUnload:     isUnload,
			Transporters: transporters,
		}
		if actor.Position != nil {
			station.X = actor.Position.X
			station.Y = actor.Position.Y
		}
		stations = append(stations, station)
	}

	return stations, diags
}

type trainIdentities struct {
	byStation map[string]trainIdentity // keyed by physical station actor path
	byID      map[string]trainIdentity // keyed by identifier path
}

func (e *trainExtractor) collectIdentities(ix *savegraph.Index) trainIdentities {
	identities := trainIdentities{
		byStation: make(map[string]trainIdentity),
		byID:      make(map[string]trainIdentity),
	}
	for _, entity := range ix.OfType(typeTrainStationIdentifier) {
		identity := trainIdentity{id: entity.ID}
		identity.name, _ = entity.Text("mStationName")
		if ref, ok := entity.Ref("mStation"); ok {
			identity.stationID = ref.PathName
		}
		identities.byID[entity.ID] = identity
		if identity.stationID != "" {
			identities.byStation[identity.stationID] = identity
		}
	}
	return identities
}

func (e *trainExtractor) collectPlatforms(ix *savegraph.Index) map[string]dockingPlatform {
	platforms := make(map[string]dockingPlatform)
	for _, entity := range ix.OfType(typeTrainDockingStation) {
		platform := dockingPlatform{}
		if ref, ok := entity.Ref("mInventory"); ok {
			platform.inventoryID = ref.PathName
		}
		// The save stores load mode; unload is the explicit false.
		if inLoadMode, ok := entity.Bool("mIsInLoadMode"); ok {
			platform.isUnload = !inLoadMode
		}
		platforms[entity.ID] = platform
	}
	return platforms
}

func (e *trainExtractor) collectTimetables(ix *savegraph.Index) []timetable {
	// Train names attach to timetables through the FGTrain's TimeTable ref.
	names := make(map[string]*string)
	for _, train := range ix.OfType(typeTrain) {
		ref, ok := train.Ref("TimeTable")
		if !ok {
			continue
		}
		if name, ok := train.Text("mTrainName"); ok && name != "" {
			n := name
			names[ref.PathName] = &n
		}
	}

	var timetables []timetable
	for _, entity := range ix.OfType(typeRailroadTimeTable) {
		tt := timetable{id: entity.ID, name: names[entity.ID]}
		if stops, ok := entity.Array("mStops"); ok {
			for _, stop := range stops {
				stopStruct, ok := stop.(savegraph.Struct)
				if !ok {
					continue
				}
				if ref, ok := stopStruct["Station"].(savegraph.Ref); ok {
					tt.stops = append(tt.stops, ref.PathName)
				}
			}
		}
		timetables = append(timetables, tt)
	}
	return timetables
}

// toTransporter maps a timetable to the transporter record shared by every
// station it serves: from/to are the first two stops, otherStops the ordered
// remainder.
func (e *trainExtractor) toTransporter(tt timetable, identitiesByID map[string]trainIdentity) Transporter {
	shortStops := make([]string, 0, len(tt.stops))
	for _, stopID := range tt.stops {
		shortStops = append(shortStops, stopShortID(stopID, identitiesByID))
	}

	transporter := Transporter{
		ID:   savegraph.ShortID(tt.id),
		Name: tt.name,
	}
	if len(shortStops) > 0 {
		transporter.From = shortStops[0]
	}
	if len(shortStops) > 1 {
		transporter.To = shortStops[1]
	}
	if len(shortStops) > 2 {
		transporter.OtherStops = shortStops[2:]
	}
	return transporter
}

// stopShortID maps a timetable stop (an identifier path) to the owning
// station actor's short id, falling back to the identifier's own short form
// when the identity record is gone.
func stopShortID(stopID string, identitiesByID map[string]trainIdentity) string {
	if identity, ok := identitiesByID[stopID]; ok && identity.stationID != "" {
		return savegraph.ShortID(identity.stationID)
	}
	return savegraph.ShortID(stopID)
}

func containsStop(stops []string, id string) bool {
	for _, stop := range stops {
		if stop == id {
			return true
		}
	}
	return false
}
