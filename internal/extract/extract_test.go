package extract

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ficsit-ops/stationboard/internal/nameparse"
	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Shared fixtures for the extractor tests. Entity ids follow the save's
// path convention so the short-id and parent-path rules are exercised for
// real: "L.Build_TrainStation_C_100" has short id "100".

const level = "Persistent_Level:PersistentLevel"

func testParser() *nameparse.Parser {
	return nameparse.NewParser(nameparse.NewMatcher(), nameparse.DefaultCatalog())
}

func buildGraph(t *testing.T, entities []savegraph.Entity) (*savegraph.Index, *savegraph.Resolver) {
	t.Helper()
	ix, err := savegraph.BuildIndex(entities)
	require.NoError(t, err)
	return ix, savegraph.NewResolver(ix)
}

func trainStationActor(suffix string, x, y float64) savegraph.Entity {
	return savegraph.Entity{
		ID:       level + ".Build_TrainStation_C_" + suffix,
		TypePath: typeTrainStation,
		Position: &savegraph.Position{X: x, Y: y},
	}
}

func trainStationIdentifier(suffix, name, stationID string) savegraph.Entity {
	return savegraph.Entity{
		ID:       level + ".FGTrainStationIdentifier_" + suffix,
		TypePath: typeTrainStationIdentifier,
		Properties: map[string]savegraph.Value{
			"mStationName": savegraph.Text(name),
			"mStation":     savegraph.Ref{PathName: stationID},
		},
	}
}

func dockingStation(suffix, inventoryID string, inLoadMode bool) savegraph.Entity {
	return savegraph.Entity{
		ID:       level + ".Build_TrainDockingStation_C_" + suffix,
		TypePath: typeTrainDockingStation,
		Properties: map[string]savegraph.Value{
			"mInventory":    savegraph.Ref{PathName: inventoryID},
			"mIsInLoadMode": savegraph.Bool(inLoadMode),
		},
	}
}

func platformConnection(suffix, parentID, dockingID string) savegraph.Entity {
	return savegraph.Entity{
		ID:              level + ".FGTrainPlatformConnection_" + suffix,
		TypePath:        typeTrainPlatformConnection,
		ParentActorName: parentID,
		Properties: map[string]savegraph.Value{
			// References a component of the docking actor; the extractor
			// strips the trailing segment.
			"mConnectedTo": savegraph.Ref{PathName: dockingID + ".PlatformConnection0"},
		},
	}
}

// inventoryEntity builds an inventory component holding the given item
// descriptor names with the given counts.
func inventoryEntity(id string, items map[string]int64) savegraph.Entity {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	stacks := savegraph.Array{}
	for _, name := range names {
		stacks = append(stacks, savegraph.Struct{
			"ItemType": savegraph.Str("/Game/FactoryGame/Resource/Parts/" + name + "/Desc_" + name + ".Desc_" + name + "_C"),
			"NumItems": savegraph.Int(items[name]),
		})
	}
	return savegraph.Entity{
		ID:         id,
		TypePath:   "/Script/FactoryGame.FGInventoryComponent",
		Properties: map[string]savegraph.Value{"mInventoryStacks": stacks},
	}
}

func timetableEntity(suffix string, stopIDs ...string) savegraph.Entity {
	stops := savegraph.Array{}
	for _, stopID := range stopIDs {
		stops = append(stops, savegraph.Struct{
			"Station": savegraph.Ref{PathName: stopID},
		})
	}
	return savegraph.Entity{
		ID:         level + ".FGRailroadTimeTable_" + suffix,
		TypePath:   typeRailroadTimeTable,
		Properties: map[string]savegraph.Value{"mStops": stops},
	}
}

func trainEntity(suffix, name, timetableID string) savegraph.Entity {
	return savegraph.Entity{
		ID:       level + ".FGTrain_" + suffix,
		TypePath: typeTrain,
		Properties: map[string]savegraph.Value{
			"TimeTable":  savegraph.Ref{PathName: timetableID},
			"mTrainName": savegraph.Text(name),
		},
	}
}

func droneStationActor(suffix string, props map[string]savegraph.Value) savegraph.Entity {
	return savegraph.Entity{
		ID:         level + ".Build_DroneStation_C_" + suffix,
		TypePath:   typeDroneStation,
		Position:   &savegraph.Position{X: 10, Y: 20},
		Properties: props,
	}
}

func droneStationInfo(suffix, name, stationID, pairedID string) savegraph.Entity {
	props := map[string]savegraph.Value{
		"mBuildingTag": savegraph.Str(name),
		"mStation":     savegraph.Ref{PathName: stationID},
	}
	if pairedID != "" {
		props["mPairedStation"] = savegraph.Ref{PathName: pairedID}
	}
	return savegraph.Entity{
		ID:         level + ".FGDroneStationInfo_" + suffix,
		TypePath:   typeDroneStationInfo,
		Properties: props,
	}
}

func truckStationActor(suffix, inventoryID string, components []string) savegraph.Entity {
	return savegraph.Entity{
		ID:         level + ".Build_TruckStation_C_" + suffix,
		TypePath:   typeTruckStation,
		Position:   &savegraph.Position{X: -5, Y: 7},
		Components: components,
		Properties: map[string]savegraph.Value{
			"mInventory": savegraph.Ref{PathName: inventoryID},
		},
	}
}

func truckStationInfo(suffix, name, stationID string) savegraph.Entity {
	return savegraph.Entity{
		ID:       level + ".FGDockingStationInfo_" + suffix,
		TypePath: typeTruckStationInfo,
		Properties: map[string]savegraph.Value{
			"mBuildingTag": savegraph.Str(name),
			"mStation":     savegraph.Ref{PathName: stationID},
		},
	}
}
