package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Test Plan for the train extractor:
// - Full station: identifier, platform, inventory, position, annotation
// - Timetable serving two stations links both with the same from/to
// - Longer routes land in otherStops in timetable order
// - Station without platforms is emitted empty, not dropped
// - Station without an identifier is skipped with a diagnostic
// - Train names attach to timetables through the FGTrain ref

func twoStationFixture() []savegraph.Entity {
	stationA := trainStationActor("100", 1000, 2000)
	stationB := trainStationActor("200", 3000, 4000)
	identA := trainStationIdentifier("110", "Iron Pickup [in 60 Stone]", stationA.ID)
	identB := trainStationIdentifier("210", "Iron Dropoff", stationB.ID)
	inventory := inventoryEntity(level+".InventoryComponent_120", map[string]int64{"Stone": 40})
	docking := dockingStation("130", inventory.ID, true)
	connection := platformConnection("140", stationA.ID, docking.ID)
	timetable := timetableEntity("900", identA.ID, identB.ID)
	train := trainEntity("950", "Stone Express", timetable.ID)

	return []savegraph.Entity{
		stationA, stationB, identA, identB, inventory, docking, connection, timetable, train,
	}
}

func TestTrainExtractor_FullStation(t *testing.T) {
	t.Parallel()

	ix, r := buildGraph(t, twoStationFixture())
	stations, diags := NewTrainExtractor(testParser()).Extract(ix, r)

	require.Empty(t, diags)
	require.Len(t, stations, 2)

	a := stations[0]
	assert.Equal(t, "100", a.ID)
	assert.Equal(t, "Iron Pickup [in 60 Stone]", a.Name)
	assert.Equal(t, "Iron Pickup", a.ShortName)
	assert.Equal(t, StationTrain, a.Type)
	assert.Equal(t, []string{"Stone"}, a.CargoTypes)
	assert.False(t, a.IsUnload, "platform in load mode")
	assert.Equal(t, 1000.0, a.X)
	assert.Equal(t, 2000.0, a.Y)

	require.Len(t, a.CargoFlows, 1)
	assert.Equal(t, "Stone", a.CargoFlows[0].Type)
	assert.False(t, a.CargoFlows[0].IsUnload)
	require.NotNil(t, a.CargoFlows[0].FlowPerMinute)
	assert.Equal(t, 60, *a.CargoFlows[0].FlowPerMinute)
}

func TestTrainExtractor_TransporterLinksBothStations(t *testing.T) {
	t.Parallel()

	ix, r := buildGraph(t, twoStationFixture())
	stations, _ := NewTrainExtractor(testParser()).Extract(ix, r)
	require.Len(t, stations, 2)

	// Both ends of the route carry the identical transporter record.
	for _, station := range stations {
		require.Len(t, station.Transporters, 1, "station %s", station.ID)
		transporter := station.Transporters[0]
		assert.Equal(t, "900", transporter.ID)
		assert.Equal(t, "100", transporter.From)
		assert.Equal(t, "200", transporter.To)
		assert.Empty(t, transporter.OtherStops)
		require.NotNil(t, transporter.Name)
		assert.Equal(t, "Stone Express", *transporter.Name)
	}
}

func TestTrainExtractor_OtherStopsKeepTimetableOrder(t *testing.T) {
	t.Parallel()

	stationA := trainStationActor("100", 0, 0)
	stationB := trainStationActor("200", 0, 0)
	stationC := trainStationActor("300", 0, 0)
	identA := trainStationIdentifier("110", "A", stationA.ID)
	identB := trainStationIdentifier("210", "B", stationB.ID)
	identC := trainStationIdentifier("310", "C", stationC.ID)
	timetable := timetableEntity("900", identA.ID, identB.ID, identC.ID)

	ix, r := buildGraph(t, []savegraph.Entity{stationA, stationB, stationC, identA, identB, identC, timetable})
	stations, _ := NewTrainExtractor(testParser()).Extract(ix, r)
	require.Len(t, stations, 3)

	transporter := stations[0].Transporters[0]
	assert.Equal(t, "100", transporter.From)
	assert.Equal(t, "200", transporter.To)
	assert.Equal(t, []string{"300"}, transporter.OtherStops)
	assert.Nil(t, transporter.Name, "no FGTrain references this timetable")
}

func TestTrainExtractor_NoPlatformsStillEmitted(t *testing.T) {
	t.Parallel()

	station := trainStationActor("100", 50, 60)
	ident := trainStationIdentifier("110", "Lonely", station.ID)

	ix, r := buildGraph(t, []savegraph.Entity{station, ident})
	stations, diags := NewTrainExtractor(testParser()).Extract(ix, r)

	require.Empty(t, diags)
	require.Len(t, stations, 1)
	assert.Empty(t, stations[0].CargoTypes)
	assert.False(t, stations[0].IsUnload)
	assert.Empty(t, stations[0].Transporters)
	assert.Equal(t, "Lonely", stations[0].ShortName)
}

func TestTrainExtractor_MissingIdentifierSkips(t *testing.T) {
	t.Parallel()

	station := trainStationActor("100", 0, 0)
	other := trainStationActor("200", 0, 0)
	identOther := trainStationIdentifier("210", "Named", other.ID)

	ix, r := buildGraph(t, []savegraph.Entity{station, other, identOther})
	stations, diags := NewTrainExtractor(testParser()).Extract(ix, r)

	require.Len(t, stations, 1)
	assert.Equal(t, "200", stations[0].ID)

	require.Len(t, diags, 1)
	assert.Equal(t, StationTrain, diags[0].Subsystem)
	assert.Equal(t, station.ID, diags[0].EntityID)
}

func TestTrainExtractor_UnloadPlatform(t *testing.T) {
	t.Parallel()

	station := trainStationActor("100", 0, 0)
	ident := trainStationIdentifier("110", "Sink", station.ID)
	inventory := inventoryEntity(level+".InventoryComponent_120", map[string]int64{"IronOre": 10})
	docking := dockingStation("130", inventory.ID, false)
	connection := platformConnection("140", station.ID, docking.ID)

	ix, r := buildGraph(t, []savegraph.Entity{station, ident, inventory, docking, connection})
	stations, _ := NewTrainExtractor(testParser()).Extract(ix, r)

	require.Len(t, stations, 1)
	assert.True(t, stations[0].IsUnload, "load mode off means the platform unloads")
	assert.Equal(t, []string{"IronOre"}, stations[0].CargoTypes)
}
