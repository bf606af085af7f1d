package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Test Plan for the orchestrator:
// - Full save graph merges all three subsystems in train/drone/truck order
// - Duplicate short ids across subsystems keep the first occurrence
// - Malformed graphs (duplicate entity ids) abort the run
// - Cancelled contexts abort the run
// - Networks are derived from the merged station set

func fullSaveFixture() []savegraph.Entity {
	entities := twoStationFixture()
	entities = append(entities, droneFixture()...)

	truckActor := truckStationActor("400", "", nil)
	truckInfo := truckStationInfo("401", "Depot", truckActor.ID)
	return append(entities, truckActor, truckInfo)
}

func TestOrchestrator_MergesSubsystems(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator(testParser())
	details, err := o.Extract(context.Background(), fullSaveFixture())
	require.NoError(t, err)

	require.Len(t, details.Stations, 5)
	types := make([]string, 0, len(details.Stations))
	ids := make([]string, 0, len(details.Stations))
	for _, station := range details.Stations {
		types = append(types, station.Type)
		ids = append(ids, station.ID)
	}
	assert.Equal(t, []string{"train", "train", "drone", "drone", "truck"}, types)
	assert.Equal(t, []string{"100", "200", "500", "600", "400"}, ids)
}

func TestOrchestrator_DerivesNetworks(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator(testParser())
	details, err := o.Extract(context.Background(), fullSaveFixture())
	require.NoError(t, err)

	// Rail pair 100-200 and drone pair 500-600; truck 400 has no routes.
	assert.Equal(t, [][]string{{"100", "200"}, {"500", "600"}}, details.Networks)
}

func TestOrchestrator_DuplicateShortIDKeepsFirst(t *testing.T) {
	t.Parallel()

	// Train station and drone station collapse to the same short id.
	station := trainStationActor("100", 0, 0)
	ident := trainStationIdentifier("110", "Rail", station.ID)
	droneActor := droneStationActor("100", nil)
	droneInfo := droneStationInfo("101", "Pad", droneActor.ID, "")

	o := NewOrchestrator(testParser())
	details, err := o.Extract(context.Background(), []savegraph.Entity{station, ident, droneActor, droneInfo})
	require.NoError(t, err)

	require.Len(t, details.Stations, 1)
	assert.Equal(t, "100", details.Stations[0].ID)
	assert.Equal(t, StationTrain, details.Stations[0].Type)
}

func TestOrchestrator_MalformedGraphFails(t *testing.T) {
	t.Parallel()

	station := trainStationActor("100", 0, 0)

	o := NewOrchestrator(testParser())
	_, err := o.Extract(context.Background(), []savegraph.Entity{station, station})
	require.Error(t, err)
	assert.ErrorIs(t, err, savegraph.ErrDuplicateID)
	assert.Contains(t, err.Error(), "failed to index save graph")
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := NewOrchestrator(testParser())
	_, err := o.Extract(ctx, fullSaveFixture())
	assert.ErrorIs(t, err, context.Canceled)
}
