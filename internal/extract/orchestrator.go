package extract

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/ficsit-ops/stationboard/internal/nameparse"
	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// Orchestrator runs all subsystem extractors against one parsed save graph
// and merges their output into a SaveDetails snapshot. Extractors only read
// the shared index, so they fan out concurrently and join before the merge.
type Orchestrator struct {
	extractors []Extractor
}

// NewOrchestrator creates an orchestrator with the standard train, drone and
// truck pipelines sharing one annotation parser.
func NewOrchestrator(parser *nameparse.Parser) *Orchestrator {
	return &Orchestrator{
		extractors: []Extractor{
			NewTrainExtractor(parser),
			NewDroneExtractor(parser),
			NewTruckExtractor(parser),
		},
	}
}

// Extract indexes the raw entity graph and builds the snapshot. Malformed
// input graphs (duplicate or empty ids, empty graph) abort the run; station-
// scoped problems only degrade or skip the affected station.
func (o *Orchestrator) Extract(ctx context.Context, entities []savegraph.Entity) (*SaveDetails, error) {
	ix, err := savegraph.BuildIndex(entities)
	if err != nil {
		return nil, fmt.Errorf("failed to index save graph: %w", err)
	}
	resolver := savegraph.NewResolver(ix)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([][]Station, len(o.extractors))
	diagnostics := make([][]Diagnostic, len(o.extractors))

	var wg sync.WaitGroup
	for i, extractor := range o.extractors {
		wg.Add(1)
		go func(i int, extractor Extractor) {
			defer wg.Done()
			results[i], diagnostics[i] = extractor.Extract(ix, resolver)
		}(i, extractor)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Merge in fixed subsystem order. Short ids must stay unique across the
	// whole run; a collision means degenerate input and the later record is
	// dropped with a warning.
	var stations []Station
	seen := make(map[string]bool)
	for i, extractor := range o.extractors {
		for _, diag := range diagnostics[i] {
			log.Printf("Warning: %s extraction skipped %s: %s\n", diag.Subsystem, diag.EntityID, diag.Reason)
		}
		for _, station := range results[i] {
			if seen[station.ID] {
				log.Printf("Warning: duplicate station id %s (%s), keeping first\n", station.ID, extractor.Subsystem())
				continue
			}
			seen[station.ID] = true
			stations = append(stations, station)
		}
	}

	details := &SaveDetails{Stations: stations}

	networks, err := StationNetworks(stations)
	if err != nil {
		log.Printf("Warning: failed to derive station networks: %v\n", err)
	} else {
		details.Networks = networks
	}

	return details, nil
}
