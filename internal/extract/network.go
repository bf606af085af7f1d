package extract

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

// StationNetworks groups stations that reach each other through shared
// transporter routes. Each group lists station short ids sorted
// lexicographically; groups are sorted by their first member; stations with
// no connections are omitted.
func StationNetworks(stations []Station) ([][]string, error) {
	g := graph.New(graph.StringHash)

	addVertex := func(id string) error {
		if id == "" {
			return nil
		}
		if err := g.AddVertex(id); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return fmt.Errorf("failed to add station %s: %w", id, err)
		}
		return nil
	}
	addEdge := func(from, to string) error {
		if from == "" || to == "" || from == to {
			return nil
		}
		if err := g.AddEdge(from, to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("failed to link %s-%s: %w", from, to, err)
		}
		return nil
	}

	for _, station := range stations {
		if err := addVertex(station.ID); err != nil {
			return nil, err
		}
		for _, transporter := range station.Transporters {
			// A route is a chain: from -> to -> otherStops, in order.
			hops := append([]string{transporter.From, transporter.To}, transporter.OtherStops...)
			for _, hop := range hops {
				if err := addVertex(hop); err != nil {
					return nil, err
				}
			}
			for i := 0; i+1 < len(hops); i++ {
				if err := addEdge(hops[i], hops[i+1]); err != nil {
					return nil, err
				}
			}
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to read adjacency: %w", err)
	}

	seeds := make([]string, 0, len(adjacency))
	for id := range adjacency {
		seeds = append(seeds, id)
	}
	sort.Strings(seeds)

	var networks [][]string
	visited := make(map[string]bool)
	for _, seed := range seeds {
		if visited[seed] || len(adjacency[seed]) == 0 {
			continue
		}

		var group []string
		queue := []string{seed}
		visited[seed] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			group = append(group, current)
			for neighbor := range adjacency[current] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}

		sort.Strings(group)
		networks = append(networks, group)
	}

	sort.Slice(networks, func(i, j int) bool {
		return networks[i][0] < networks[j][0]
	})
	return networks, nil
}
