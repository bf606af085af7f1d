package extract

import (
	"strings"

	"github.com/ficsit-ops/stationboard/internal/savegraph"
)

// cargoTypes reads the distinct item identifiers held in an inventory
// component. Each stack in "mInventoryStacks" is a struct carrying the item
// descriptor path ("ItemType") and a count ("NumItems"); empty stacks and
// stacks with no positive count are skipped. The item identifier is the sixth
// "/"-segment of the descriptor path, e.g. "OreIron" out of
// "/Game/FactoryGame/Resource/RawResources/OreIron/Desc_OreIron.Desc_OreIron_C".
// A nil inventory yields an empty list, never an error.
func cargoTypes(inventory *savegraph.Entity) []string {
	if inventory == nil {
		return nil
	}

	stacks, ok := inventory.Array("mInventoryStacks")
	if !ok {
		return nil
	}

	var types []string
	seen := make(map[string]bool)
	for _, value := range stacks {
		stack, ok := value.(savegraph.Struct)
		if !ok {
			continue
		}
		count, ok := stack["NumItems"].(savegraph.Int)
		if !ok || count <= 0 {
			continue
		}
		itemType, ok := stack["ItemType"].(savegraph.Str)
		if !ok {
			continue
		}

		name := itemName(string(itemType))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		types = append(types, name)
	}
	return types
}

// itemName extracts the item identifier segment from a descriptor path.
func itemName(descriptorPath string) string {
	segments := strings.Split(descriptorPath, "/")
	if len(segments) <= 5 {
		return ""
	}
	return strings.TrimSpace(segments[5])
}

// dedupe merges cargo lists preserving first-seen order and dropping empties.
func dedupe(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, item := range list {
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			merged = append(merged, item)
		}
	}
	return merged
}
