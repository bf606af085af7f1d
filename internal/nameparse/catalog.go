package nameparse

// DefaultCatalog returns the built-in list of known cargo type names used as
// the fuzzy-match fallback. Runs can replace it through configuration; the
// parser itself never mutates it.
func DefaultCatalog() []string {
	return []string{
		"Iron Ore",
		"Iron Ingot",
		"Iron Plate",
		"Iron Rod",
		"Screw",
		"Reinforced Iron Plate",
		"Modular Frame",
		"Heavy Modular Frame",
		"Copper Ore",
		"Copper Ingot",
		"Copper Sheet",
		"Wire",
		"Cable",
		"Limestone",
		"Concrete",
		"Coal",
		"Steel Ingot",
		"Steel Beam",
		"Steel Pipe",
		"Encased Industrial Beam",
		"Rotor",
		"Stator",
		"Motor",
		"Caterium Ore",
		"Caterium Ingot",
		"Quickwire",
		"Raw Quartz",
		"Quartz Crystal",
		"Silica",
		"Crystal Oscillator",
		"Crude Oil",
		"Plastic",
		"Rubber",
		"Fuel",
		"Turbofuel",
		"Heavy Oil Residue",
		"Polymer Resin",
		"Petroleum Coke",
		"Circuit Board",
		"Computer",
		"Supercomputer",
		"AI Limiter",
		"High-Speed Connector",
		"Bauxite",
		"Aluminum Scrap",
		"Aluminum Ingot",
		"Alclad Aluminum Sheet",
		"Aluminum Casing",
		"Battery",
		"Sulfur",
		"Black Powder",
		"Compacted Coal",
		"Smokeless Powder",
		"Uranium",
		"Encased Uranium Cell",
		"Nitrogen Gas",
		"Cooling System",
		"Fused Modular Frame",
		"Turbo Motor",
		"Biomass",
		"Solid Biofuel",
		"Fabric",
		"Empty Canister",
		"Packaged Water",
		"Packaged Fuel",
	}
}
