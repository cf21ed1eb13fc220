package content

// DefaultRegistry returns a registry pre-loaded with the built-in block,
// biome, and structure set. Content packs may be applied on top before
// freezing.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	for _, b := range []Block{
		{Name: "grass", Solid: true, BreakTime: 0.6},
		{Name: "dirt", Solid: true, BreakTime: 0.5},
		{Name: "stone", Solid: true, BreakTime: 1.5},
		{Name: "sand", Solid: true, BreakTime: 0.5},
		{Name: "sandstone", Solid: true, BreakTime: 1.2},
		{Name: "snow", Solid: true, BreakTime: 0.4},
		{Name: "log", Solid: true, BreakTime: 1.0},
		{Name: "leaves", Solid: false, BreakTime: 0.2},
		{Name: "cactus", Solid: true, BreakTime: 0.4},
		{Name: "rock", Solid: true, BreakTime: 2.0},
	} {
		r.RegisterBlock(b)
	}

	// Order matters: the first biome whose ranges match a climate sample
	// wins, and tundra/desert need to claim their extremes before the
	// plains catch-all.
	r.RegisterBiome(&Biome{
		Name:        "tundra",
		Temperature: Range{Min: 0, Max: 0.3},
		Humidity:    Range{Min: 0, Max: 1},
		HeightAmplitude: 0.6, HeightOffset: 26,
		PeakFrequency: 1, PeakAmplitude: 0,
		Layers: Layering{Surface: "snow", SurfaceDepth: 1, Subsurface: "dirt", SubsurfaceDepth: 3, Deep: "stone"},
	})
	r.RegisterBiome(&Biome{
		Name:        "desert",
		Temperature: Range{Min: 0.62, Max: 1},
		Humidity:    Range{Min: 0, Max: 0.45},
		HeightAmplitude: 0.5, HeightOffset: 30,
		PeakFrequency: 1, PeakAmplitude: 0,
		Layers: Layering{Surface: "sand", SurfaceDepth: 3, Subsurface: "sandstone", SubsurfaceDepth: 4, Deep: "stone"},
	})
	r.RegisterBiome(&Biome{
		Name:        "mountains",
		Temperature: Range{Min: 0.3, Max: 0.62},
		Humidity:    Range{Min: 0, Max: 0.25},
		HeightAmplitude: 1.8, HeightOffset: -45,
		PeakFrequency: 4, PeakAmplitude: 10,
		Layers: Layering{Surface: "stone", SurfaceDepth: 1, Subsurface: "stone", SubsurfaceDepth: 4, Deep: "stone"},
	})
	r.RegisterBiome(&Biome{
		Name:        "forest",
		Temperature: Range{Min: 0.3, Max: 0.75},
		Humidity:    Range{Min: 0.55, Max: 1},
		HeightAmplitude: 0.8, HeightOffset: 14,
		PeakFrequency: 1, PeakAmplitude: 0,
		Layers: Layering{Surface: "grass", SurfaceDepth: 1, Subsurface: "dirt", SubsurfaceDepth: 3, Deep: "stone"},
	})
	r.RegisterBiome(&Biome{
		Name:        "plains",
		Temperature: Range{Min: 0, Max: 1},
		Humidity:    Range{Min: 0, Max: 1},
		HeightAmplitude: 0.4, HeightOffset: 38,
		PeakFrequency: 1, PeakAmplitude: 0,
		Layers: Layering{Surface: "grass", SurfaceDepth: 1, Subsurface: "dirt", SubsurfaceDepth: 3, Deep: "stone"},
	})

	r.RegisterStructure(&Structure{
		Name:        "oak_tree",
		Rarity:      0.15,
		MinDistance: 6,
		Biomes:      []string{"plains", "forest"},
		Pattern: [][]string{
			{"", "log", ""},
			{"", "log", ""},
			{"leaves", "log", "leaves"},
			{"leaves", "leaves", "leaves"},
			{"", "leaves", ""},
		},
	})
	r.RegisterStructure(&Structure{
		Name:        "cactus",
		Rarity:      0.05,
		MinDistance: 4,
		Biomes:      []string{"desert"},
		Pattern: [][]string{
			{"cactus"},
			{"cactus"},
			{"cactus"},
		},
	})
	r.RegisterStructure(&Structure{
		Name:        "boulder",
		Rarity:      0.03,
		MinDistance: 10,
		Biomes:      []string{"mountains", "tundra"},
		Pattern: [][]string{
			{"rock", "rock"},
			{"rock", "rock"},
		},
	})

	return r
}
