package content

// Range is a closed interval over a normalized climate axis in [0,1].
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether v lies inside the interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Layering names the blocks a biome stacks below its surface. Depth 0 is
// the surface row itself; deeper rows fall through to Subsurface and
// finally Deep.
type Layering struct {
	Surface         string `yaml:"surface" json:"surface"`
	SurfaceDepth    int    `yaml:"surfaceDepth" json:"surfaceDepth"`
	Subsurface      string `yaml:"subsurface" json:"subsurface"`
	SubsurfaceDepth int    `yaml:"subsurfaceDepth" json:"subsurfaceDepth"`
	Deep            string `yaml:"deep" json:"deep"`
}

// Biome describes a climate band: which temperature/humidity samples it
// claims, how it reshapes the base terrain height, and how its columns
// are layered block by block. Registration order is significant: the
// first registered biome whose ranges match a sample wins.
type Biome struct {
	Name        string `yaml:"name" json:"name"`
	Temperature Range  `yaml:"temperature" json:"temperature"`
	Humidity    Range  `yaml:"humidity" json:"humidity"`

	// Height formula: modified = HeightOffset + base·HeightAmplitude,
	// plus a peak octave sampled at x·PeakFrequency scaled by
	// PeakAmplitude.
	HeightAmplitude float64 `yaml:"heightAmplitude" json:"heightAmplitude"`
	HeightOffset    float64 `yaml:"heightOffset" json:"heightOffset"`
	PeakFrequency   float64 `yaml:"peakFrequency" json:"peakFrequency"`
	PeakAmplitude   float64 `yaml:"peakAmplitude" json:"peakAmplitude"`

	Layers Layering `yaml:"layers" json:"layers"`

	// Resolved block ids, populated by Table freezing.
	surfaceID    BlockID
	subsurfaceID BlockID
	deepID       BlockID
	frozen       bool
}

// Matches reports whether the biome applies to a climate sample.
func (b *Biome) Matches(temperature, humidity float64) bool {
	return b.Temperature.Contains(temperature) && b.Humidity.Contains(humidity)
}

// BlockForDepth returns the block id for a column cell depth blocks below
// the surface. Negative depths are above ground and yield air. Only valid
// on biomes that belong to a frozen table.
func (b *Biome) BlockForDepth(depth int) BlockID {
	if !b.frozen {
		panic("content: BlockForDepth on unfrozen biome " + b.Name)
	}
	switch {
	case depth < 0:
		return Air
	case depth < b.Layers.SurfaceDepth:
		return b.surfaceID
	case depth < b.Layers.SurfaceDepth+b.Layers.SubsurfaceDepth:
		return b.subsurfaceID
	default:
		return b.deepID
	}
}
