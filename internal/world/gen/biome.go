package gen

import (
	"errors"
	"log/slog"
	"math"

	"github.com/dan-garden/2dcraft-sub000/pkg/content"
)

// Channel names for the climate noise fields.
const (
	chanTemperature = "climate/temperature"
	chanHumidity    = "climate/humidity"
	chanJitter      = "climate/jitter"
	chanPeaks       = "terrain/peaks"
)

// jitterAmplitude is how far (in blocks) the climate sampling point may
// wander from the column center, so biome edges don't fall exactly on
// chunk boundaries.
const jitterAmplitude = 11.0

// ErrNoBiomes is returned when a classifier is built from a table with
// zero registered biomes. There is no safe default biome.
var ErrNoBiomes = errors.New("gen: no biomes registered")

// Classifier assigns a biome per chunk column from climate noise, blends
// per-biome height formulas across chunk boundaries, and supplies the
// per-depth block layering. Column assignments are cached for the
// session and never invalidated: for a fixed seed they are stable.
type Classifier struct {
	table       *content.Table
	temperature Source
	humidity    Source
	jitter      Source
	peaks       Source
	chunkSize   int
	transition  float64 // blending band width in blocks
	columns     map[int]*content.Biome
}

// NewClassifier builds a classifier over the frozen table. It fails fast
// when the table carries no biomes.
func NewClassifier(table *content.Table, fields *Fields, chunkSize int, transition float64, log *slog.Logger) (*Classifier, error) {
	if len(table.Biomes()) == 0 {
		return nil, ErrNoBiomes
	}
	var warned bool
	return &Classifier{
		table:       table,
		temperature: FieldOr(fields, chanTemperature, 1.0/384, log, &warned),
		humidity:    FieldOr(fields, chanHumidity, 1.0/384, log, &warned),
		jitter:      FieldOr(fields, chanJitter, 1.0/16, log, &warned),
		peaks:       FieldOr(fields, chanPeaks, 1.0/48, log, &warned),
		chunkSize:   chunkSize,
		transition:  transition,
		columns:     make(map[int]*content.Biome),
	}, nil
}

// BiomeAt returns the biome governing world position (x, y).
// Classification depends only on x's chunk column; y is accepted so
// consumers can pass full positions.
func (c *Classifier) BiomeAt(x, y int) *content.Biome {
	return c.biomeForColumn(FloorDiv(x, c.chunkSize))
}

func (c *Classifier) biomeForColumn(col int) *content.Biome {
	if b, ok := c.columns[col]; ok {
		return b
	}

	// Sample climate at the column center, nudged by jitter noise so
	// biome edges are not ruler-straight chunk seams.
	center := float64(col*c.chunkSize + c.chunkSize/2)
	sx := center + c.jitter.At(center, 0)*jitterAmplitude

	temp := climate01(c.temperature.At(sx, 0))
	humidity := climate01(c.humidity.At(sx, 1000))

	biomes := c.table.Biomes()
	chosen := biomes[0] // fall back to the first registered biome
	for _, b := range biomes {
		if b.Matches(temp, humidity) {
			chosen = b
			break
		}
	}
	c.columns[col] = chosen
	return chosen
}

// climate01 maps a noise sample from [-1,1] onto the climate axes.
func climate01(v float64) float64 {
	v = (v + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formula evaluates a biome's height formula at world column x for the
// given base height.
func (c *Classifier) formula(b *content.Biome, x int, base float64) float64 {
	h := b.HeightOffset + base*b.HeightAmplitude
	if b.PeakAmplitude != 0 {
		h += c.peaks.At(float64(x)*b.PeakFrequency, 0) * b.PeakAmplitude
	}
	return h
}

// ModifyHeight applies the column's biome height formula to the base
// height. Within half the transition width of a chunk edge the result is
// blended with the neighboring column's formula using a cosine-smoothed
// weight: at the boundary both sides agree on the midpoint of the two
// formulas, and at half the transition width the primary formula holds
// exactly.
func (c *Classifier) ModifyHeight(x int, base float64) float64 {
	col := FloorDiv(x, c.chunkSize)
	primary := c.biomeForColumn(col)
	ph := c.formula(primary, x, base)

	half := c.transition / 2
	if half <= 0 {
		return ph
	}

	local := Mod(x, c.chunkSize)
	var neighborCol int
	var dist float64
	switch {
	case float64(local) < half:
		neighborCol = col - 1
		dist = float64(local)
	case float64(c.chunkSize-1-local) < half:
		neighborCol = col + 1
		dist = float64(c.chunkSize - 1 - local)
	default:
		return ph
	}

	neighbor := c.biomeForColumn(neighborCol)
	if neighbor == primary {
		return ph
	}

	nh := c.formula(neighbor, x, base)
	mid := (ph + nh) / 2
	w := 0.5 - 0.5*math.Cos(math.Pi*dist/half) // 0 at the seam, 1 at half width
	return mid + (ph-mid)*w
}

// BlockAt resolves the block for world cell (x, y) under the final
// surface height of the column. Cells above the surface are air.
func (c *Classifier) BlockAt(x, y int, height float64) content.BlockID {
	depth := int(math.Floor(height)) - y
	if depth < 0 {
		return content.Air
	}
	return c.BiomeAt(x, y).BlockForDepth(depth)
}
