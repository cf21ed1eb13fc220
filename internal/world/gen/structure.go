package gen

import (
	"log/slog"
	"math"

	"github.com/dan-garden/2dcraft-sub000/pkg/content"
)

// chanPlacement drives the coarse placement rolls for structures.
const chanPlacement = "structure/placement"

// placementBucket buckets candidate columns so a structure roll covers a
// few adjacent columns instead of re-rolling every block.
const placementBucket = 4

type position struct {
	x, y float64
}

// SpatialIndex decides, per candidate column, whether a structure should
// be placed, enforcing rarity, biome restriction, and minimum spacing.
// Spacing is checked against positions accepted since the last
// ClearPositionsForChunk call, one generation pass, not globally.
type SpatialIndex struct {
	table     *content.Table
	placement Source
	accepted  map[string][]position
	log       *slog.Logger

	warnedNoise bool
	warnedEmpty bool
}

// NewSpatialIndex builds an index over the frozen table's structures.
func NewSpatialIndex(table *content.Table, fields *Fields, log *slog.Logger) *SpatialIndex {
	s := &SpatialIndex{
		table:    table,
		accepted: make(map[string][]position),
		log:      log,
	}
	s.placement = FieldOr(fields, chanPlacement, 1.0/3, log, &s.warnedNoise)
	return s
}

// ClearPositionsForChunk resets the accepted-position history before a
// chunk's generation pass. Spacing is therefore only enforced within one
// pass; placements in separately generated chunks may land closer than
// minDistance.
func (s *SpatialIndex) ClearPositionsForChunk(chunkX int) {
	s.accepted = make(map[string][]position)
}

// StructureAt returns the first registered structure that qualifies at
// (x, y) in the given biome, recording its position for spacing checks,
// or nil when none qualifies.
func (s *SpatialIndex) StructureAt(x, y int, biome *content.Biome) *content.Structure {
	defs := s.table.Structures()
	if len(defs) == 0 {
		if !s.warnedEmpty {
			s.warnedEmpty = true
			s.log.Warn("no structures registered, placement queries return none")
		}
		return nil
	}

	for i, def := range defs {
		if !def.AllowsBiome(biome.Name) {
			continue
		}

		// One coarse roll per bucket per structure; the y offset keeps
		// different structures' rolls independent.
		bucket := FloorDiv(x, placementBucket)
		roll := (s.placement.At(float64(bucket*placementBucket), float64(i*131)) + 1) / 2
		if roll > def.Rarity {
			continue
		}

		if !s.farEnough(def, float64(x), float64(y)) {
			continue
		}

		s.accepted[def.Name] = append(s.accepted[def.Name], position{x: float64(x), y: float64(y)})
		return def
	}
	return nil
}

// farEnough checks the Euclidean distance against every position of the
// same structure accepted in the current accumulation window.
func (s *SpatialIndex) farEnough(def *content.Structure, x, y float64) bool {
	for _, p := range s.accepted[def.Name] {
		dx := x - p.x
		dy := y - p.y
		if math.Sqrt(dx*dx+dy*dy) < def.MinDistance {
			return false
		}
	}
	return true
}

// PlaceStructure stamps the definition's pattern through setBlock,
// horizontally centered on x, with pattern row 0 anchored at y+yOffset
// and subsequent rows stacking upward. Empty cells are skipped. A cell
// whose computed coordinate is non-finite is logged and skipped rather
// than written.
func (s *SpatialIndex) PlaceStructure(x, y float64, def *content.Structure, setBlock func(x, y int, id content.BlockID)) {
	for r := 0; r < def.Rows(); r++ {
		width := def.RowWidth(r)
		rowY := y + float64(def.YOffset+r)
		for col := 0; col < width; col++ {
			id, write := def.Cell(r, col)
			if !write {
				continue
			}
			cellX := x - float64(width)/2 + float64(col)
			if !isFinite(cellX) || !isFinite(rowY) {
				s.log.Warn("skipping structure cell with non-finite coordinate",
					"structure", def.Name, "row", r, "col", col, "x", cellX, "y", rowY)
				continue
			}
			setBlock(int(math.Round(cellX)), int(math.Floor(rowY)), id)
		}
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
