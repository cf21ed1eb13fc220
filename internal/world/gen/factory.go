package gen

import (
	"math"

	"github.com/dan-garden/2dcraft-sub000/pkg/content"
)

// Factory synthesizes one chunk's block grid by composing the height
// profile, biome classifier, and structure index. Generation is a
// one-shot, deterministic operation per coordinate: two factories built
// from the same seed produce identical grids.
type Factory struct {
	profile    *HeightProfile
	classifier *Classifier
	structures *SpatialIndex
	size       int
}

// NewFactory wires the generation pipeline for chunks of size×size.
func NewFactory(profile *HeightProfile, classifier *Classifier, structures *SpatialIndex, size int) *Factory {
	return &Factory{
		profile:    profile,
		classifier: classifier,
		structures: structures,
		size:       size,
	}
}

// Size returns the chunk edge length in blocks.
func (f *Factory) Size() int { return f.size }

// SurfaceHeightAt returns the integer surface height of world column x
// after biome blending. The topmost solid terrain row of the column.
func (f *Factory) SurfaceHeightAt(x int) int {
	return int(math.Floor(f.classifier.ModifyHeight(x, f.profile.SurfaceAt(x))))
}

// Generate produces the block grid for chunk (cx, cy). Structures whose
// anchor row falls inside the chunk are stamped on top of the terrain,
// clipped to the chunk bounds.
func (f *Factory) Generate(cx, cy int) *ChunkData {
	f.structures.ClearPositionsForChunk(cx)

	c := NewChunkData(f.size)
	baseX := cx * f.size
	baseY := cy * f.size

	for lx := 0; lx < f.size; lx++ {
		wx := baseX + lx
		surface := f.classifier.ModifyHeight(wx, f.profile.SurfaceAt(wx))

		for ly := 0; ly < f.size; ly++ {
			c.Set(lx, ly, f.classifier.BlockAt(wx, baseY+ly, surface))
		}

		f.decorateColumn(c, wx, baseX, baseY, surface)
	}
	return c
}

// decorateColumn stamps a structure above the surface of world column wx
// when one qualifies and the anchor row lies inside this chunk.
func (f *Factory) decorateColumn(c *ChunkData, wx, baseX, baseY int, surface float64) {
	anchor := int(math.Floor(surface)) + 1
	if anchor < baseY || anchor >= baseY+f.size {
		return
	}

	biome := f.classifier.BiomeAt(wx, anchor)
	def := f.structures.StructureAt(wx, anchor, biome)
	if def == nil {
		return
	}

	f.structures.PlaceStructure(float64(wx), float64(anchor), def, func(x, y int, id content.BlockID) {
		lx, ly := x-baseX, y-baseY
		// Clip to the chunk and never overwrite terrain.
		if c.In(lx, ly) && c.Get(lx, ly) == content.Air {
			c.Set(lx, ly, id)
		}
	})
}
