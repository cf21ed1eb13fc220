package world

import (
	"github.com/dan-garden/2dcraft-sub000/internal/world/gen"
)

// ChunkPos identifies a chunk by its X and Y coordinates.
type ChunkPos struct{ X, Y int }

// BlockPos is a block position in world coordinates.
type BlockPos struct{ X, Y int }

// Chunk pairs a generated block grid with its streaming state. A chunk
// is created on first reference and generated exactly once; afterwards
// only its render attachment toggles.
type Chunk struct {
	Pos  ChunkPos
	Data *gen.ChunkData

	generated bool
	visible   bool

	// cells holds sparse per-cell mutable state (breaking progress)
	// keyed by local cell index. The block grid itself stays plain data;
	// behavior is dispatched through the content table.
	cells map[int]*CellState
}

// CellState is the small mutable side record a cell may accumulate.
type CellState struct {
	BreakProgress float64
}

func newChunk(pos ChunkPos) *Chunk {
	return &Chunk{Pos: pos}
}

// IsGenerated reports whether the chunk's grid has been synthesized.
func (c *Chunk) IsGenerated() bool { return c.generated }

// IsVisible reports whether the chunk is attached for rendering.
func (c *Chunk) IsVisible() bool { return c.visible }

// cellState returns the mutable side record for a local cell, creating
// it on demand.
func (c *Chunk) cellState(lx, ly int) *CellState {
	if c.cells == nil {
		c.cells = make(map[int]*CellState)
	}
	idx := ly*c.Data.Size + lx
	s, ok := c.cells[idx]
	if !ok {
		s = &CellState{}
		c.cells[idx] = s
	}
	return s
}

// clearCellState drops the side record for a local cell.
func (c *Chunk) clearCellState(lx, ly int) {
	idx := ly*c.Data.Size + lx
	delete(c.cells, idx)
}

// Descriptor is the read-only view of a chunk exposed to consumers.
type Descriptor struct {
	Pos       ChunkPos
	Generated bool
	Visible   bool
}

// Generator produces chunk grids deterministically from a seed. *gen.Factory
// is the production implementation.
type Generator interface {
	Generate(cx, cy int) *gen.ChunkData
	Size() int
}

var _ Generator = (*gen.Factory)(nil)
