package gen

import "github.com/dan-garden/2dcraft-sub000/pkg/content"

// ChunkData holds the generated block grid for one chunk: a Size×Size
// square of block ids. Local (0,0) is the chunk's bottom-left cell;
// local y grows upward with world y.
type ChunkData struct {
	Size   int
	Blocks []content.BlockID
}

// NewChunkData allocates an all-air grid.
func NewChunkData(size int) *ChunkData {
	return &ChunkData{
		Size:   size,
		Blocks: make([]content.BlockID, size*size),
	}
}

// Get returns the block id at local coordinates.
func (c *ChunkData) Get(lx, ly int) content.BlockID {
	return c.Blocks[ly*c.Size+lx]
}

// Set writes the block id at local coordinates.
func (c *ChunkData) Set(lx, ly int, id content.BlockID) {
	c.Blocks[ly*c.Size+lx] = id
}

// In reports whether local coordinates fall inside the grid.
func (c *ChunkData) In(lx, ly int) bool {
	return lx >= 0 && lx < c.Size && ly >= 0 && ly < c.Size
}
