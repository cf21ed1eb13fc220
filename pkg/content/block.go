package content

// BlockID is a dense index into a frozen Table's block definitions.
// ID 0 is always air.
type BlockID uint16

// Air is the implicit empty block present in every table.
const Air BlockID = 0

// Block describes one block type. All behavior is dispatched through the
// owning Table by id; cells never carry per-instance state beyond the
// small side table their chunk keeps (e.g. breaking progress).
type Block struct {
	ID    BlockID
	Name  string
	Solid bool

	// BreakTime is the number of seconds of sustained breaking required
	// to clear the block. Zero means the block cannot be broken.
	BreakTime float64
}

// Breakable reports whether the block can be removed by breaking.
func (b Block) Breakable() bool {
	return b.BreakTime > 0
}
