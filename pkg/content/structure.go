package content

// Structure describes a pre-authored multi-block pattern placed
// procedurally, e.g. a tree. Pattern row 0 is the anchor row; subsequent
// rows stack upward. Cells holding "" or "air" are not written.
type Structure struct {
	Name        string  `yaml:"name" json:"name"`
	Rarity      float64 `yaml:"rarity" json:"rarity"`
	MinDistance float64 `yaml:"minDistance" json:"minDistance"`

	// Biomes lists the biome names the structure may spawn in. An empty
	// list means no biome is valid.
	Biomes []string `yaml:"biomes" json:"biomes"`

	Pattern [][]string `yaml:"pattern" json:"pattern"`

	// YOffset shifts the anchor row relative to the queried position,
	// e.g. -1 to sink a trunk into the surface block.
	YOffset int `yaml:"yOffset" json:"yOffset"`

	// Resolved pattern ids, populated by Table freezing. Cells that
	// should not be written hold cellSkip.
	cells  [][]BlockID
	frozen bool
}

// cellSkip marks pattern cells that must not be stamped.
const cellSkip BlockID = 0xFFFF

// AllowsBiome reports whether the structure may spawn in the named biome.
func (s *Structure) AllowsBiome(name string) bool {
	for _, b := range s.Biomes {
		if b == name {
			return true
		}
	}
	return false
}

// Cell returns the resolved block id for pattern row r, column c, and
// whether the cell should be written at all. Only valid on structures
// that belong to a frozen table.
func (s *Structure) Cell(r, c int) (BlockID, bool) {
	if !s.frozen {
		panic("content: Cell on unfrozen structure " + s.Name)
	}
	id := s.cells[r][c]
	if id == cellSkip {
		return Air, false
	}
	return id, true
}

// Rows returns the number of pattern rows.
func (s *Structure) Rows() int { return len(s.Pattern) }

// RowWidth returns the number of cells in pattern row r.
func (s *Structure) RowWidth(r int) int { return len(s.Pattern[r]) }
