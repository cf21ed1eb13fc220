package content

import "fmt"

// Registry accumulates definitions during the startup registration pass.
// Once every pack has been applied, Freeze produces the immutable Table
// the generation components share for the rest of the session.
type Registry struct {
	blocks     []Block
	biomes     []*Biome
	structures []*Structure
}

// NewRegistry returns a registry holding only the implicit air block.
func NewRegistry() *Registry {
	return &Registry{
		blocks: []Block{{ID: Air, Name: "air"}},
	}
}

// RegisterBlock adds a block definition. The id is assigned on freeze in
// registration order.
func (r *Registry) RegisterBlock(b Block) {
	r.blocks = append(r.blocks, b)
}

// RegisterBiome adds a biome definition. Registration order is the
// classification tie-break.
func (r *Registry) RegisterBiome(b *Biome) {
	r.biomes = append(r.biomes, b)
}

// RegisterStructure adds a structure definition. Registration order is
// the placement query order.
func (r *Registry) RegisterStructure(s *Structure) {
	r.structures = append(r.structures, s)
}

// Table is the immutable id→definition lookup produced by Freeze. It is
// passed by reference into every component that needs lookups; nothing
// mutates it after construction.
type Table struct {
	blocks      []Block
	blocksByName map[string]BlockID
	biomes      []*Biome
	biomesByName map[string]*Biome
	structures  []*Structure
}

// Freeze assigns dense block ids, resolves every block-name reference in
// biome layerings and structure patterns, and returns the immutable
// table. Duplicate names and dangling references are configuration
// errors.
func (r *Registry) Freeze() (*Table, error) {
	t := &Table{
		blocks:       make([]Block, 0, len(r.blocks)),
		blocksByName: make(map[string]BlockID, len(r.blocks)),
		biomes:       r.biomes,
		biomesByName: make(map[string]*Biome, len(r.biomes)),
		structures:   r.structures,
	}

	for i, b := range r.blocks {
		if _, dup := t.blocksByName[b.Name]; dup {
			return nil, fmt.Errorf("content: duplicate block %q", b.Name)
		}
		b.ID = BlockID(i)
		t.blocks = append(t.blocks, b)
		t.blocksByName[b.Name] = b.ID
	}

	for _, b := range r.biomes {
		if _, dup := t.biomesByName[b.Name]; dup {
			return nil, fmt.Errorf("content: duplicate biome %q", b.Name)
		}
		t.biomesByName[b.Name] = b

		var err error
		if b.surfaceID, err = t.resolve(b.Name, b.Layers.Surface); err != nil {
			return nil, err
		}
		if b.subsurfaceID, err = t.resolve(b.Name, b.Layers.Subsurface); err != nil {
			return nil, err
		}
		if b.deepID, err = t.resolve(b.Name, b.Layers.Deep); err != nil {
			return nil, err
		}
		b.frozen = true
	}

	seen := make(map[string]bool, len(r.structures))
	for _, s := range r.structures {
		if seen[s.Name] {
			return nil, fmt.Errorf("content: duplicate structure %q", s.Name)
		}
		seen[s.Name] = true

		for _, biome := range s.Biomes {
			if _, ok := t.biomesByName[biome]; !ok {
				return nil, fmt.Errorf("content: structure %q references unknown biome %q", s.Name, biome)
			}
		}

		s.cells = make([][]BlockID, len(s.Pattern))
		for ri, row := range s.Pattern {
			s.cells[ri] = make([]BlockID, len(row))
			for ci, name := range row {
				if name == "" || name == "air" {
					s.cells[ri][ci] = cellSkip
					continue
				}
				id, err := t.resolve(s.Name, name)
				if err != nil {
					return nil, err
				}
				s.cells[ri][ci] = id
			}
		}
		s.frozen = true
	}

	return t, nil
}

func (t *Table) resolve(owner, name string) (BlockID, error) {
	id, ok := t.blocksByName[name]
	if !ok {
		return Air, fmt.Errorf("content: %q references unknown block %q", owner, name)
	}
	return id, nil
}

// Block returns the definition for id. Unknown ids are programmer errors
// and panic.
func (t *Table) Block(id BlockID) Block {
	if int(id) >= len(t.blocks) {
		panic(fmt.Sprintf("content: unknown block id %d", id))
	}
	return t.blocks[id]
}

// BlockID looks up a block id by name.
func (t *Table) BlockID(name string) (BlockID, bool) {
	id, ok := t.blocksByName[name]
	return id, ok
}

// MustBlockID looks up a block id by name and panics when absent. Meant
// for trusted, table-owned names.
func (t *Table) MustBlockID(name string) BlockID {
	id, ok := t.blocksByName[name]
	if !ok {
		panic(fmt.Sprintf("content: unknown block %q", name))
	}
	return id
}

// Biomes returns the registered biomes in registration order. Callers
// must not mutate the slice.
func (t *Table) Biomes() []*Biome { return t.biomes }

// BiomeByName looks up a biome definition.
func (t *Table) BiomeByName(name string) (*Biome, bool) {
	b, ok := t.biomesByName[name]
	return b, ok
}

// Structures returns the registered structures in registration order.
// Callers must not mutate the slice.
func (t *Table) Structures() []*Structure { return t.structures }

// Blocks returns the number of block definitions, air included.
func (t *Table) Blocks() int { return len(t.blocks) }
