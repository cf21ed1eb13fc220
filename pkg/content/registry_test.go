package content

import "testing"

func TestFreezeAssignsDenseIDsWithAirAtZero(t *testing.T) {
	table, err := DefaultRegistry().Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	if got := table.Block(Air).Name; got != "air" {
		t.Errorf("Block(0).Name = %q, want air", got)
	}

	id, ok := table.BlockID("grass")
	if !ok {
		t.Fatal("grass not registered")
	}
	if id == Air {
		t.Error("grass must not share id 0 with air")
	}
	if got := table.Block(id).Name; got != "grass" {
		t.Errorf("Block(%d).Name = %q, want grass", id, got)
	}
}

func TestFreezeRejectsDuplicateBlock(t *testing.T) {
	r := NewRegistry()
	r.RegisterBlock(Block{Name: "stone"})
	r.RegisterBlock(Block{Name: "stone"})
	if _, err := r.Freeze(); err == nil {
		t.Fatal("expected duplicate block error")
	}
}

func TestFreezeRejectsUnknownLayerBlock(t *testing.T) {
	r := NewRegistry()
	r.RegisterBiome(&Biome{
		Name:   "void",
		Layers: Layering{Surface: "nope", Subsurface: "nope", Deep: "nope"},
	})
	if _, err := r.Freeze(); err == nil {
		t.Fatal("expected unknown block error")
	}
}

func TestFreezeRejectsStructureWithUnknownBiome(t *testing.T) {
	r := NewRegistry()
	r.RegisterBlock(Block{Name: "log"})
	r.RegisterStructure(&Structure{
		Name:    "tree",
		Biomes:  []string{"atlantis"},
		Pattern: [][]string{{"log"}},
	})
	if _, err := r.Freeze(); err == nil {
		t.Fatal("expected unknown biome error")
	}
}

func TestUnknownBlockIDPanics(t *testing.T) {
	table, err := NewRegistry().Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown block id")
		}
	}()
	table.Block(BlockID(4096))
}

func TestBiomeBlockForDepth(t *testing.T) {
	table, err := DefaultRegistry().Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	plains, ok := table.BiomeByName("plains")
	if !ok {
		t.Fatal("plains not registered")
	}

	if got := plains.BlockForDepth(-1); got != Air {
		t.Errorf("depth -1 = %d, want air", got)
	}
	if got := plains.BlockForDepth(0); got != table.MustBlockID("grass") {
		t.Errorf("depth 0 = %d, want grass", got)
	}
	if got := plains.BlockForDepth(2); got != table.MustBlockID("dirt") {
		t.Errorf("depth 2 = %d, want dirt", got)
	}
	if got := plains.BlockForDepth(30); got != table.MustBlockID("stone") {
		t.Errorf("depth 30 = %d, want stone", got)
	}
}

func TestStructureCellSkipsEmpty(t *testing.T) {
	table, err := DefaultRegistry().Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	var tree *Structure
	for _, s := range table.Structures() {
		if s.Name == "oak_tree" {
			tree = s
		}
	}
	if tree == nil {
		t.Fatal("oak_tree not registered")
	}

	// Row 0 is ["", "log", ""].
	if _, write := tree.Cell(0, 0); write {
		t.Error("empty cell should not be written")
	}
	id, write := tree.Cell(0, 1)
	if !write || id != table.MustBlockID("log") {
		t.Errorf("Cell(0,1) = (%d,%v), want log", id, write)
	}
}
