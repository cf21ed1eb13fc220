package content

import (
	"os"
	"path/filepath"
	"testing"
)

const samplePack = `
blocks:
  - name: mud
    solid: true
    breakTime: 0.4
biomes:
  - name: swamp
    temperature: {min: 0.4, max: 0.8}
    humidity: {min: 0.8, max: 1}
    heightAmplitude: 0.3
    heightOffset: 40
    layers:
      surface: mud
      surfaceDepth: 2
      subsurface: dirt
      subsurfaceDepth: 3
      deep: stone
structures:
  - name: swamp_log
    rarity: 0.2
    minDistance: 8
    biomes: [swamp]
    pattern:
      - [log, log, log]
`

func TestParsePackAndFreeze(t *testing.T) {
	p, err := ParsePack([]byte(samplePack))
	if err != nil {
		t.Fatalf("ParsePack: %v", err)
	}
	if len(p.Blocks) != 1 || p.Blocks[0].Name != "mud" {
		t.Fatalf("blocks = %+v, want one mud block", p.Blocks)
	}
	if len(p.Biomes) != 1 || p.Biomes[0].Name != "swamp" {
		t.Fatalf("biomes = %+v, want one swamp biome", p.Biomes)
	}

	r := DefaultRegistry()
	r.Apply(p)
	table, err := r.Freeze()
	if err != nil {
		t.Fatalf("Freeze after Apply: %v", err)
	}
	swamp, ok := table.BiomeByName("swamp")
	if !ok {
		t.Fatal("swamp biome missing after Apply")
	}
	if got := swamp.BlockForDepth(0); got != table.MustBlockID("mud") {
		t.Errorf("swamp surface = %d, want mud", got)
	}
}

func TestParsePackRejectsBadRarity(t *testing.T) {
	bad := `
structures:
  - name: tower
    rarity: 1.5
    minDistance: 3
    biomes: [plains]
    pattern:
      - [stone]
`
	if _, err := ParsePack([]byte(bad)); err == nil {
		t.Fatal("expected schema error for rarity > 1")
	}
}

func TestParsePackRejectsUnknownKeys(t *testing.T) {
	bad := `
biomes:
  - name: x
    temperature: {min: 0, max: 1}
    humidity: {min: 0, max: 1}
    rainfall: heavy
    layers: {surface: dirt, subsurface: dirt, deep: stone}
`
	if _, err := ParsePack([]byte(bad)); err == nil {
		t.Fatal("expected schema error for unknown key")
	}
}

func TestLoadPackFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	if err := os.WriteFile(path, []byte(samplePack), 0o644); err != nil {
		t.Fatal(err)
	}

	r := DefaultRegistry()
	if err := r.LoadPackFile(path); err != nil {
		t.Fatalf("LoadPackFile: %v", err)
	}
	if _, err := r.Freeze(); err != nil {
		t.Fatalf("Freeze: %v", err)
	}
}

func TestLoadPackFileMissing(t *testing.T) {
	r := DefaultRegistry()
	if err := r.LoadPackFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
