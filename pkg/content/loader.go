package content

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// packSchema constrains content-pack documents before they are decoded
// into typed definitions, so a malformed pack fails startup with a
// schema path instead of a zero-valued biome.
const packSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "blocks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "solid": {"type": "boolean"},
          "breakTime": {"type": "number", "minimum": 0}
        }
      }
    },
    "biomes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "temperature", "humidity", "layers"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "temperature": {"$ref": "#/$defs/range"},
          "humidity": {"$ref": "#/$defs/range"},
          "heightAmplitude": {"type": "number"},
          "heightOffset": {"type": "number"},
          "peakFrequency": {"type": "number", "minimum": 0},
          "peakAmplitude": {"type": "number", "minimum": 0},
          "layers": {
            "type": "object",
            "required": ["surface", "subsurface", "deep"],
            "additionalProperties": false,
            "properties": {
              "surface": {"type": "string"},
              "surfaceDepth": {"type": "integer", "minimum": 0},
              "subsurface": {"type": "string"},
              "subsurfaceDepth": {"type": "integer", "minimum": 0},
              "deep": {"type": "string"}
            }
          }
        }
      }
    },
    "structures": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "rarity", "minDistance", "biomes", "pattern"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "rarity": {"type": "number", "minimum": 0, "maximum": 1},
          "minDistance": {"type": "number", "minimum": 0},
          "biomes": {"type": "array", "items": {"type": "string"}},
          "pattern": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "array", "items": {"type": "string"}}
          },
          "yOffset": {"type": "integer"}
        }
      }
    }
  },
  "$defs": {
    "range": {
      "type": "object",
      "required": ["min", "max"],
      "additionalProperties": false,
      "properties": {
        "min": {"type": "number"},
        "max": {"type": "number"}
      }
    }
  }
}`

// Pack is one YAML content-pack document.
type Pack struct {
	Blocks []struct {
		Name      string  `yaml:"name"`
		Solid     bool    `yaml:"solid"`
		BreakTime float64 `yaml:"breakTime"`
	} `yaml:"blocks"`
	Biomes     []*Biome     `yaml:"biomes"`
	Structures []*Structure `yaml:"structures"`
}

var compiledPackSchema = mustCompilePackSchema()

func mustCompilePackSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("pack.schema.json", strings.NewReader(packSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile("pack.schema.json")
}

// ParsePack validates and decodes one content-pack document.
func ParsePack(data []byte) (*Pack, error) {
	// Validate the generic document first so errors carry schema paths.
	// The schema validator wants json-decoded values, so the YAML doc is
	// round-tripped through encoding/json.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("content: decode pack: %w", err)
	}
	jsonDoc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("content: normalize pack: %w", err)
	}
	var doc any
	if err := json.Unmarshal(jsonDoc, &doc); err != nil {
		return nil, fmt.Errorf("content: normalize pack: %w", err)
	}
	if err := compiledPackSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("content: invalid pack: %w", err)
	}

	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("content: decode pack: %w", err)
	}
	return &p, nil
}

// Apply registers every definition in the pack.
func (r *Registry) Apply(p *Pack) {
	for _, b := range p.Blocks {
		r.RegisterBlock(Block{Name: b.Name, Solid: b.Solid, BreakTime: b.BreakTime})
	}
	for _, b := range p.Biomes {
		r.RegisterBiome(b)
	}
	for _, s := range p.Structures {
		r.RegisterStructure(s)
	}
}

// LoadPackFile reads, validates, and applies a content pack from disk.
func (r *Registry) LoadPackFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("content: read pack: %w", err)
	}
	p, err := ParsePack(data)
	if err != nil {
		return fmt.Errorf("content: pack %s: %w", path, err)
	}
	r.Apply(p)
	return nil
}
