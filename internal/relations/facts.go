package relations

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed canon_facts.yaml
var defaultFacts []byte

// NamePair is one curated relationship fact between two display names.
type NamePair struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// FactTable is the curated relationship data loaded at startup. It is
// plain data so deployments can swap the canon without a rebuild.
type FactTable struct {
	Friends []NamePair `yaml:"friends"`
	Enemies []NamePair `yaml:"enemies"`
}

// LoadFacts reads a fact table from path, or the embedded default canon
// when path is empty.
func LoadFacts(path string) (*FactTable, error) {
	raw := defaultFacts
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("relations: read facts file: %w", err)
		}
		raw = b
	}
	var t FactTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("relations: parse facts: %w", err)
	}
	return &t, nil
}
