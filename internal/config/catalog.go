package config

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Family describes one hardware family entry in the catalog.
type Family struct {
	QuotaCode string `yaml:"quotaCode"`
}

// Catalog maps hardware-family names to their spot quota codes. It is a
// static input: the preflight pipeline only ever derives the distinct set of
// quota codes to probe from it.
type Catalog struct {
	Families map[string]Family `yaml:"families"`
}

// LoadCatalog parses the embedded hardware-family catalog.
func LoadCatalog() (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal family catalog: %w", err)
	}
	if len(catalog.Families) == 0 {
		return nil, fmt.Errorf("family catalog is empty")
	}
	return &catalog, nil
}

// QuotaCodes returns the deduplicated, sorted set of quota codes across all
// families. Several families share a code, so the result is typically much
// smaller than the family list.
func (c *Catalog) QuotaCodes() []string {
	seen := map[string]bool{}
	for _, family := range c.Families {
		if family.QuotaCode != "" {
			seen[family.QuotaCode] = true
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
