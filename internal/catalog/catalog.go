// Package catalog maps internal SKUs to the supplier-facing name and search
// query used to find them in the supplier's product list.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Entry is the supplier-facing view of one SKU.
type Entry struct {
	DisplayName string `yaml:"name" json:"name"`
	SearchQuery string `yaml:"searchQuery" json:"searchQuery"`
}

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	entries map[string]Entry
}

// New builds a catalog from a SKU -> Entry map. The map is copied.
func New(entries map[string]Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for sku, e := range entries {
		sku = strings.TrimSpace(sku)
		if sku == "" {
			return nil, fmt.Errorf("catalog: empty sku")
		}
		if strings.TrimSpace(e.DisplayName) == "" {
			return nil, fmt.Errorf("catalog: sku %q has no name", sku)
		}
		if strings.TrimSpace(e.SearchQuery) == "" {
			return nil, fmt.Errorf("catalog: sku %q has no searchQuery", sku)
		}
		c.entries[sku] = e
	}
	return c, nil
}

// Parse decodes a YAML document of the form `sku: {name, searchQuery}`.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	return New(raw)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog file. An empty path yields the embedded default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Lookup returns the entry for sku. A miss is a normal outcome.
func (c *Catalog) Lookup(sku string) (Entry, bool) {
	e, ok := c.entries[sku]
	return e, ok
}

// DisplayName returns the mapped name, or the raw sku when unmapped.
func (c *Catalog) DisplayName(sku string) string {
	if e, ok := c.entries[sku]; ok {
		return e.DisplayName
	}
	return sku
}

// SKUs returns all known SKUs in sorted order.
func (c *Catalog) SKUs() []string {
	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Len() int { return len(c.entries) }
