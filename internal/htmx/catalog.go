package htmx

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed attributes.yaml
var attributesYAML []byte

// Attribute is a single completion candidate.
type Attribute struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Catalog is the sorted set of known htmx attributes.
type Catalog struct {
	attributes []Attribute
}

// LoadCatalog parses a YAML list of attributes.
func LoadCatalog(data []byte) (*Catalog, error) {
	var attributes []Attribute
	if err := yaml.Unmarshal(data, &attributes); err != nil {
		return nil, fmt.Errorf("failed to parse attribute catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(attributes))
	for i, a := range attributes {
		if a.Name == "" {
			return nil, fmt.Errorf("attribute %d has no name", i)
		}
		if _, ok := seen[a.Name]; ok {
			return nil, fmt.Errorf("duplicate attribute %s", a.Name)
		}
		seen[a.Name] = struct{}{}
		attributes[i].Description = strings.TrimSpace(a.Description)
	}

	sort.Slice(attributes, func(i, j int) bool {
		return attributes[i].Name < attributes[j].Name
	})
	return &Catalog{attributes: attributes}, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(attributesYAML)
}

// Match returns the attributes whose name starts with prefix. An empty
// prefix matches nothing.
func (c *Catalog) Match(prefix string) []Attribute {
	matches := []Attribute{}
	if prefix == "" {
		return matches
	}
	for _, a := range c.attributes {
		if strings.HasPrefix(a.Name, prefix) {
			matches = append(matches, a)
		}
	}
	return matches
}

// Len returns the number of attributes in the catalog.
func (c *Catalog) Len() int {
	return len(c.attributes)
}
