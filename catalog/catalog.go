// Package catalog holds the built-in channel catalog. The catalog is
// configuration: it is loaded once and never mutated at runtime.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed channels.yaml
var builtinYAML []byte

// Entry is one built-in channel definition.
type Entry struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Creator     string `yaml:"creator"`
}

type document struct {
	Channels []Entry `yaml:"channels"`
}

// Catalog is an immutable, ordered list of built-in channels indexed 0..N-1.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from entries. The slice is copied.
func New(entries []Entry) *Catalog {
	c := &Catalog{entries: make([]Entry, len(entries))}
	copy(c.entries, entries)
	return c
}

// Default returns the catalog shipped with the binary.
func Default() *Catalog {
	c, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file. An empty path yields the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document. Every entry needs a
// name and a url; all problems are reported together.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	var errs []error
	for i, e := range doc.Channels {
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("channel %d: name is required", i))
		}
		if strings.TrimSpace(e.URL) == "" {
			errs = append(errs, fmt.Errorf("channel %d: url is required", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return New(doc.Channels), nil
}

// Len returns the number of built-in channels.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// At returns the entry at index i.
func (c *Catalog) At(i int) (Entry, bool) {
	if i < 0 || i >= c.Len() {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, c.Len())
	if c != nil {
		copy(out, c.entries)
	}
	return out
}

// Marshal encodes the catalog back to YAML, e.g. to seed a user override file.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(document{Channels: c.Entries()})
}
