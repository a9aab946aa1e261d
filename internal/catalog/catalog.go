// Package catalog maps desktop icon kinds to the window they open.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed icons.yaml
var defaultIcons []byte

// Entry describes one icon kind
type Entry struct {
	Kind    string   `yaml:"kind"`
	Title   string   `yaml:"title"`
	Icon    string   `yaml:"icon"`  // asset path
	Glyph   string   `yaml:"glyph"` // short text drawn in the terminal
	Content []string `yaml:"content"`
}

type file struct {
	Icons []Entry `yaml:"icons"`
}

// Catalog is an ordered set of entries keyed by kind
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Parse(defaultIcons)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded icons.yaml: %v", err))
	}
	return c
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{index: make(map[string]int)}
	for i, e := range f.Icons {
		if err := c.add(e); err != nil {
			return nil, fmt.Errorf("icon %d: %w", i, err)
		}
	}
	return c, nil
}

// Load reads a catalog file and layers it over the built-in entries.
// Entries with a known kind replace the built-in one in place; new kinds
// are appended.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	user, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c := Default()
	for _, e := range user.entries {
		if err := c.add(e); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(e Entry) error {
	e.Kind = strings.TrimSpace(e.Kind)
	if e.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if e.Title == "" {
		e.Title = e.Kind
	}
	if e.Glyph == "" {
		e.Glyph = "[?]"
	}

	if i, ok := c.index[e.Kind]; ok {
		c.entries[i] = e
		return nil
	}
	c.index[e.Kind] = len(c.entries)
	c.entries = append(c.entries, e)
	return nil
}

// Lookup returns the entry for kind
func (c *Catalog) Lookup(kind string) (Entry, bool) {
	i, ok := c.index[kind]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Kinds returns all kinds in declaration order
func (c *Catalog) Kinds() []string {
	kinds := make([]string, len(c.entries))
	for i, e := range c.entries {
		kinds[i] = e.Kind
	}
	return kinds
}

// Entries returns all entries in declaration order
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
