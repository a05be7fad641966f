// Package catalog holds the versioned battery of test cases the harness
// evaluates providers against. The built-in battery is embedded; a user
// catalog directory can override it.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var builtin embed.FS

type Category string

const (
	Math      Category = "math"
	Logic     Category = "logic"
	Retrieval Category = "retrieval"
)

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{Math, Logic, Retrieval}
}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Math, Logic, Retrieval:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q (want math, logic or retrieval)", s)
}

// TestCase is one question/expected-answer pair. Cases are immutable at
// run time; the catalog is loaded, never mutated.
type TestCase struct {
	ID       string   `yaml:"id"`
	Category Category `yaml:"-"`
	Question string   `yaml:"question"`
	Expected string   `yaml:"expected"`
}

type catalogFile struct {
	Category Category   `yaml:"category"`
	Tests    []TestCase `yaml:"tests"`
}

// Catalog maps categories to their ordered test cases. The per-category
// order is the evaluation order and is stable across calls.
type Catalog struct {
	byCategory map[Category][]TestCase
}

// Builtin loads the embedded catalog.
func Builtin() (*Catalog, error) {
	entries, err := builtin.ReadDir("catalogs")
	if err != nil {
		return nil, fmt.Errorf("reading embedded catalogs: %w", err)
	}
	c := &Catalog{byCategory: make(map[Category][]TestCase)}
	for _, e := range sortedByName(entries) {
		data, err := builtin.ReadFile("catalogs/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded catalog %s: %w", e.Name(), err)
		}
		if err := c.add(e.Name(), data); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load reads a catalog from a directory of YAML files, one per category.
// An empty dir falls back to the built-in catalog.
func Load(dir string) (*Catalog, error) {
	if dir == "" {
		return Builtin()
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing catalog dir %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("catalog dir %s contains no yaml files", dir)
	}
	sort.Strings(paths)
	c := &Catalog{byCategory: make(map[Category][]TestCase)}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", p, err)
		}
		if err := c.add(p, data); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(name string, data []byte) error {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", name, err)
	}
	if _, err := ParseCategory(string(f.Category)); err != nil {
		return fmt.Errorf("catalog %s: %w", name, err)
	}
	if len(f.Tests) == 0 {
		return fmt.Errorf("catalog %s: no tests defined", name)
	}
	for i := range f.Tests {
		t := &f.Tests[i]
		if t.ID == "" {
			return fmt.Errorf("catalog %s: test %d: id is required", name, i)
		}
		if t.Question == "" || t.Expected == "" {
			return fmt.Errorf("catalog %s: test %s: question and expected are required", name, t.ID)
		}
		t.Category = f.Category
	}
	c.byCategory[f.Category] = append(c.byCategory[f.Category], f.Tests...)
	return nil
}

// TestsFor returns the ordered cases for a category. The returned slice is
// a copy; callers cannot mutate the catalog through it.
func (c *Catalog) TestsFor(category Category) ([]TestCase, error) {
	cases, ok := c.byCategory[category]
	if !ok || len(cases) == 0 {
		return nil, fmt.Errorf("no tests for category %q", category)
	}
	out := make([]TestCase, len(cases))
	copy(out, cases)
	return out, nil
}

func sortedByName(entries []os.DirEntry) []os.DirEntry {
	out := make([]os.DirEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
