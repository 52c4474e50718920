// Package soil holds representative physical properties per soil class name.
package soil

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Properties are the physical properties used by the liquefaction assessment
type Properties struct {
	GammaSat float64 `yaml:"gamma_sat" json:"gamma_sat"` // Saturated unit weight (kN/m³)
	GammaWet float64 `yaml:"gamma_wet" json:"gamma_wet"` // Wet unit weight above water table (kN/m³)
	D50      float64 `yaml:"d50" json:"d50"`             // Mean grain size (mm)
	Fc       float64 `yaml:"fc" json:"fc"`               // Fines content (%)
}

// Default is applied to class names missing from the table
var Default = Properties{GammaSat: 18.0, GammaWet: 16.0, D50: 0.0, Fc: 50.0}

// Entry is a named row of a property table
type Entry struct {
	Name       string `yaml:"name" json:"name"`
	Properties `yaml:",inline"`
}

// Table maps soil class names to properties. Lookups are exact string matches.
// A Table is read-only once built and safe to share between goroutines.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable builds a table from entries. Later duplicates override earlier ones.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if i, ok := t.index[e.Name]; ok {
			t.entries[i] = e
			continue
		}
		t.index[e.Name] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// Validate checks that an entry is physically meaningful
func (e Entry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("soil entry has empty name")
	}
	if e.GammaSat <= 0 || e.GammaWet <= 0 {
		return fmt.Errorf("soil %q: unit weights must be positive (γsat=%.2f, γt=%.2f)", e.Name, e.GammaSat, e.GammaWet)
	}
	if e.D50 < 0 {
		return fmt.Errorf("soil %q: D50 must be non-negative, got %.3f", e.Name, e.D50)
	}
	if e.Fc < 0 || e.Fc > 100 {
		return fmt.Errorf("soil %q: Fc must be within [0, 100], got %.1f", e.Name, e.Fc)
	}
	return nil
}

// Lookup returns the properties of a class name
func (t *Table) Lookup(name string) (Properties, bool) {
	i, ok := t.index[name]
	if !ok {
		return Properties{}, false
	}
	return t.entries[i].Properties, true
}

// Entries returns the table rows in insertion order
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of classes in the table
func (t *Table) Len() int {
	return len(t.entries)
}

// LoadTable reads a YAML list of entries from a file
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read soil table: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse soil table: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("soil table %s has no entries", path)
	}
	return NewTable(entries)
}

// DefaultEntries are representative values for common boring-log class names
var DefaultEntries = []Entry{
	{"表土", Properties{GammaSat: 17.0, GammaWet: 15.0, D50: 0.02, Fc: 80}},
	{"シルト", Properties{GammaSat: 17.5, GammaWet: 15.5, D50: 0.025, Fc: 75}},
	{"砂質シルト", Properties{GammaSat: 18.0, GammaWet: 16.0, D50: 0.04, Fc: 65}},
	{"シルト質細砂", Properties{GammaSat: 18.0, GammaWet: 16.0, D50: 0.07, Fc: 50}},
	{"微細砂", Properties{GammaSat: 18.5, GammaWet: 16.5, D50: 0.1, Fc: 40}},
	{"細砂", Properties{GammaSat: 19.5, GammaWet: 17.5, D50: 0.15, Fc: 30}},
	{"砂", Properties{GammaSat: 19.0, GammaWet: 17.0, D50: 0.3, Fc: 15}},
	{"中砂", Properties{GammaSat: 20.0, GammaWet: 18.0, D50: 0.35, Fc: 10}},
	{"粗砂", Properties{GammaSat: 20.0, GammaWet: 18.0, D50: 0.6, Fc: 0}},
	{"砂礫", Properties{GammaSat: 21.0, GammaWet: 19.0, D50: 2.0, Fc: 0}},
}

// DefaultTable returns a table built from DefaultEntries
func DefaultTable() *Table {
	t, err := NewTable(DefaultEntries)
	if err != nil {
		panic(err)
	}
	return t
}
