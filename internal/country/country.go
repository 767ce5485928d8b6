// Package country holds the country profile table used to match report rows.
package country

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Profile lists the region and state names that identify a country's rows
// across both historical report schemas.
type Profile struct {
	Regions []string `toml:"regions"`
	States  []string `toml:"states"`
}

// Table maps country identifiers to profiles. It is built once at startup and
// read-only afterwards.
type Table map[string]Profile

// Defaults returns the built-in profile table.
func Defaults() Table {
	return Table{
		"UK": {
			Regions: []string{"UK", "United Kingdom"},
			States:  []string{"", "UK", "United Kingdom"},
		},
		"Italy": {
			Regions: []string{"Italy"},
			States:  []string{""},
		},
	}
}

// Load returns the default table, overlaid with profiles from the TOML file at
// path when path is non-empty. Overlay profiles replace same-named defaults.
func Load(path string) (Table, error) {
	table := Defaults()
	if path == "" {
		return table, nil
	}
	var overlay struct {
		Countries map[string]Profile `toml:"countries"`
	}
	if _, err := toml.DecodeFile(path, &overlay); err != nil {
		return nil, fmt.Errorf("failed to decode country profiles: %w", err)
	}
	for name, profile := range overlay.Countries {
		table[name] = profile
	}
	return table, nil
}

// Lookup returns the profile for a country identifier.
func (t Table) Lookup(name string) (Profile, error) {
	profile, ok := t[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown country %q (available: %s)", name, strings.Join(t.Names(), ", "))
	}
	return profile, nil
}

// Names returns the country identifiers in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Matches reports whether region and state both appear in the profile's
// accepted lists.
func (p Profile) Matches(region, state string) bool {
	return contains(p.Regions, region) && contains(p.States, state)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
