package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lookups.yaml
var defaultLookups []byte

// Lookups holds the static tables used to shape upstream requests and responses.
// They are easier to manage in YAML than in env vars.
type Lookups struct {
	DefaultCountry string            `yaml:"default_country"`
	Countries      []CountryRule     `yaml:"countries"`
	Languages      map[string]string `yaml:"languages"` // ISO 639-1 code -> display name
}

// CountryRule maps location keywords to a two-letter country code.
type CountryRule struct {
	Code     string   `yaml:"code"`
	Keywords []string `yaml:"keywords"`
}

// DefaultLookups returns the built-in tables.
func DefaultLookups() *Lookups {
	var l Lookups
	if err := yaml.Unmarshal(defaultLookups, &l); err != nil {
		panic(fmt.Sprintf("config: embedded lookups.yaml is invalid: %v", err))
	}
	l.normalize()
	return &l
}

// LoadLookups loads the lookup tables, overriding the built-in defaults with
// any table present in the YAML file at path.
// Returns the defaults without error if the file doesn't exist.
func LoadLookups(path string) (*Lookups, error) {
	l := DefaultLookups()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return l, nil
		}
		return nil, err
	}

	var override Lookups
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if override.DefaultCountry != "" {
		l.DefaultCountry = override.DefaultCountry
	}
	if len(override.Countries) > 0 {
		l.Countries = override.Countries
	}
	for code, name := range override.Languages {
		l.Languages[code] = name
	}
	l.normalize()

	return l, nil
}

// normalize lower-cases codes and keywords so matching can stay simple.
func (l *Lookups) normalize() {
	l.DefaultCountry = strings.ToLower(strings.TrimSpace(l.DefaultCountry))
	if l.DefaultCountry == "" {
		l.DefaultCountry = "us"
	}
	for i := range l.Countries {
		l.Countries[i].Code = strings.ToLower(strings.TrimSpace(l.Countries[i].Code))
		for j, k := range l.Countries[i].Keywords {
			l.Countries[i].Keywords[j] = strings.ToLower(strings.TrimSpace(k))
		}
	}
	langs := make(map[string]string, len(l.Languages))
	for code, name := range l.Languages {
		langs[strings.ToLower(strings.TrimSpace(code))] = name
	}
	l.Languages = langs
}
