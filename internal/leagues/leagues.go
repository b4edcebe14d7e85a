// Package leagues holds the fixed set of supported leagues and how they map
// onto upstream sport paths.
package leagues

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed leagues.yaml
var builtin []byte

// League describes one supported competition.
type League struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
	Sport string `yaml:"sport" json:"sport"`
	Path  string `yaml:"path" json:"-"`
}

type document struct {
	Default string   `yaml:"default"`
	Leagues []League `yaml:"leagues"`
}

// Registry is an immutable, ordered set of leagues.
type Registry struct {
	order      []League
	byKey      map[string]League
	defaultKey string
}

// Builtin returns the registry compiled into the binary.
func Builtin() *Registry {
	reg, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("leagues: builtin registry invalid: %v", err))
	}
	return reg
}

// Load reads a registry from a YAML file. An empty path yields Builtin.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read leagues file: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse leagues: %w", err)
	}
	if len(doc.Leagues) == 0 {
		return nil, errors.New("no leagues defined")
	}

	reg := &Registry{byKey: make(map[string]League, len(doc.Leagues))}
	for _, l := range doc.Leagues {
		l.Key = normalizeKey(l.Key)
		if l.Key == "" || l.Path == "" {
			return nil, fmt.Errorf("league %q missing key or path", l.Label)
		}
		if _, dup := reg.byKey[l.Key]; dup {
			return nil, fmt.Errorf("duplicate league %q", l.Key)
		}
		if l.Label == "" {
			l.Label = strings.ToUpper(l.Key)
		}
		reg.byKey[l.Key] = l
		reg.order = append(reg.order, l)
	}

	reg.defaultKey = normalizeKey(doc.Default)
	if reg.defaultKey == "" {
		reg.defaultKey = reg.order[0].Key
	}
	if _, ok := reg.byKey[reg.defaultKey]; !ok {
		return nil, fmt.Errorf("default league %q is not defined", doc.Default)
	}
	return reg, nil
}

// Lookup finds a league by key, ignoring case and surrounding whitespace.
func (r *Registry) Lookup(key string) (League, bool) {
	l, ok := r.byKey[normalizeKey(key)]
	return l, ok
}

// Default returns the league used when a request names none.
func (r *Registry) Default() League {
	return r.byKey[r.defaultKey]
}

// All returns leagues in declaration order.
func (r *Registry) All() []League {
	out := make([]League, len(r.order))
	copy(out, r.order)
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
