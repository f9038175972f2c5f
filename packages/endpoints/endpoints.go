// Package endpoints loads named endpoint definitions from a YAML file and
// invokes them through the client's verb methods. A definitions file gives a
// CLI or test harness a structured endpoint set without writing Go closures.
package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/fetchkit/packages/client"
)

// Definition is one named operation from a definitions file.
type Definition struct {
	Name        string            `yaml:"name"`
	Method      string            `yaml:"method"`
	Path        string            `yaml:"path"`
	Description string            `yaml:"description,omitempty"`
	SuccessMsg  *string           `yaml:"successMsg,omitempty"`
	ErrorMsg    *string           `yaml:"errorMsg,omitempty"`
	Params      map[string]string `yaml:"params,omitempty"`
}

// Set is an ordered collection of definitions with name lookup.
type Set struct {
	defs   []Definition
	byName map[string]Definition
}

type file struct {
	Endpoints []Definition `yaml:"endpoints"`
}

// Load reads and validates a definitions file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Set from raw YAML.
func Parse(data []byte) (*Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse endpoints file: %w", err)
	}
	if len(f.Endpoints) == 0 {
		return nil, fmt.Errorf("endpoints file defines no endpoints")
	}

	s := &Set{byName: make(map[string]Definition, len(f.Endpoints))}
	for i, def := range f.Endpoints {
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("endpoint %d: %w", i, err)
		}
		if _, dup := s.byName[def.Name]; dup {
			return nil, fmt.Errorf("duplicate endpoint name %q", def.Name)
		}
		s.defs = append(s.defs, def)
		s.byName[def.Name] = def
	}
	return s, nil
}

func validate(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("missing name")
	}
	if def.Path == "" || def.Path[0] != '/' {
		return fmt.Errorf("%s: path must start with /", def.Name)
	}
	switch def.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return nil
	default:
		return fmt.Errorf("%s: unsupported method %q", def.Name, def.Method)
	}
}

// Get returns the definition registered under name.
func (s *Set) Get(name string) (Definition, bool) {
	def, ok := s.byName[name]
	return def, ok
}

// All returns the definitions in file order.
func (s *Set) All() []Definition {
	defs := make([]Definition, len(s.defs))
	copy(defs, s.defs)
	return defs
}

// Len returns the number of definitions.
func (s *Set) Len() int {
	return len(s.defs)
}

// Invoke executes the named endpoint through c. Extra parameters override the
// defaults from the definition file; opts defaults to the definition's
// success/error messages when nil.
func (s *Set) Invoke(ctx context.Context, c *client.Client, name string, params *client.Params, opts *client.Options) (any, error) {
	def, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown endpoint %q", name)
	}

	merged := client.NewParams()
	for k, v := range def.Params {
		merged.Set(k, v)
	}
	if params != nil {
		for _, k := range params.Keys() {
			v, _ := params.Get(k)
			merged.Set(k, v)
		}
	}

	if opts == nil {
		opts = &client.Options{SuccessMsg: def.SuccessMsg, ErrorMsg: def.ErrorMsg}
	}

	return c.Do(ctx, def.Method, client.Descriptor{Path: def.Path, Params: merged, Options: opts})
}
