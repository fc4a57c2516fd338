// Package builtin keeps the catalog of types and directives that the target
// framework provides out of the box. Built-in types are never generated;
// references to them resolve to the framework's own identifiers.
package builtin

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"
)

//go:embed graphql_ruby.yaml
var defaultManifest []byte

// Manifest is the declarative list of built-ins shipped by a framework.
type Manifest struct {
	// Prefix is prepended to type names without an explicit identifier.
	Prefix     string   `yaml:"prefix"`
	Types      []Entry  `yaml:"types"`
	Directives []string `yaml:"directives"`
}

// Entry is one built-in type.
type Entry struct {
	Name       string `yaml:"name"`
	Identifier string `yaml:"identifier,omitempty"`
}

// DefaultPrefix is the identifier prefix of graphql-ruby's built-in types.
const DefaultPrefix = "::GraphQL::Types::"

// Registry holds the built-in type identifiers and directive names.
type Registry struct {
	logger     *slog.Logger
	types      map[string]string
	directives map[string]struct{}
}

// New returns an empty registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:     logger,
		types:      make(map[string]string),
		directives: make(map[string]struct{}),
	}
}

// Default returns a registry loaded with the embedded graphql-ruby manifest.
func Default(logger *slog.Logger) (*Registry, error) {
	r := New(logger)
	if err := r.LoadManifest(defaultManifest); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadManifest registers the built-ins of a YAML manifest.
func (r *Registry) LoadManifest(buf []byte) error {
	var m Manifest
	if err := yaml.Unmarshal(buf, &m); err != nil {
		return fmt.Errorf("builtin: parse manifest: %w", err)
	}
	prefix := m.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	for _, e := range m.Types {
		if e.Name == "" {
			return fmt.Errorf("builtin: manifest type without name")
		}
		id := e.Identifier
		if id == "" {
			id = prefix + e.Name
		}
		r.AddType(e.Name, id)
	}
	for _, d := range m.Directives {
		r.AddDirective(d)
	}
	return nil
}

// LoadManifestFile registers the built-ins of the manifest at path.
func (r *Registry) LoadManifestFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("builtin: read manifest: %w", err)
	}
	return r.LoadManifest(buf)
}

// classDef matches a class definition that names its superclass.
var classDef = regexp.MustCompile(`class\s+(\w+)\s+<`)

// ScanDir discovers built-ins from a graphql-ruby checkout: one type per
// file in lib/graphql/types, one directive per *_directive.rb file in
// lib/graphql/directive.
func (r *Registry) ScanDir(root string) error {
	files, err := filepath.Glob(filepath.Join(root, "lib", "graphql", "types", "*.rb"))
	if err != nil {
		return fmt.Errorf("builtin: scan types: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("builtin: no type definitions found under %s", root)
	}
	for _, f := range files {
		buf, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("builtin: read %s: %w", f, err)
		}
		m := classDef.FindSubmatch(buf)
		if m == nil {
			continue
		}
		name := string(m[1])
		r.AddType(name, DefaultPrefix+name)
	}
	dirs, err := filepath.Glob(filepath.Join(root, "lib", "graphql", "directive", "*_directive.rb"))
	if err != nil {
		return fmt.Errorf("builtin: scan directives: %w", err)
	}
	for _, f := range dirs {
		r.AddDirective(directiveName(strings.TrimSuffix(filepath.Base(f), "_directive.rb")))
	}
	return nil
}

// directiveName converts a snake_case file stem to the lowerCamel directive name.
func directiveName(stem string) string {
	return inflect.CamelizeDownFirst(stem)
}

// AddType registers a built-in type and its fully-qualified identifier.
// The first identifier registered for a name is kept.
func (r *Registry) AddType(name, identifier string) {
	if _, ok := r.types[name]; ok {
		return
	}
	r.logger.Debug("registering built-in type", "type", name, "identifier", identifier)
	r.types[name] = identifier
}

// AddDirective registers a built-in directive.
func (r *Registry) AddDirective(name string) {
	r.directives[name] = struct{}{}
}

// Identifier returns the identifier of a built-in type.
func (r *Registry) Identifier(name string) (string, bool) {
	id, ok := r.types[name]
	return id, ok
}

// IsType reports whether name is a built-in type.
func (r *Registry) IsType(name string) bool {
	_, ok := r.types[name]
	return ok
}

// IsDirective reports whether name is a built-in directive.
func (r *Registry) IsDirective(name string) bool {
	_, ok := r.directives[name]
	return ok
}

// Types returns the built-in type names, sorted.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Directives returns the built-in directive names, sorted.
func (r *Registry) Directives() []string {
	names := make([]string, 0, len(r.directives))
	for n := range r.directives {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
