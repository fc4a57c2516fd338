package gen

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/syssam/gqlscaffold/compiler/load"
)

// Default layout and naming settings, matching a Solidus extension.
const (
	DefaultNamespace = "Spree::GraphQL"
	DefaultLibDir    = "lib/solidus_graphql_api/graphql"
	DefaultSpecDir   = "spec/graphql"
)

// Config holds the generator settings.
type Config struct {
	// Namespace is the Ruby module wrapping every generated constant,
	// e.g. "Spree::GraphQL". Schema classes live under <Namespace>::Schema.
	Namespace string `yaml:"namespace"`
	// Target is the root directory of the generated tree.
	Target string `yaml:"target"`
	// LibDir and SpecDir are relative to Target.
	LibDir  string `yaml:"lib_dir"`
	SpecDir string `yaml:"spec_dir"`
	// Overwrite allows replacing existing implementation and test stubs.
	Overwrite bool `yaml:"overwrite"`
	// TypeNames maps schema type names to output names. Values starting
	// with "::" refer to external constants that are never generated.
	TypeNames map[string]string `yaml:"type_names"`
	// BaseOverrides maps output names to the base category they extend.
	BaseOverrides map[string]string `yaml:"base_overrides"`
	// Factories maps underscored type names to test factory names.
	Factories map[string]string `yaml:"factories"`
	// Replacements are applied to the raw introspection document.
	Replacements []load.Replacement `yaml:"replacements"`
	// BuiltinManifest is an optional YAML manifest of built-ins that
	// replaces the embedded graphql-ruby one.
	BuiltinManifest string `yaml:"builtin_manifest"`
	// GraphQLRubyDir is an optional graphql-ruby checkout scanned for
	// built-ins in addition to the manifest.
	GraphQLRubyDir string `yaml:"graphql_ruby_dir"`
	// SDL enables the schema.graphql snapshot.
	SDL bool `yaml:"sdl"`
	// Workers bounds the number of files written in parallel.
	Workers int `yaml:"workers"`
	// Logger receives progress and diagnostics. Defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() *Config {
	return &Config{
		Namespace: DefaultNamespace,
		LibDir:    DefaultLibDir,
		SpecDir:   DefaultSpecDir,
		TypeNames: map[string]string{},
		BaseOverrides: map[string]string{
			"Types::Domain": string(BaseObjectNoID),
		},
		Factories: map[string]string{
			"shop": "store",
		},
	}
}

// LayoutConfig groups the output layout settings.
type LayoutConfig struct {
	Target  string
	LibDir  string
	SpecDir string
}

// Layout returns the output layout settings.
func (c *Config) Layout() LayoutConfig {
	return LayoutConfig{
		Target:  c.Target,
		LibDir:  c.LibDir,
		SpecDir: c.SpecDir,
	}
}

// Log returns the configured logger.
func (c *Config) Log() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// SchemaModule returns the module of the machine-owned schema classes.
func (c *Config) SchemaModule() string {
	return c.Namespace + "::Schema"
}

var namespaceRE = regexp.MustCompile(`^[A-Z]\w*(?:::[A-Z]\w*)*$`)

// Validate checks the settings required for generation.
func (c *Config) Validate() error {
	if !namespaceRE.MatchString(c.Namespace) {
		return NewConfigError("Namespace", c.Namespace, "must be a Ruby constant path such as Spree::GraphQL")
	}
	if c.Target == "" {
		return NewConfigError("Target", nil, "target directory cannot be empty")
	}
	for name, base := range c.BaseOverrides {
		if !IsBaseCategory(base) {
			return NewConfigError("BaseOverrides", name, fmt.Sprintf("unknown base category %q", base))
		}
	}
	return nil
}

// LoadConfigFile reads a YAML config file on top of the defaults.
// Maps from the file are merged into the default maps.
func LoadConfigFile(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError("ConfigFile", path, err.Error())
	}
	var fc Config
	if err := yaml.Unmarshal(buf, &fc); err != nil {
		return nil, NewConfigError("ConfigFile", path, err.Error())
	}
	c := DefaultConfig()
	c.merge(&fc)
	return c, nil
}

func (c *Config) merge(o *Config) {
	if o.Namespace != "" {
		c.Namespace = o.Namespace
	}
	if o.Target != "" {
		c.Target = o.Target
	}
	if o.LibDir != "" {
		c.LibDir = o.LibDir
	}
	if o.SpecDir != "" {
		c.SpecDir = o.SpecDir
	}
	c.Overwrite = c.Overwrite || o.Overwrite
	c.SDL = c.SDL || o.SDL
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.BuiltinManifest != "" {
		c.BuiltinManifest = o.BuiltinManifest
	}
	if o.GraphQLRubyDir != "" {
		c.GraphQLRubyDir = o.GraphQLRubyDir
	}
	maps.Copy(c.TypeNames, o.TypeNames)
	maps.Copy(c.BaseOverrides, o.BaseOverrides)
	maps.Copy(c.Factories, o.Factories)
	c.Replacements = append(c.Replacements, o.Replacements...)
}
