package gen

import (
	"errors"
	"log/slog"
	"maps"

	"github.com/syssam/gqlscaffold/compiler/load"
)

// Option configures code generation.
type Option func(*Config) error

// WithNamespace sets the Ruby module wrapping the generated constants.
func WithNamespace(ns string) Option {
	return func(c *Config) error {
		if !namespaceRE.MatchString(ns) {
			return NewConfigError("Namespace", ns, "must be a Ruby constant path such as Spree::GraphQL")
		}
		c.Namespace = ns
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithLayout sets the library and spec roots, relative to the target.
// Empty values keep the current setting.
func WithLayout(libDir, specDir string) Option {
	return func(c *Config) error {
		if libDir != "" {
			c.LibDir = libDir
		}
		if specDir != "" {
			c.SpecDir = specDir
		}
		return nil
	}
}

// WithOverwrite controls whether implementation and test stubs that
// already exist are replaced.
func WithOverwrite(overwrite bool) Option {
	return func(c *Config) error {
		c.Overwrite = overwrite
		return nil
	}
}

// WithTypeNames adds manual schema name to output name mappings.
// Manual mappings take precedence over built-ins.
func WithTypeNames(names map[string]string) Option {
	return func(c *Config) error {
		if c.TypeNames == nil {
			c.TypeNames = make(map[string]string)
		}
		for k, v := range names {
			if k == "" || v == "" {
				return NewConfigError("TypeNames", k, "type name mapping cannot be empty")
			}
			c.TypeNames[k] = v
		}
		return nil
	}
}

// WithBaseOverride makes the output name extend the given base category.
func WithBaseOverride(name string, base BaseCategory) Option {
	return func(c *Config) error {
		if !IsBaseCategory(string(base)) {
			return NewConfigError("BaseOverrides", base, "unknown base category")
		}
		if c.BaseOverrides == nil {
			c.BaseOverrides = make(map[string]string)
		}
		c.BaseOverrides[name] = string(base)
		return nil
	}
}

// WithFactories sets the factory names used by test stubs.
func WithFactories(factories map[string]string) Option {
	return func(c *Config) error {
		if c.Factories == nil {
			c.Factories = make(map[string]string)
		}
		maps.Copy(c.Factories, factories)
		return nil
	}
}

// WithReplacements adds text replacements applied to the raw schema.
func WithReplacements(r ...load.Replacement) Option {
	return func(c *Config) error {
		for _, x := range r {
			if x.Old == "" {
				return NewConfigError("Replacements", x.New, "replacement source cannot be empty")
			}
		}
		c.Replacements = append(c.Replacements, r...)
		return nil
	}
}

// WithBuiltinManifest sets a YAML manifest that replaces the embedded
// list of built-in types and directives.
func WithBuiltinManifest(path string) Option {
	return func(c *Config) error {
		c.BuiltinManifest = path
		return nil
	}
}

// WithGraphQLRubyDir sets a graphql-ruby checkout to scan for built-ins.
func WithGraphQLRubyDir(dir string) Option {
	return func(c *Config) error {
		c.GraphQLRubyDir = dir
		return nil
	}
}

// WithSDL enables the schema.graphql snapshot.
func WithSDL(enabled bool) Option {
	return func(c *Config) error {
		c.SDL = enabled
		return nil
	}
}

// WithWorkers bounds the number of files written in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a Config from the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
