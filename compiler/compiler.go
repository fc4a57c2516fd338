// Package compiler wires the loader, the built-in registry and the
// generator together. It is the entry point used by the command line tool.
package compiler

import (
	"context"
	"fmt"

	"github.com/syssam/gqlscaffold/compiler/builtin"
	"github.com/syssam/gqlscaffold/compiler/gen"
	"github.com/syssam/gqlscaffold/compiler/load"
)

// Result describes a finished generation run.
type Result struct {
	Graph   *gen.Graph
	Metrics *gen.WriterMetrics
}

// Registry returns the built-in registry selected by the config: the
// embedded graphql-ruby manifest, or the configured manifest file,
// extended with the types found in a graphql-ruby checkout if one is set.
func Registry(cfg *gen.Config) (*builtin.Registry, error) {
	var (
		reg = builtin.New(cfg.Log())
		err error
	)
	if cfg.BuiltinManifest != "" {
		err = reg.LoadManifestFile(cfg.BuiltinManifest)
	} else {
		reg, err = builtin.Default(cfg.Log())
	}
	if err != nil {
		return nil, err
	}
	if cfg.GraphQLRubyDir != "" {
		if err := reg.ScanDir(cfg.GraphQLRubyDir); err != nil {
			return nil, err
		}
	}
	cfg.Log().Debug("built-ins loaded", "types", len(reg.Types()), "directives", len(reg.Directives()))
	return reg, nil
}

// LoadGraph validates the config, parses the introspection document at
// schemaPath and returns an unclassified graph.
func LoadGraph(schemaPath string, cfg *gen.Config) (*gen.Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	schema, err := load.ParseFile(schemaPath, load.WithReplacements(cfg.Replacements...))
	if err != nil {
		return nil, fmt.Errorf("gqlscaffold: load schema %s: %w", schemaPath, err)
	}
	cfg.Log().Info("schema loaded", "path", schemaPath, "types", len(schema.Types), "directives", len(schema.Directives))
	reg, err := Registry(cfg)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(cfg, schema, reg)
}

// Generate loads the schema at schemaPath and writes the generated tree
// to the configured target.
func Generate(ctx context.Context, schemaPath string, cfg *gen.Config) (*Result, error) {
	g, err := LoadGraph(schemaPath, cfg)
	if err != nil {
		return nil, err
	}
	metrics, err := gen.Generate(ctx, g)
	if err != nil {
		return nil, err
	}
	return &Result{Graph: g, Metrics: metrics}, nil
}
