package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/gqlscaffold/compiler"
	"github.com/syssam/gqlscaffold/compiler/gen"
)

type generateOptions struct {
	*rootOptions
	out         string
	libDir      string
	specDir     string
	namespace   string
	builtins    string
	graphqlRuby string
	workers     int
	overwrite   bool
	sdl         bool
	watch       bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "generate <schema.json>",
		Short: "Generate the graphql-ruby tree from an introspection document",
		Long: `Generate reads a GraphQL introspection document and writes:
• schema classes under <lib>/schema, replaced on every run
• implementation modules under <lib>, written once
• RSpec stubs under <spec>, written once
• the file_list manifest and, with --sdl, a schema.graphql snapshot

Implementation and spec stubs that already exist are kept unless
--overwrite is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "", "Target directory of the generated tree")
	f.StringVar(&opts.libDir, "lib-dir", "", "Library root, relative to the target")
	f.StringVar(&opts.specDir, "spec-dir", "", "Spec root, relative to the target")
	f.StringVar(&opts.namespace, "namespace", "", "Ruby module wrapping the generated constants")
	f.StringVar(&opts.builtins, "builtins", "", "YAML manifest of built-in types and directives")
	f.StringVar(&opts.graphqlRuby, "graphql-ruby", "", "graphql-ruby checkout to scan for built-ins")
	f.IntVar(&opts.workers, "workers", 0, "Number of files written in parallel")
	f.BoolVar(&opts.overwrite, "overwrite", false, "Replace existing implementation and spec stubs")
	f.BoolVar(&opts.sdl, "sdl", false, "Write a schema.graphql snapshot")
	f.BoolVarP(&opts.watch, "watch", "w", false, "Regenerate when the schema file changes")
	return cmd
}

// options converts the flags that were set into generator options.
func (o *generateOptions) options(cmd *cobra.Command) []gen.Option {
	f := cmd.Flags()
	opts := []gen.Option{gen.WithLogger(o.logger(cmd.ErrOrStderr()))}
	if f.Changed("out") {
		opts = append(opts, gen.WithTarget(o.out))
	}
	if f.Changed("lib-dir") || f.Changed("spec-dir") {
		opts = append(opts, gen.WithLayout(o.libDir, o.specDir))
	}
	if f.Changed("namespace") {
		opts = append(opts, gen.WithNamespace(o.namespace))
	}
	if f.Changed("builtins") {
		opts = append(opts, gen.WithBuiltinManifest(o.builtins))
	}
	if f.Changed("graphql-ruby") {
		opts = append(opts, gen.WithGraphQLRubyDir(o.graphqlRuby))
	}
	if f.Changed("workers") {
		opts = append(opts, gen.WithWorkers(o.workers))
	}
	if f.Changed("overwrite") {
		opts = append(opts, gen.WithOverwrite(o.overwrite))
	}
	if f.Changed("sdl") {
		opts = append(opts, gen.WithSDL(o.sdl))
	}
	return opts
}

func runGenerate(cmd *cobra.Command, opts *generateOptions, schemaPath string) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	if err := cfg.ApplyAll(opts.options(cmd)...); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func(ctx context.Context) error {
		res, err := compiler.Generate(ctx, schemaPath, cfg)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), res, opts.verbose)
		return nil
	}
	if err := run(ctx); err != nil {
		if !opts.watch {
			return err
		}
		cfg.Log().Error("generation failed", "error", err)
	}
	if !opts.watch {
		return nil
	}
	w, err := newWatcher(schemaPath, cfg.Log())
	if err != nil {
		return err
	}
	defer w.Close()
	cfg.Log().Info("watching schema for changes", "path", schemaPath)
	return w.Run(ctx, run)
}
