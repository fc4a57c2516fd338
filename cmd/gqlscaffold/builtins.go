package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/gqlscaffold/compiler"
	"github.com/syssam/gqlscaffold/compiler/gen"
)

func newBuiltinsCmd(root *rootOptions) *cobra.Command {
	var manifest, graphqlRuby string
	cmd := &cobra.Command{
		Use:   "builtins",
		Short: "List the built-in types and directives that are never generated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			opts := []gen.Option{gen.WithLogger(root.logger(cmd.ErrOrStderr()))}
			if manifest != "" {
				opts = append(opts, gen.WithBuiltinManifest(manifest))
			}
			if graphqlRuby != "" {
				opts = append(opts, gen.WithGraphQLRubyDir(graphqlRuby))
			}
			if err := cfg.Apply(opts...); err != nil {
				return err
			}
			reg, err := compiler.Registry(cfg)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tIDENTIFIER")
			for _, name := range reg.Types() {
				id, _ := reg.Identifier(name)
				fmt.Fprintf(tw, "%s\t%s\n", name, id)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "DIRECTIVES")
			for _, d := range reg.Directives() {
				fmt.Fprintf(cmd.OutOrStdout(), "@%s\n", d)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&manifest, "builtins", "", "YAML manifest of built-in types and directives")
	cmd.Flags().StringVar(&graphqlRuby, "graphql-ruby", "", "graphql-ruby checkout to scan for built-ins")
	return cmd
}
