// gqlscaffold generates graphql-ruby schema classes, implementation stubs
// and RSpec stubs from a GraphQL introspection document.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/gqlscaffold/compiler/gen"
)

var version = "dev"

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "gqlscaffold",
		Short:         "Generate graphql-ruby sources from a GraphQL introspection schema",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.AddCommand(
		newGenerateCmd(opts),
		newBuiltinsCmd(opts),
	)
	return cmd
}

// logger returns the logger of a command run, writing to stderr.
func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// config loads the config file, or the defaults when none is given.
func (o *rootOptions) config() (*gen.Config, error) {
	if o.configFile == "" {
		return gen.DefaultConfig(), nil
	}
	return gen.LoadConfigFile(o.configFile)
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
