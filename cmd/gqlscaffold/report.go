package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/syssam/gqlscaffold/compiler"
)

// printReport writes the run summary and the problems found in the schema.
func printReport(out io.Writer, res *compiler.Result, verbose bool) {
	var (
		green  = color.New(color.FgGreen, color.Bold).SprintFunc()
		yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
		faint  = color.New(color.Faint).SprintFunc()
	)
	m := res.Metrics
	fmt.Fprintf(out, "%s %d types, %d files written, %d kept (%d bytes)\n",
		green("✓"), len(res.Graph.Nodes), m.FilesWritten, m.FilesSkipped, m.TotalBytes)
	if verbose {
		for _, p := range m.Skipped {
			fmt.Fprintf(out, "  %s %s\n", faint("kept"), p)
		}
	}
	if res.Graph.Problems.Empty() {
		return
	}
	fmt.Fprintf(out, "%s\n", yellow("Problems:"))
	for _, d := range res.Graph.Problems.Directives {
		fmt.Fprintf(out, "  • directive @%s is not supported by graphql-ruby\n", d)
	}
}
