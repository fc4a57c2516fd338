package gen

import (
	"context"
)

// Generate builds the graph and writes its outputs to the configured
// target. It returns the writer metrics of the run.
func Generate(ctx context.Context, g *Graph) (*WriterMetrics, error) {
	if g.Config == nil || g.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	if err := g.Build(); err != nil {
		return nil, err
	}
	outputs, err := g.Outputs()
	if err != nil {
		return nil, err
	}
	w := NewWriter(g.Config)
	if err := w.WriteAll(ctx, outputs); err != nil {
		return w.Metrics(), err
	}
	g.Log().Info("generation done",
		"written", w.Metrics().FilesWritten,
		"skipped", w.Metrics().FilesSkipped,
		"bytes", w.Metrics().TotalBytes,
	)
	return w.Metrics(), nil
}
