package gen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Writer stores generated outputs on disk with parallel execution.
// Schema files, the manifest and the SDL snapshot are always replaced;
// implementation and test stubs are written only when missing, unless
// overwrite is enabled.
type Writer struct {
	layout    LayoutConfig
	overwrite bool
	workers   int
	cfg       *Config

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks what a write pass did.
type WriterMetrics struct {
	FilesWritten int
	FilesSkipped int
	TotalBytes   int64
	// Skipped lists the paths that were left untouched.
	Skipped []string
}

// NewWriter creates a writer for the config's layout.
func NewWriter(c *Config) *Writer {
	w := &Writer{
		layout:    c.Layout(),
		overwrite: c.Overwrite,
		workers:   runtime.GOMAXPROCS(0),
		cfg:       c,
		metrics:   &WriterMetrics{},
	}
	if c.Workers > 0 {
		w.workers = c.Workers
	}
	return w
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// FilePath returns the path of an output, relative to the target.
func (w *Writer) FilePath(o *Output) string {
	lib, spec := filepath.FromSlash(w.layout.LibDir), filepath.FromSlash(w.layout.SpecDir)
	p := filepath.FromSlash(o.Path)
	switch o.Artifact {
	case ArtifactSchema:
		return filepath.Join(lib, "schema", p+".rb")
	case ArtifactTest:
		return filepath.Join(spec, p+"_spec.rb")
	case ArtifactSDL:
		return filepath.Join(lib, p)
	default:
		return filepath.Join(lib, p+".rb")
	}
}

// WriteAll writes the outputs in parallel.
func (w *Writer) WriteAll(ctx context.Context, outputs []*Output) error {
	if w.layout.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if err := os.MkdirAll(w.layout.Target, 0o755); err != nil {
		return NewGenerationError("write", w.layout.Target, "create output directory", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, o := range outputs {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.write(o)
			}
		})
	}
	return eg.Wait()
}

func (w *Writer) write(o *Output) error {
	rel := w.FilePath(o)
	full := filepath.Join(w.layout.Target, rel)
	if o.Artifact.Editable() && !w.overwrite {
		_, err := os.Stat(full)
		switch {
		case err == nil:
			w.cfg.Log().Debug("not overwriting existing file", "file", rel)
			w.mu.Lock()
			w.metrics.FilesSkipped++
			w.metrics.Skipped = append(w.metrics.Skipped, rel)
			w.mu.Unlock()
			return nil
		case !errors.Is(err, fs.ErrNotExist):
			return NewGenerationError("write", rel, "stat existing file", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return NewGenerationError("write", rel, "create directory", err)
	}
	content := o.Content
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return NewGenerationError("write", rel, fmt.Sprintf("write %s artifact", o.Artifact), err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(content))
	w.mu.Unlock()
	return nil
}
