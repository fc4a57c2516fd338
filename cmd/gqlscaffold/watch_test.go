package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebouncePeriod = 50 * time.Millisecond

func startWatcher(t *testing.T, path string) *atomic.Int32 {
	t.Helper()
	w, err := newWatcher(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	w.debounce = testDebouncePeriod

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		require.NoError(t, w.Close())
	})
	return &calls
}

func TestWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	calls := startWatcher(t, path)

	for range 5 {
		require.NoError(t, os.WriteFile(path, []byte(`{"data": {}}`), 0o644))
		time.Sleep(5 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(4 * testDebouncePeriod)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	calls := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	time.Sleep(4 * testDebouncePeriod)
	assert.Zero(t, calls.Load())
}

func TestWatcher_Errors(t *testing.T) {
	_, err := newWatcher(filepath.Join(t.TempDir(), "missing", "schema.json"), slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}
