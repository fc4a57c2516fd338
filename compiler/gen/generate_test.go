package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := shopGraph(t, WithSDL(true))
	metrics, err := Generate(context.Background(), g)
	require.NoError(t, err)
	// 24 schema files, 17 implementations, 12 tests, the manifest and the SDL.
	assert.Equal(t, 55, metrics.FilesWritten)
	assert.Zero(t, metrics.FilesSkipped)

	lib := filepath.Join(g.Target, filepath.FromSlash(DefaultLibDir))
	for _, rel := range []string{
		"schema/schema.rb",
		"schema/shop.rb",
		"schema/interfaces/node.rb",
		"schema/inputs/checkout_create.rb",
		"schema/payloads/checkout_create.rb",
		"shop.rb",
		"interfaces/node.rb",
		"file_list.rb",
		"schema.graphql",
	} {
		assert.FileExists(t, filepath.Join(lib, filepath.FromSlash(rel)))
	}
	assert.NoFileExists(t, filepath.Join(lib, "inputs", "checkout_create.rb"))
	assert.FileExists(t, filepath.Join(g.Target, filepath.FromSlash(DefaultSpecDir), "shop_spec.rb"))

	t.Run("second run keeps stubs", func(t *testing.T) {
		impl := filepath.Join(lib, "shop.rb")
		require.NoError(t, os.WriteFile(impl, []byte("# mine\n"), 0o644))
		metrics, err := Generate(context.Background(), g)
		require.NoError(t, err)
		assert.Equal(t, 29, metrics.FilesSkipped)
		buf, err := os.ReadFile(impl)
		require.NoError(t, err)
		assert.Equal(t, "# mine\n", string(buf))
	})
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("no target", func(t *testing.T) {
		g := shopGraph(t)
		g.Target = ""
		_, err := Generate(context.Background(), g)
		assert.True(t, IsConfigError(err))
	})

	t.Run("collision", func(t *testing.T) {
		g := shopGraph(t, WithTypeNames(map[string]string{"Checkout": "Types::Shop"}))
		_, err := Generate(context.Background(), g)
		assert.ErrorIs(t, err, ErrNameCollision)
	})
}
