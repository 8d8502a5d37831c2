package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/podplatform/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalFileStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "production_files")
	store, err := NewLocalFileStore(dir, "/production_files/", zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("writes the file and returns its public url", func(t *testing.T) {
		got, err := store.Save(ctx, "ETSY-123456_WL-204_0.pdf", []byte("%PDF-1.4 first"))
		require.NoError(t, err)

		assert.Equal(t, "ETSY-123456_WL-204_0.pdf", got.Key)
		assert.Equal(t, "/production_files/ETSY-123456_WL-204_0.pdf", got.URL)
		assert.Equal(t, int64(14), got.Size)

		data, err := os.ReadFile(filepath.Join(dir, "ETSY-123456_WL-204_0.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 first", string(data))
	})

	t.Run("regenerating replaces the file", func(t *testing.T) {
		_, err := store.Save(ctx, "ETSY-123456_WL-204_0.pdf", []byte("%PDF-1.4 second"))
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "ETSY-123456_WL-204_0.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 second", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files are left behind")
	})

	t.Run("escapes names in the url", func(t *testing.T) {
		got, err := store.Save(ctx, "order 1_SKU_0.pdf", []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, "/production_files/order%201_SKU_0.pdf", got.URL)
	})

	t.Run("rejects names outside the directory", func(t *testing.T) {
		for _, name := range []string{"", "..", "../evil.pdf", "a/b.pdf", `a\b.pdf`, ".hidden"} {
			_, err := store.Save(ctx, name, []byte("x"))
			assert.Error(t, err, name)
		}
	})

	t.Run("honours cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Save(cctx, "late.pdf", []byte("x"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewLocalFileStore_RequiresDir(t *testing.T) {
	_, err := NewLocalFileStore("", "/files", zap.NewNop())
	assert.Error(t, err)
}

func TestNew_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.Production.OutputDir = t.TempDir()
	cfg.Production.PublicBaseURL = "/production_files"

	store, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalFileStore{}, store)

	cfg.Production.StorageBackend = "ftp"
	_, err = New(ctx, cfg, zap.NewNop())
	assert.Error(t, err)
}
