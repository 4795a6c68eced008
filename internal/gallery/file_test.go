package gallery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFilePersistence(t *testing.T) {
	dir := t.TempDir()
	persist, err := NewFilePersistence(dir, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("missing key loads as empty", func(t *testing.T) {
		data, err := persist.Load(ctx, GalleryKey)
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, persist.Store(ctx, GalleryKey, []byte(`[{"id":"1"}]`)))

		data, err := persist.Load(ctx, GalleryKey)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(data))
	})

	t.Run("key characters are sanitized", func(t *testing.T) {
		require.NoError(t, persist.Store(ctx, QueryHistoryKey, []byte("[]")))

		_, err := os.Stat(filepath.Join(dir, "prompt-architect_query-history.json"))
		assert.NoError(t, err)
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp")
		}
	})
}
