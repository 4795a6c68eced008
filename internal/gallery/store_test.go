package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prompt-architect-server/internal/models"
)

func testStore(t *testing.T) (*Store, *MemoryPersistence) {
	t.Helper()
	persist := NewMemoryPersistence()
	store := NewStore(persist, zap.NewNop())

	// deterministic, strictly increasing clock
	current := time.UnixMilli(1700000000000)
	store.now = func() time.Time {
		current = current.Add(time.Millisecond)
		return current
	}
	return store, persist
}

func neonScene() models.SceneData {
	scene := models.DefaultScene()
	scene.SceneDescription = "A lone detective in neon rain"
	scene.Shots[0].Parameters.Lighting = "neon"
	return scene
}

func TestSaveCreatesNewLineage(t *testing.T) {
	store, persist := testStore(t)

	pending := store.RecordGeneration(neonScene(), "generated text")
	saved, err := store.Save(context.Background(), pending, "first cut", "")
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, models.VisibilityPrivate, saved.Visibility)
	require.Len(t, saved.Versions, 1)
	assert.Equal(t, "generated text", saved.Versions[0].Prompt)
	assert.Equal(t, "first cut", saved.Versions[0].VersionNotes)

	_, err = time.Parse(time.RFC3339, saved.Versions[0].CreatedAt)
	assert.NoError(t, err)

	// flushed synchronously
	data, _ := persist.Load(context.Background(), GalleryKey)
	var onDisk []models.SavedPrompt
	require.NoError(t, json.Unmarshal(data, &onDisk))
	require.Len(t, onDisk, 1)
	assert.Equal(t, saved.ID, onDisk[0].ID)
}

func TestSaveRemixPrependsVersion(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, store.RecordGeneration(neonScene(), "v1"), "", "")
	require.NoError(t, err)

	remixed, err := store.Remix(first.ID, 0)
	require.NoError(t, err)
	remixed.Shots[0].Parameters.Genre = "thriller"

	second, err := store.Save(ctx, store.RecordGeneration(remixed, "v2"), "darker", first.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Versions, 2)
	assert.Equal(t, "v2", second.Versions[0].Prompt)
	assert.Equal(t, "v1", second.Versions[1].Prompt)

	// exactly one lineage exists
	assert.Len(t, store.List(), 1)
}

func TestSaveUnknownRemixSourceCreatesNewLineage(t *testing.T) {
	store, _ := testStore(t)

	saved, err := store.Save(context.Background(), store.RecordGeneration(neonScene(), "text"), "", "deleted-id")
	require.NoError(t, err)
	require.Len(t, saved.Versions, 1)
	assert.Len(t, store.List(), 1)
}

func TestSaveWithoutPrompt(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.Save(context.Background(), Pending{Scene: neonScene()}, "", "")
	assert.ErrorIs(t, err, models.ErrNothingToSave)
}

func TestSaveRevertsOnFlushFailure(t *testing.T) {
	persist := NewMockPersistence(t)
	persist.On("Store", mock.Anything, GalleryKey, mock.Anything).Return(errors.New("disk full"))

	store := NewStore(persist, zap.NewNop())

	_, err := store.Save(context.Background(), store.RecordGeneration(neonScene(), "text"), "", "")
	require.Error(t, err)
	assert.Empty(t, store.List())
}

func TestListNewestFirst(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	first, _ := store.Save(ctx, store.RecordGeneration(neonScene(), "a"), "", "")
	second, _ := store.Save(ctx, store.RecordGeneration(neonScene(), "b"), "", "")

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDelete(t *testing.T) {
	store, persist := testStore(t)
	ctx := context.Background()

	saved, _ := store.Save(ctx, store.RecordGeneration(neonScene(), "text"), "", "")

	require.NoError(t, store.Delete(ctx, saved.ID))
	assert.Empty(t, store.List())

	data, _ := persist.Load(ctx, GalleryKey)
	assert.Equal(t, "[]", string(data))

	assert.ErrorIs(t, store.Delete(ctx, saved.ID), models.ErrPromptNotFound)
}

func TestToggleVisibility(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	saved, _ := store.Save(ctx, store.RecordGeneration(neonScene(), "text"), "", "")

	vis, err := store.ToggleVisibility(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPublic, vis)

	vis, err = store.ToggleVisibility(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPrivate, vis)

	_, err = store.ToggleVisibility(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrPromptNotFound)
}

func TestRemix(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	scene := neonScene()
	saved, _ := store.Save(ctx, store.RecordGeneration(scene, "text"), "", "")

	t.Run("copies scene fields, not the prompt", func(t *testing.T) {
		remixed, err := store.Remix(saved.ID, 0)
		require.NoError(t, err)

		assert.Equal(t, scene.SceneDescription, remixed.SceneDescription)
		assert.Equal(t, "neon", remixed.Shots[0].Parameters.Lighting)
	})

	t.Run("missing lineage or version", func(t *testing.T) {
		_, err := store.Remix("missing", 0)
		assert.ErrorIs(t, err, models.ErrPromptNotFound)

		_, err = store.Remix(saved.ID, 5)
		assert.ErrorIs(t, err, models.ErrVersionNotFound)
	})

	t.Run("mutating the remix leaves the stored version intact", func(t *testing.T) {
		remixed, err := store.Remix(saved.ID, 0)
		require.NoError(t, err)
		remixed.Shots[0].Parameters.Lighting = "studio"

		kept, err := store.Get(saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "neon", kept.Versions[0].Shots[0].Parameters.Lighting)
	})
}

func TestLoadRoundTrip(t *testing.T) {
	store, persist := testStore(t)
	ctx := context.Background()

	saved, _ := store.Save(ctx, store.RecordGeneration(neonScene(), "text"), "notes", "")

	reloaded := NewStore(persist, zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))

	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, "text", list[0].Versions[0].Prompt)
}

func TestLoadMissingDocument(t *testing.T) {
	store := NewStore(NewMemoryPersistence(), zap.NewNop())
	require.NoError(t, store.Load(context.Background()))
	assert.Empty(t, store.List())
}

func TestHistoryLog(t *testing.T) {
	persist := NewMemoryPersistence()
	history := NewHistoryLog(persist, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, history.Append(ctx, "a detective in the rain"))
	require.NoError(t, history.Append(ctx, "a dancing robot"))

	records := history.List()
	require.Len(t, records, 2)
	assert.Equal(t, "a detective in the rain", records[0].Text)

	reloaded := NewHistoryLog(persist, zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	assert.Len(t, reloaded.List(), 2)
}
