// Package gallery owns the saved-prompt lineages and their persistence.
// Scene data entering the store is always copied, never aliased: the active
// editing session keeps its own transient scene.
package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prompt-architect-server/internal/models"
)

// Pending is the ephemeral scene+prompt pair eligible for saving. It is not
// persisted until Save.
type Pending struct {
	Scene  models.SceneData
	Prompt string
}

// Store holds every saved lineage in memory and flushes the whole list
// synchronously on each mutation.
type Store struct {
	mu      sync.Mutex
	prompts []models.SavedPrompt
	persist Persistence
	logger  *zap.Logger
	now     func() time.Time
}

func NewStore(persist Persistence, logger *zap.Logger) *Store {
	return &Store{
		persist: persist,
		logger:  logger.Named("gallery"),
		now:     time.Now,
	}
}

// Load reads the persisted gallery into memory. A missing document is an
// empty gallery, not an error.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.persist.Load(ctx, GalleryKey)
	if err != nil {
		return fmt.Errorf("load gallery: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var prompts []models.SavedPrompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return fmt.Errorf("parse gallery document: %w", err)
	}

	s.mu.Lock()
	s.prompts = prompts
	s.mu.Unlock()
	s.logger.Info("gallery loaded", zap.Int("lineages", len(prompts)))
	return nil
}

// RecordGeneration captures the scene+prompt pair produced by a generation.
func (s *Store) RecordGeneration(scene models.SceneData, prompt string) Pending {
	return Pending{Scene: scene.Clone(), Prompt: prompt}
}

// Save persists pending as a new version. With a remixSourceID matching an
// existing lineage the version is prepended there; otherwise a new private
// lineage is created. The in-memory change is rolled back if the flush
// fails.
func (s *Store) Save(ctx context.Context, pending Pending, notes, remixSourceID string) (models.SavedPrompt, error) {
	if pending.Prompt == "" {
		return models.SavedPrompt{}, models.ErrNothingToSave
	}

	version := models.PromptVersion{
		SceneData:    pending.Scene.Clone(),
		Prompt:       pending.Prompt,
		VersionNotes: notes,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.prompts
	var saved models.SavedPrompt

	if idx := s.indexOfLocked(remixSourceID); remixSourceID != "" && idx >= 0 {
		lineage := s.prompts[idx]
		lineage.Versions = append([]models.PromptVersion{version}, lineage.Versions...)

		updated := make([]models.SavedPrompt, len(s.prompts))
		copy(updated, s.prompts)
		updated[idx] = lineage
		s.prompts = updated
		saved = lineage
	} else {
		saved = models.SavedPrompt{
			ID:         s.newIDLocked(),
			Versions:   []models.PromptVersion{version},
			Visibility: models.VisibilityPrivate,
		}
		s.prompts = append([]models.SavedPrompt{saved}, s.prompts...)
	}

	if err := s.flushLocked(ctx); err != nil {
		s.prompts = previous
		return models.SavedPrompt{}, err
	}
	s.logger.Info("prompt saved", zap.String("id", saved.ID), zap.Int("versions", len(saved.Versions)))
	return saved, nil
}

// List returns every lineage newest-first.
func (s *Store) List() []models.SavedPrompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SavedPrompt, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// Get returns one lineage by id.
func (s *Store) Get(id string) (models.SavedPrompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.SavedPrompt{}, models.ErrPromptNotFound
	}
	return s.prompts[idx], nil
}

// Delete removes a lineage entirely. Irreversible.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.ErrPromptNotFound
	}

	previous := s.prompts
	updated := make([]models.SavedPrompt, 0, len(s.prompts)-1)
	updated = append(updated, s.prompts[:idx]...)
	updated = append(updated, s.prompts[idx+1:]...)
	s.prompts = updated

	if err := s.flushLocked(ctx); err != nil {
		s.prompts = previous
		return err
	}
	s.logger.Info("prompt deleted", zap.String("id", id))
	return nil
}

// ToggleVisibility flips a lineage between public and private and returns
// the new state.
func (s *Store) ToggleVisibility(ctx context.Context, id string) (models.Visibility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return "", models.ErrPromptNotFound
	}

	previous := s.prompts
	updated := make([]models.SavedPrompt, len(s.prompts))
	copy(updated, s.prompts)
	updated[idx].Visibility = updated[idx].Visibility.Toggle()
	s.prompts = updated

	if err := s.flushLocked(ctx); err != nil {
		s.prompts = previous
		return "", err
	}
	return s.prompts[idx].Visibility, nil
}

// Remix copies a historical version's scene fields into a fresh editable
// scene. The generated prompt text is not carried over. Versions saved by
// older builds pass through Normalized, so fields they lack come back as
// sentinels.
func (s *Store) Remix(id string, versionIndex int) (models.SceneData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.SceneData{}, models.ErrPromptNotFound
	}
	versions := s.prompts[idx].Versions
	if versionIndex < 0 || versionIndex >= len(versions) {
		return models.SceneData{}, models.ErrVersionNotFound
	}

	return versions[versionIndex].SceneData.Normalized(), nil
}

func (s *Store) indexOfLocked(id string) int {
	for i, p := range s.prompts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// newIDLocked derives a stable id from the save time, suffixed when two
// saves land in the same millisecond.
func (s *Store) newIDLocked() string {
	id := strconv.FormatInt(s.now().UnixMilli(), 10)
	if s.indexOfLocked(id) < 0 {
		return id
	}
	return id + "-" + uuid.NewString()[:8]
}

func (s *Store) flushLocked(ctx context.Context) error {
	data, err := json.Marshal(s.prompts)
	if err != nil {
		return fmt.Errorf("marshal gallery: %w", err)
	}
	if err := s.persist.Store(ctx, GalleryKey, data); err != nil {
		s.logger.Error("gallery flush failed", zap.Error(err))
		return fmt.Errorf("flush gallery: %w", err)
	}
	return nil
}
