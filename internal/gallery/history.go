package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"prompt-architect-server/internal/models"
)

// HistoryLog is the append-only record of deconstruction queries, persisted
// under its own key through the same port as the gallery.
type HistoryLog struct {
	mu      sync.Mutex
	records []models.QueryRecord
	persist Persistence
	logger  *zap.Logger
	now     func() time.Time
}

func NewHistoryLog(persist Persistence, logger *zap.Logger) *HistoryLog {
	return &HistoryLog{
		persist: persist,
		logger:  logger.Named("query-history"),
		now:     time.Now,
	}
}

// Load reads the persisted history into memory.
func (h *HistoryLog) Load(ctx context.Context) error {
	data, err := h.persist.Load(ctx, QueryHistoryKey)
	if err != nil {
		return fmt.Errorf("load query history: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	var records []models.QueryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse query history: %w", err)
	}
	h.mu.Lock()
	h.records = records
	h.mu.Unlock()
	return nil
}

// Append records one query and flushes. A flush failure drops the record and
// is reported to the caller; history is advisory, so callers may choose to
// log and continue.
func (h *HistoryLog) Append(ctx context.Context, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	previous := h.records
	h.records = append(h.records, models.QueryRecord{
		Text:      text,
		CreatedAt: h.now().UTC().Format(time.RFC3339),
	})

	data, err := json.Marshal(h.records)
	if err != nil {
		h.records = previous
		return fmt.Errorf("marshal query history: %w", err)
	}
	if err := h.persist.Store(ctx, QueryHistoryKey, data); err != nil {
		h.records = previous
		h.logger.Warn("query history flush failed", zap.Error(err))
		return fmt.Errorf("flush query history: %w", err)
	}
	return nil
}

// List returns the recorded queries oldest-first.
func (h *HistoryLog) List() []models.QueryRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.QueryRecord, len(h.records))
	copy(out, h.records)
	return out
}
