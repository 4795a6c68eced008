package gallery

import (
	"context"
	"sync"
)

// Fixed storage keys. Each holds one JSON document.
const (
	GalleryKey      = "prompt-architect:gallery"
	QueryHistoryKey = "prompt-architect:query-history"
)

// Persistence is the durable-storage port. Load returns nil data (no error)
// when the key has never been written. Concurrent processes sharing a key
// are not coordinated: the last writer wins.
type Persistence interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Store(ctx context.Context, key string, data []byte) error
}

// MemoryPersistence keeps documents in a map. Used in tests and as the
// fallback when no durable backend is configured.
type MemoryPersistence struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ Persistence = (*MemoryPersistence)(nil)

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{data: make(map[string][]byte)}
}

func (m *MemoryPersistence) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MemoryPersistence) Store(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}
