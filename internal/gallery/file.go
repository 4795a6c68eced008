package gallery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var _ Persistence = (*filePersistence)(nil)

// filePersistence stores each key as a JSON file in a directory. Writes go
// through a temp file and rename so a crash never leaves a half-written
// document behind.
type filePersistence struct {
	dir    string
	logger *zap.Logger
}

// NewFilePersistence returns a Persistence rooted at dir, creating it if
// needed. Intended for development and single-node runs.
func NewFilePersistence(dir string, logger *zap.Logger) (Persistence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &filePersistence{
		dir:    dir,
		logger: logger.Named("FilePersistence"),
	}, nil
}

func (f *filePersistence) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_").Replace(key)
	return filepath.Join(f.dir, name+".json")
}

func (f *filePersistence) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path(key), err)
	}
	return data, nil
}

func (f *filePersistence) Store(_ context.Context, key string, data []byte) error {
	target := f.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		f.logger.Error("failed to replace data file", zap.String("path", target), zap.Error(err))
		return fmt.Errorf("rename %s: %w", target, err)
	}
	return nil
}
