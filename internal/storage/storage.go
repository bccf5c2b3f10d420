// Package storage persists uploaded payloads to disk for later inspection.
// Write-only: the pipeline never reads a stored file back.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		dir = "uploads"
	}
	return &Store{dir: dir, logger: logger}
}

// Save writes the payload under the given name, generating a uuid-based name
// when none is supplied, and returns the stored path.
func (s *Store) Save(payload []byte, name string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if name == "" {
		name = uuid.NewString()
	} else {
		// uploads are untrusted; never let a client-supplied name escape the dir
		name = filepath.Base(name)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	s.logger.Debug("upload stored", "path", path, "bytes", len(payload))
	return path, nil
}
