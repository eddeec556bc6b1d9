package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"console/internal/domain"
)

// FileStore persists the CLI bearer token in a single 0600 file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ domain.Credentials = (*FileStore)(nil)

// NewFileStore returns a store writing to path. An empty path resolves to
// <user config dir>/adminctl/token.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("session: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "adminctl", "token")
	}
	return &FileStore{path: path}, nil
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Token returns the stored token or "" when none is saved.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// Save writes the token, creating the parent directory if needed.
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: ensure directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear() {
	_ = s.Remove()
}

// Remove deletes the token file and reports unexpected failures.
func (s *FileStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove token: %w", err)
	}
	return nil
}
