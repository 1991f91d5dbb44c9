package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const tokenFileName = "token"

// FileStore keeps the CLI's token in a file under the config directory.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, tokenFileName)}
}

func (s *FileStore) Path() string {
	return s.path
}

// Get returns the saved token, or "" when none has been saved.
func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
