package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/juan-moncayo/paycon-go/internal/rest"
)

// Store persists the session credential between runs.
//
// Implementations must treat an absent credential as (empty, nil) rather
// than an error; Service maps absence to ErrNotLoggedIn.
type Store interface {
	Load() (rest.Credential, error)
	Save(cred rest.Credential) error
	Clear() error
}

// FileStore keeps the token in a single file, the CLI equivalent of the
// browser's token entry in local storage.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
// Parent directories are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored token. A missing file means no session.
func (s *FileStore) Load() (rest.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return rest.Credential(strings.TrimSpace(string(data))), nil
}

// Save writes the token with owner-only permissions.
func (s *FileStore) Save(cred rest.Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(cred), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu   sync.Mutex
	cred rest.Credential
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (rest.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, nil
}

func (s *MemStore) Save(cred rest.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = ""
	return nil
}
