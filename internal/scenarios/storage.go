// Package scenarios persists named simulation setups for a single browser.
package scenarios

import (
	"context"
	"sync"

	"github.com/costintel/costintel/internal/shared"
)

// StorageKey is the key saved scenarios live under.
const StorageKey = "costintel.saved-scenarios"

// Storage is the string key-value facility the store writes through.
type Storage interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, raw string) error
}

// SessionStorage keeps the serialized list in the browser's cookie session.
// The session middleware persists it to Redis when the response is written.
type SessionStorage struct {
	sess *shared.Session
}

// NewSessionStorage binds storage to sess. A nil session yields nil storage.
func NewSessionStorage(sess *shared.Session) Storage {
	if sess == nil {
		return nil
	}
	return &SessionStorage{sess: sess}
}

// Load returns the raw list and whether it was present.
func (s *SessionStorage) Load(context.Context) (string, bool, error) {
	raw := s.sess.Get(StorageKey)
	return raw, raw != "", nil
}

// Save replaces the raw list.
func (s *SessionStorage) Save(_ context.Context, raw string) error {
	s.sess.Set(StorageKey, raw)
	return nil
}

// MemoryStorage is a process-local Storage.
type MemoryStorage struct {
	mu    sync.Mutex
	raw   string
	found bool
}

// Load returns the raw list and whether it was present.
func (m *MemoryStorage) Load(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw, m.found, nil
}

// Save replaces the raw list.
func (m *MemoryStorage) Save(_ context.Context, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.found = true
	return nil
}
