package leaderboard

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrNotFound is returned by Get for a missing key
var ErrNotFound = errors.New("leaderboard: key not found")

// Store is a minimal key/value blob store
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// MemoryStore keeps blobs in process memory
// FailWrites and FailReads inject storage errors for tests
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte

	FailWrites atomic.Bool
	FailReads  atomic.Bool
}

var errInjected = errors.New("leaderboard: storage unavailable")

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	if m.FailReads.Load() {
		return nil, errInjected
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	if m.FailWrites.Load() {
		return errInjected
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	if m.FailWrites.Load() {
		return errInjected
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
