package memory

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/shelf/internal/persistence"
)

// Store is an in-process persistence.KV. Nothing survives a restart; it backs
// tests and SHELF_STORAGE=memory.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte

	// failSet, when non-nil, is returned by Set.
	failSet error
}

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSet != nil {
		return s.failSet
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// SetFailure makes subsequent Set calls return err (nil restores them).
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = err
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

var _ persistence.KV = (*Store)(nil)
