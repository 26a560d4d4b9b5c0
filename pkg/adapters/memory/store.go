package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/formation/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save keeps a copy of doc so later writes by the caller do not leak in.
func (s *Store) Save(ctx context.Context, id string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = slices.Clone(doc)
	return nil
}

// Load returns a copy of the stored document.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return slices.Clone(doc), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
