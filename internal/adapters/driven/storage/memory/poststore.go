package memory

import (
	"sync"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
)

// Ensure PostStore implements the interface.
var _ driven.PostStore = (*PostStore)(nil)

// PostStore is an in-memory implementation of driven.PostStore.
// Readers always receive copies, so a snapshot handed out is never mutated.
type PostStore struct {
	mu         sync.RWMutex
	collection *domain.Collection
	index      map[string]int
}

// NewPostStore creates an empty post store.
func NewPostStore() *PostStore {
	return &PostStore{
		index: make(map[string]int),
	}
}

// Replace stores a copy of collection as the current snapshot.
func (s *PostStore) Replace(collection *domain.Collection) {
	snapshot := collection.Clone()
	index := make(map[string]int)
	if snapshot != nil {
		for i := range snapshot.Posts {
			index[snapshot.Posts[i].ID] = i
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection = snapshot
	s.index = index
}

// Snapshot returns a copy of the current snapshot.
func (s *PostStore) Snapshot() *domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collection.Clone()
}

// Get returns a copy of the post with the given ID.
func (s *PostStore) Get(id string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collection == nil {
		return nil, domain.ErrNotLoaded
	}
	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	post := s.collection.Posts[i].Clone()
	return &post, nil
}
