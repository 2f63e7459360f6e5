package driven

import "github.com/uakbr/github-blog-crm/internal/core/domain"

// PostStore holds the most recent collection snapshot.
type PostStore interface {
	// Replace swaps in a new snapshot.
	Replace(collection *domain.Collection)

	// Snapshot returns a copy of the current snapshot, or nil.
	Snapshot() *domain.Collection

	// Get returns a copy of one post from the current snapshot.
	Get(id string) (*domain.Post, error)
}
