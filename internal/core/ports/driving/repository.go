package driving

import (
	"context"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// RepositoryService reports on the repository behind the content source.
type RepositoryService interface {
	// Stats summarises the repository.
	Stats(ctx context.Context) (*domain.RepositoryStats, error)

	// Branches lists branch names.
	Branches(ctx context.Context) ([]string, error)

	// Search finds files whose content matches query.
	Search(ctx context.Context, query string) ([]domain.CodeMatch, error)

	// Exists reports whether path exists.
	Exists(ctx context.Context, path string) (bool, error)

	// RateLimit returns the remaining API quota.
	RateLimit(ctx context.Context) (*domain.RateLimitStatus, error)
}
