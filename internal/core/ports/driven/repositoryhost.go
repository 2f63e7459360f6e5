package driven

import (
	"context"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// RepositoryHost is implemented by sources backed by a hosted repository.
type RepositoryHost interface {
	// RepositoryStats summarises the repository and its file tree.
	RepositoryStats(ctx context.Context) (*domain.RepositoryStats, error)

	// Branches lists branch names.
	Branches(ctx context.Context) ([]string, error)

	// SearchContent runs a code search scoped to the repository.
	SearchContent(ctx context.Context, query string) ([]domain.CodeMatch, error)

	// PathExists reports whether path exists on the configured branch.
	PathExists(ctx context.Context, path string) (bool, error)

	// RateLimit returns the current API quota. It is never cached.
	RateLimit(ctx context.Context) (*domain.RateLimitStatus, error)
}
