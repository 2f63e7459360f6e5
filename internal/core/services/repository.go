package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driving"
)

// Ensure RepositoryService implements the interface.
var _ driving.RepositoryService = (*RepositoryService)(nil)

// RepositoryService exposes a repository host to user interfaces.
type RepositoryService struct {
	host driven.RepositoryHost
}

// NewRepositoryService creates a new repository service.
func NewRepositoryService(host driven.RepositoryHost) *RepositoryService {
	return &RepositoryService{host: host}
}

// Stats summarises the repository.
func (s *RepositoryService) Stats(ctx context.Context) (*domain.RepositoryStats, error) {
	stats, err := s.host.RepositoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository stats: %w", err)
	}
	return stats, nil
}

// Branches lists branch names.
func (s *RepositoryService) Branches(ctx context.Context) ([]string, error) {
	branches, err := s.host.Branches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

// Search finds files whose content matches query.
func (s *RepositoryService) Search(ctx context.Context, query string) ([]domain.CodeMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidInput)
	}
	matches, err := s.host.SearchContent(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return matches, nil
}

// Exists reports whether path exists.
func (s *RepositoryService) Exists(ctx context.Context, path string) (bool, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return false, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	return s.host.PathExists(ctx, path)
}

// RateLimit returns the remaining API quota.
func (s *RepositoryService) RateLimit(ctx context.Context) (*domain.RateLimitStatus, error) {
	status, err := s.host.RateLimit(ctx)
	if err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return status, nil
}
