package github

import (
	"context"
	"fmt"
	"net/url"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/sync/errgroup"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// RepositoryInfo fetches the repository resource.
func (c *Client) RepositoryInfo(ctx context.Context) (*gh.Repository, error) {
	var repo gh.Repository
	if err := c.request(ctx, c.repoEndpoint(""), nil, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// RepositoryStats fetches repository info and the branch tree concurrently.
func (c *Client) RepositoryStats(ctx context.Context) (*domain.RepositoryStats, error) {
	var (
		repo *gh.Repository
		tree *gh.Tree
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		repo, err = c.RepositoryInfo(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tree, err = c.tree(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &domain.RepositoryStats{
		TotalFiles:      len(tree.Entries),
		SizeKB:          repo.GetSize(),
		DefaultBranch:   repo.GetDefaultBranch(),
		Private:         repo.GetPrivate(),
		HasWiki:         repo.GetHasWiki(),
		HasPages:        repo.GetHasPages(),
		ForksCount:      repo.GetForksCount(),
		StargazersCount: repo.GetStargazersCount(),
		WatchersCount:   repo.GetWatchersCount(),
		LastUpdated:     repo.GetUpdatedAt().Time,
	}
	for _, entry := range tree.Entries {
		if domain.IsMarkdownPath(entry.GetPath()) {
			stats.MarkdownFiles++
		}
	}
	return stats, nil
}

// Branches lists the branch names of the repository.
func (c *Client) Branches(ctx context.Context) ([]string, error) {
	var branches []*gh.Branch
	if err := c.request(ctx, c.repoEndpoint("branches"), url.Values{"per_page": {"100"}}, &branches); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.GetName())
	}
	return names, nil
}

// SearchContent runs a code search scoped to the repository.
func (c *Client) SearchContent(ctx context.Context, query string) ([]domain.CodeMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidInput)
	}

	var result gh.CodeSearchResult
	q := fmt.Sprintf("%s repo:%s/%s", query, c.cfg.Owner, c.cfg.Repo)
	if err := c.request(ctx, "search/code", url.Values{"q": {q}}, &result); err != nil {
		return nil, err
	}

	matches := make([]domain.CodeMatch, 0, len(result.CodeResults))
	for _, r := range result.CodeResults {
		matches = append(matches, domain.CodeMatch{
			Name:    r.GetName(),
			Path:    r.GetPath(),
			SHA:     r.GetSHA(),
			HTMLURL: r.GetHTMLURL(),
		})
	}
	return matches, nil
}

// PathExists reports whether path exists on the configured branch.
func (c *Client) PathExists(ctx context.Context, path string) (bool, error) {
	endpoint := c.repoEndpoint("contents/%s", escapePath(path))
	err := c.request(ctx, endpoint, url.Values{"ref": {c.cfg.Branch}}, nil)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}
