package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v80/github"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/logger"
)

// repoEndpoint builds an API path under /repos/{owner}/{repo}.
func (c *Client) repoEndpoint(format string, args ...any) string {
	prefix := fmt.Sprintf("repos/%s/%s", url.PathEscape(c.cfg.Owner), url.PathEscape(c.cfg.Repo))
	if format == "" {
		return prefix
	}
	return prefix + "/" + fmt.Sprintf(format, args...)
}

// tree fetches the recursive tree of the configured branch.
func (c *Client) tree(ctx context.Context) (*gh.Tree, error) {
	var tree gh.Tree
	endpoint := c.repoEndpoint("git/trees/%s", escapePath(c.cfg.Branch))
	if err := c.request(ctx, endpoint, url.Values{"recursive": {"1"}}, &tree); err != nil {
		return nil, err
	}
	if tree.GetTruncated() {
		logger.Warn("github: tree for %s/%s@%s is truncated, some files are missing",
			c.cfg.Owner, c.cfg.Repo, c.cfg.Branch)
	}
	return &tree, nil
}

// ListMarkdownFiles lists every .md file on the configured branch.
func (c *Client) ListMarkdownFiles(ctx context.Context) ([]domain.FileRef, error) {
	tree, err := c.tree(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]domain.FileRef, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() == "tree" {
			continue
		}
		path := entry.GetPath()
		if !domain.IsMarkdownPath(path) {
			continue
		}
		refs = append(refs, domain.FileRef{
			Path:      path,
			RawURL:    c.RawURL(path),
			ContentID: entry.GetSHA(),
		})
	}

	logger.Debug("github: %d markdown files in %s/%s@%s", len(refs), c.cfg.Owner, c.cfg.Repo, c.cfg.Branch)
	return refs, nil
}

// RawURL returns the raw content URL of path on the configured branch.
func (c *Client) RawURL(path string) string {
	return RawURL(c.cfg.RawBaseURL, c.cfg.Owner, c.cfg.Repo, c.cfg.Branch, path)
}

// FetchRawContent downloads the file at path from the raw content host.
// The request is unauthenticated, uncached and made once.
func (c *Client) FetchRawContent(ctx context.Context, path string) (string, error) {
	target := c.RawURL(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}

	resp, err := c.raw.Do(req)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &FetchError{URL: target, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	return string(body), nil
}
