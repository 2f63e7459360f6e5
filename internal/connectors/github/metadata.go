package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/sync/errgroup"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// contents fetches the contents entry of path on the configured branch.
func (c *Client) contents(ctx context.Context, path string) (*gh.RepositoryContent, error) {
	var raw json.RawMessage
	endpoint := c.repoEndpoint("contents/%s", escapePath(path))
	if err := c.request(ctx, endpoint, url.Values{"ref": {c.cfg.Branch}}, &raw); err != nil {
		return nil, err
	}

	// Directories come back as an array.
	if len(raw) > 0 && raw[0] == '[' {
		return nil, &APIError{
			Message: fmt.Sprintf("%s: %v", path, ErrNotAFile),
			URL:     endpoint,
			Err:     ErrNotAFile,
		}
	}
	var content gh.RepositoryContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("decode contents: %v", err), URL: endpoint, Err: err}
	}
	return &content, nil
}

// history fetches the commits touching path, newest first.
func (c *Client) history(ctx context.Context, path string) ([]*gh.RepositoryCommit, error) {
	var commits []*gh.RepositoryCommit
	query := url.Values{
		"path": {path},
		"sha":  {c.cfg.Branch},
	}
	if err := c.request(ctx, c.repoEndpoint("commits"), query, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// FetchFileMetadata combines the contents entry and commit history of path.
// Both requests run concurrently; the first failure cancels the other.
// A file with no commits yields an empty history and a zero LastModified.
func (c *Client) FetchFileMetadata(ctx context.Context, path string) (*domain.FileMetadata, error) {
	var (
		content *gh.RepositoryContent
		commits []*gh.RepositoryCommit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		content, err = c.contents(gctx, path)
		return err
	})
	g.Go(func() error {
		var err error
		commits, err = c.history(gctx, path)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meta := &domain.FileMetadata{
		Name:        content.GetName(),
		Path:        content.GetPath(),
		SHA:         content.GetSHA(),
		Size:        content.GetSize(),
		DownloadURL: content.GetDownloadURL(),
		History:     make([]domain.Commit, 0, len(commits)),
	}
	for _, rc := range commits {
		meta.History = append(meta.History, commitFromGitHub(rc))
	}
	if len(commits) > 0 {
		committer := commits[0].GetCommit().GetCommitter()
		meta.LastModified = commitTime(committer)
		meta.LastModifiedBy = committer.GetName()
	}
	return meta, nil
}

func commitFromGitHub(rc *gh.RepositoryCommit) domain.Commit {
	commit := rc.GetCommit()
	return domain.Commit{
		SHA:     rc.GetSHA(),
		Message: commit.GetMessage(),
		Date:    commitTime(commit.GetCommitter()),
		Author:  commit.GetAuthor().GetName(),
	}
}

func commitTime(a *gh.CommitAuthor) time.Time {
	if a == nil || a.Date == nil {
		return time.Time{}
	}
	return a.Date.Time
}
