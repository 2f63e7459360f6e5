package github

import (
	"fmt"
	"net/url"
	"strings"
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Repo  string
}

// ParseGitHubURL extracts the owner and repository from a github.com URL.
// It accepts web URLs such as https://github.com/owner/repo/tree/main and
// clone URLs ending in .git.
func ParseGitHubURL(raw string) (Repository, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Repository{}, fmt.Errorf("parse github URL: %w", err)
	}
	if !IsGitHubURL(raw) {
		return Repository{}, fmt.Errorf("not a github.com URL: %q", raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, fmt.Errorf("github URL has no owner/repo: %q", raw)
	}
	return Repository{
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}, nil
}

// IsGitHubURL reports whether raw is an absolute URL on github.com.
func IsGitHubURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return false
	}
	return strings.EqualFold(u.Hostname(), "github.com")
}

// RawURL builds the raw content URL of path at branch.
func RawURL(base, owner, repo, branch, path string) string {
	if base == "" {
		base = DefaultRawBaseURL
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		strings.TrimSuffix(base, "/"), owner, repo, escapePath(branch), escapePath(path))
}

// HTMLURL builds the github.com page of path at branch.
func HTMLURL(owner, repo, branch, path string) string {
	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s",
		owner, repo, escapePath(branch), escapePath(path))
}

// escapePath escapes each segment of a slash-separated path.
func escapePath(p string) string {
	segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
