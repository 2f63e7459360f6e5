package domain

import "time"

// RepositoryStats summarises the repository backing a content source.
type RepositoryStats struct {
	TotalFiles      int
	MarkdownFiles   int
	LastUpdated     time.Time
	SizeKB          int
	DefaultBranch   string
	Private         bool
	HasWiki         bool
	HasPages        bool
	ForksCount      int
	StargazersCount int
	WatchersCount   int
}

// CodeMatch is one code search hit.
type CodeMatch struct {
	Name    string
	Path    string
	SHA     string
	HTMLURL string
}

// RateLimitStatus is the API quota of a hosted source.
type RateLimitStatus struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}
