package domain

import "time"

// PostIndex is the posts.json document written by the index command.
type PostIndex struct {
	Metadata IndexMetadata `json:"metadata"`
	Posts    []IndexEntry  `json:"posts"`
}

// IndexMetadata summarises an index.
type IndexMetadata struct {
	TotalPosts  int       `json:"totalPosts"`
	Categories  []string  `json:"categories"`
	Tags        []string  `json:"tags"`
	Authors     []string  `json:"authors"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// IndexEntry is the summary of one post in an index.
type IndexEntry struct {
	ID                 string         `json:"id"`
	Path               string         `json:"path"`
	Title              string         `json:"title"`
	Date               time.Time      `json:"date"`
	LastModified       time.Time      `json:"lastModified"`
	Category           string         `json:"category"`
	Tags               []string       `json:"tags"`
	Author             string         `json:"author,omitempty"`
	Draft              bool           `json:"draft"`
	Excerpt            string         `json:"excerpt"`
	ReadingTimeMinutes int            `json:"readingTimeMinutes"`
	Extra              map[string]any `json:"extra,omitempty"`
}
