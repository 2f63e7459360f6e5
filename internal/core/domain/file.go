package domain

import (
	"strings"
	"time"
)

// FileRef identifies a markdown file in a content source.
// It is produced by listing the source and is never modified afterwards.
type FileRef struct {
	// Path is relative to the source root.
	Path string

	// RawURL addresses the raw file bytes.
	RawURL string

	// ContentID is a content-addressed hash of the file.
	// GitHub sources use the tree entry SHA; local sources compute the same
	// git blob SHA from the file bytes.
	ContentID string
}

// FileMetadata describes the history of a file.
type FileMetadata struct {
	Name        string
	Path        string
	SHA         string
	Size        int
	DownloadURL string

	LastModified   time.Time
	LastModifiedBy string

	// History is newest first.
	History []Commit
}

// Commit is one entry of a file's commit history.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Author  string    `json:"author"`
}

// IsMarkdownPath reports whether path names a markdown file.
func IsMarkdownPath(path string) bool {
	return strings.HasSuffix(path, ".md")
}
