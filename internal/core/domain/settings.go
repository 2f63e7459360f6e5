package domain

import (
	"fmt"
	"time"
)

// SourceType identifies where markdown files are read from.
type SourceType string

// Available source types.
const (
	// SourceGitHub reads a GitHub repository through the REST API.
	SourceGitHub SourceType = "github"

	// SourceFilesystem reads a local directory.
	SourceFilesystem SourceType = "filesystem"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	return t == SourceGitHub || t == SourceFilesystem
}

// Defaults.
const (
	DefaultBranch       = "main"
	DefaultCacheTimeout = 5 * time.Minute
	DefaultMaxAttempts  = 3
	DefaultRetryDelay   = time.Second
	DefaultConcurrency  = 8
	DefaultImagePath    = "/images"
)

// Settings is the explicit configuration of one pipeline.
// It is assembled once at the edge of the program and passed down.
type Settings struct {
	Source SourceType

	// GitHub source.
	Token  string
	Owner  string
	Repo   string
	Branch string

	// Filesystem source.
	Path string

	CacheTimeout time.Duration
	MaxAttempts  int
	RetryDelay   time.Duration

	// Concurrency bounds the number of files processed at once.
	Concurrency int

	// BaseURL prefixes absolute image paths.
	BaseURL string

	// ImagePath prefixes relative image paths.
	ImagePath string

	Debug bool
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Source:       SourceGitHub,
		Branch:       DefaultBranch,
		CacheTimeout: DefaultCacheTimeout,
		MaxAttempts:  DefaultMaxAttempts,
		RetryDelay:   DefaultRetryDelay,
		Concurrency:  DefaultConcurrency,
		ImagePath:    DefaultImagePath,
	}
}

// Validate checks that the settings describe a usable source.
func (s Settings) Validate() error {
	if !s.Source.IsValid() {
		return fmt.Errorf("%w: unknown source type %q", ErrInvalidInput, s.Source)
	}
	switch s.Source {
	case SourceGitHub:
		if s.Owner == "" || s.Repo == "" {
			return fmt.Errorf("%w: github owner and repo are required", ErrSourceNotConfigured)
		}
	case SourceFilesystem:
		if s.Path == "" {
			return fmt.Errorf("%w: source path is required", ErrSourceNotConfigured)
		}
	}
	if s.CacheTimeout < 0 {
		return fmt.Errorf("%w: negative cache timeout", ErrInvalidInput)
	}
	if s.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidInput)
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidInput)
	}
	return nil
}
