package driven

import (
	"context"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// ContentSource provides markdown files to the pipeline.
// Implementations own all I/O against their backing store.
type ContentSource interface {
	// ListMarkdownFiles enumerates every markdown file of the source.
	// A failure here is fatal to a pipeline run.
	ListMarkdownFiles(ctx context.Context) ([]domain.FileRef, error)

	// FetchRawContent returns the raw bytes of one file as text.
	FetchRawContent(ctx context.Context, path string) (string, error)

	// FetchFileMetadata returns the modification history of one file.
	// It never returns a partial result.
	FetchFileMetadata(ctx context.Context, path string) (*domain.FileMetadata, error)

	// ClearCache discards any cached responses.
	ClearCache()
}

// ChangeWatcher is implemented by sources that can signal content changes.
type ChangeWatcher interface {
	// Watch emits a value whenever a markdown file changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
