package driving

import (
	"context"
	"time"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// PostService exposes the post collection to user interfaces.
type PostService interface {
	// Load runs the pipeline and returns the resulting collection.
	// It fails only when the source cannot be enumerated.
	Load(ctx context.Context) (*domain.Collection, error)

	// Refresh clears cached responses and runs the pipeline again.
	Refresh(ctx context.Context) (*domain.Collection, error)

	// Current returns the last loaded collection.
	Current(ctx context.Context) (*domain.Collection, error)

	// Get returns one post from the last loaded collection.
	Get(ctx context.Context, id string) (*domain.Post, error)

	// Query filters and sorts the last loaded collection.
	Query(ctx context.Context, q domain.PostQuery) ([]domain.Post, error)

	// Index summarises the last loaded collection, newest first.
	Index(ctx context.Context) (*domain.PostIndex, error)

	// Watch refreshes on every change signal and every interval until ctx
	// is done, handing each outcome to onLoad.
	Watch(ctx context.Context, changes <-chan struct{}, interval time.Duration,
		onLoad func(*domain.Collection, error)) error
}
