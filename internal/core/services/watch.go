package services

import (
	"context"
	"time"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/logger"
)

// Watch refreshes the collection whenever changes fires and, when interval
// is positive, on every tick. Each outcome is handed to onLoad. Signals that
// arrive while a refresh runs collapse into the next one.
// Watch returns when ctx is done, or when changes is closed and no interval
// is set.
func (s *PostService) Watch(
	ctx context.Context,
	changes <-chan struct{},
	interval time.Duration,
	onLoad func(*domain.Collection, error),
) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	if changes == nil && tick == nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				changes = nil
				if tick == nil {
					return nil
				}
				continue
			}
			logger.Debug("Change detected, refreshing")
			onLoad(s.Refresh(ctx))
		case <-tick:
			logger.Debug("Refresh interval elapsed")
			onLoad(s.Refresh(ctx))
		}
	}
}
