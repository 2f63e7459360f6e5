package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/uakbr/github-blog-crm/internal/logger"
)

// retryPolicy waits attempt*delay after each failed attempt.
type retryPolicy struct {
	maxAttempts int
	delay       time.Duration
}

// do runs fn until it succeeds, returns a permanent error, or runs out of
// attempts. It reports the number of attempts made alongside the last error.
func (p retryPolicy) do(ctx context.Context, what string, fn func() error) (int, error) {
	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil {
			return attempt, nil
		}
		if attempt >= p.maxAttempts || !retryable(err) {
			return attempt, err
		}

		wait := time.Duration(attempt) * p.delay
		logger.Debug("github: attempt %d/%d for %s failed, retrying in %s: %v",
			attempt, p.maxAttempts, what, wait, err)

		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, ctx.Err()
		case <-timer.C:
		}
	}
}

// retryable reports whether another attempt could change the outcome.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsRateLimited(err) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusNotFound, http.StatusUnprocessableEntity:
			return false
		}
	}
	return true
}
