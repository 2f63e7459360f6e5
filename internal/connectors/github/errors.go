package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// GitHub-specific errors.
var (
	// ErrConfigIncomplete indicates owner or repo is missing.
	ErrConfigIncomplete = errors.New("github: incomplete configuration")

	// ErrNotAFile indicates a contents request resolved to a directory.
	ErrNotAFile = errors.New("github: path is not a file")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a failed GitHub API call.
// It is returned once every permitted attempt has failed.
type APIError struct {
	StatusCode int
	Message    string
	URL        string

	// Attempts is the number of attempts made.
	Attempts int

	// Err is the underlying transport or decoding error, if any.
	Err error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("github: API request failed: %s (URL: %s)", e.Message, e.URL)
	}
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// FetchError represents a failed raw content download.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("github: failed to fetch raw content: %v (URL: %s)", e.Err, e.URL)
	}
	return fmt.Sprintf("github: failed to fetch raw content: %s (URL: %s)", e.Status, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsAPIError checks if the error is an API failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsFetchError checks if the error is a raw content failure.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}
