package domain

import "errors"

// Domain errors represent pipeline failures that are independent of any
// particular content source.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrListFailed indicates the source could not enumerate its files.
	// It aborts a pipeline run; individual file failures never do.
	ErrListFailed = errors.New("list markdown files failed")

	// ErrNotLoaded indicates no collection has been produced yet.
	ErrNotLoaded = errors.New("posts not loaded")

	// ErrSourceNotConfigured indicates the content source settings are incomplete.
	ErrSourceNotConfigured = errors.New("content source not configured")
)
