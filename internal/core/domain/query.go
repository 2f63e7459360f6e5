package domain

import (
	"fmt"
	"time"
)

// PostStatus filters posts by publication state.
type PostStatus string

// Available statuses.
const (
	StatusAll       PostStatus = "all"
	StatusPublished PostStatus = "published"
	StatusDraft     PostStatus = "draft"
)

// IsValid returns true if the status is recognised.
func (s PostStatus) IsValid() bool {
	switch s {
	case StatusAll, StatusPublished, StatusDraft, "":
		return true
	default:
		return false
	}
}

// SortOrder orders a list of posts.
type SortOrder string

// Available sort orders.
const (
	SortDateDesc  SortOrder = "date-desc"
	SortDateAsc   SortOrder = "date-asc"
	SortTitleAsc  SortOrder = "title-asc"
	SortTitleDesc SortOrder = "title-desc"
	SortViewsDesc SortOrder = "views-desc"
	SortViewsAsc  SortOrder = "views-asc"
)

// SortOrders returns all supported sort orders.
func SortOrders() []SortOrder {
	return []SortOrder{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc, SortViewsDesc, SortViewsAsc}
}

// IsValid returns true if the sort order is recognised.
func (o SortOrder) IsValid() bool {
	if o == "" {
		return true
	}
	for _, s := range SortOrders() {
		if s == o {
			return true
		}
	}
	return false
}

// Description returns a human-readable label.
func (o SortOrder) Description() string {
	switch o {
	case SortDateDesc:
		return "Newest First"
	case SortDateAsc:
		return "Oldest First"
	case SortTitleAsc:
		return "Title A-Z"
	case SortTitleDesc:
		return "Title Z-A"
	case SortViewsDesc:
		return "Most Viewed"
	case SortViewsAsc:
		return "Least Viewed"
	default:
		return "Unknown"
	}
}

// PostQuery selects and orders posts from a collection.
// Zero values select everything, newest first.
type PostQuery struct {
	// Search matches title, category, tags and excerpt, case-insensitively.
	Search string

	// Categories keeps posts in any of the listed categories.
	Categories []string

	// Tags keeps posts carrying any of the listed tags.
	Tags []string

	// From and To bound the post date, inclusive. Zero means unbounded.
	From time.Time
	To   time.Time

	Status PostStatus
	Sort   SortOrder
}

// Validate checks the enumerated fields of the query.
func (q PostQuery) Validate() error {
	if !q.Status.IsValid() {
		return fmt.Errorf("%w: status %q", ErrInvalidInput, q.Status)
	}
	if !q.Sort.IsValid() {
		return fmt.Errorf("%w: sort %q", ErrInvalidInput, q.Sort)
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return fmt.Errorf("%w: date range ends before it starts", ErrInvalidInput)
	}
	return nil
}
