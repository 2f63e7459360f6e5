package markdown

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// dateLayouts are tried in order for string dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
}

// knownFields have dedicated metadata fields.
var knownFields = map[string]struct{}{
	"title":    {},
	"date":     {},
	"category": {},
	"tags":     {},
	"author":   {},
	"draft":    {},
	"views":    {},
}

// normaliseMetadata maps raw frontmatter onto PostMetadata.
// fallbackTitle is used when the frontmatter names no title.
func normaliseMetadata(path string, fields map[string]any, fallbackTitle string, now time.Time) (domain.PostMetadata, error) {
	meta := domain.PostMetadata{
		Title:    fallbackTitle,
		Category: domain.DefaultCategory,
		Tags:     []string{},
	}

	invalid := func(field string, value any, reason string) error {
		return &ValidationError{Path: path, Field: field, Value: value, Reason: reason}
	}

	if v, ok := fields["title"]; ok && v != nil {
		title, ok := scalarString(v)
		if !ok {
			return meta, invalid("title", v, "expected a string")
		}
		if title = strings.TrimSpace(title); title != "" {
			meta.Title = title
		}
	}

	meta.Date = now
	if v, ok := fields["date"]; ok && v != nil {
		date, err := parseDate(v)
		if err != nil {
			return meta, invalid("date", v, err.Error())
		}
		meta.Date = date
	}

	if v, ok := fields["category"]; ok && v != nil {
		category, ok := scalarString(v)
		if !ok {
			return meta, invalid("category", v, "expected a string")
		}
		if category = strings.TrimSpace(category); category != "" {
			meta.Category = category
		}
	}

	if v, ok := fields["tags"]; ok && v != nil {
		tags, err := NormaliseTags(v)
		if err != nil {
			return meta, invalid("tags", v, err.Error())
		}
		meta.Tags = tags
	}

	if v, ok := fields["author"]; ok && v != nil {
		author, ok := scalarString(v)
		if !ok {
			return meta, invalid("author", v, "expected a string")
		}
		meta.Author = strings.TrimSpace(author)
	}

	if v, ok := fields["draft"]; ok && v != nil {
		draft, err := parseBool(v)
		if err != nil {
			return meta, invalid("draft", v, err.Error())
		}
		meta.Draft = draft
	}

	if v, ok := fields["views"]; ok && v != nil {
		views, err := parseCount(v)
		if err != nil {
			return meta, invalid("views", v, err.Error())
		}
		meta.Views = views
	}

	for k, v := range fields {
		if _, known := knownFields[k]; known {
			continue
		}
		if meta.Extra == nil {
			meta.Extra = make(map[string]any)
		}
		meta.Extra[k] = plainValue(v)
	}

	return meta, nil
}

// NormaliseTags accepts a comma-separated string or a sequence of strings
// and returns trimmed, lowercase tags without empties or duplicates, in
// first-seen order.
func NormaliseTags(v any) ([]string, error) {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = strings.Split(t, ",")
	case []string:
		raw = t
	case []any:
		raw = make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tag %v is %T, expected a string", item, item)
			}
			raw = append(raw, s)
		}
	default:
		return nil, fmt.Errorf("expected a string or a list of strings")
	}

	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}

func parseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised date format")
	default:
		return time.Time{}, fmt.Errorf("expected a date")
	}
}

func parseBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes":
			return true, nil
		case "false", "no", "":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected a boolean")
}

func parseCount(v any) (int, error) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int64:
		n = t
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("out of range")
		}
		n = int64(t)
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("expected a whole number")
		}
		n = int64(t)
	default:
		return 0, fmt.Errorf("expected a number")
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return int(n), nil
}

// scalarString renders strings and plain scalars as text.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}
