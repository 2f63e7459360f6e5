package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// ApplyQuery returns the posts matching q in the order q asks for.
// The input is not modified. Ties keep their input order.
func ApplyQuery(posts []domain.Post, q domain.PostQuery) []domain.Post {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	categories := lowerSet(q.Categories)
	tags := lowerSet(q.Tags)

	out := make([]domain.Post, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		if !matchesStatus(p, q.Status) {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[strings.ToLower(p.Metadata.Category)]; !ok {
				continue
			}
		}
		if len(tags) > 0 && !hasAnyTag(p, tags) {
			continue
		}
		if !q.From.IsZero() && p.Metadata.Date.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && p.Metadata.Date.After(q.To) {
			continue
		}
		out = append(out, p.Clone())
	}

	slices.SortStableFunc(out, comparator(q.Sort))
	return out
}

func matchesStatus(p *domain.Post, status domain.PostStatus) bool {
	switch status {
	case domain.StatusPublished:
		return !p.Metadata.Draft
	case domain.StatusDraft:
		return p.Metadata.Draft
	default:
		return true
	}
}

// matchesSearch checks title, category, tags and excerpt.
func matchesSearch(p *domain.Post, term string) bool {
	if strings.Contains(strings.ToLower(p.Metadata.Title), term) ||
		strings.Contains(strings.ToLower(p.Metadata.Category), term) ||
		strings.Contains(strings.ToLower(p.Excerpt), term) {
		return true
	}
	for _, tag := range p.Metadata.Tags {
		if strings.Contains(tag, term) {
			return true
		}
	}
	return false
}

func hasAnyTag(p *domain.Post, tags map[string]struct{}) bool {
	for _, tag := range p.Metadata.Tags {
		if _, ok := tags[tag]; ok {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func comparator(order domain.SortOrder) func(a, b domain.Post) int {
	switch order {
	case domain.SortDateAsc:
		return func(a, b domain.Post) int { return a.Metadata.Date.Compare(b.Metadata.Date) }
	case domain.SortTitleAsc:
		return func(a, b domain.Post) int { return compareTitles(a, b) }
	case domain.SortTitleDesc:
		return func(a, b domain.Post) int { return compareTitles(b, a) }
	case domain.SortViewsDesc:
		return func(a, b domain.Post) int { return cmp.Compare(b.Metadata.Views, a.Metadata.Views) }
	case domain.SortViewsAsc:
		return func(a, b domain.Post) int { return cmp.Compare(a.Metadata.Views, b.Metadata.Views) }
	default:
		return func(a, b domain.Post) int { return b.Metadata.Date.Compare(a.Metadata.Date) }
	}
}

func compareTitles(a, b domain.Post) int {
	return cmp.Compare(strings.ToLower(a.Metadata.Title), strings.ToLower(b.Metadata.Title))
}
