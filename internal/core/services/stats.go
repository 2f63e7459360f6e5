package services

import "github.com/uakbr/github-blog-crm/internal/core/domain"

// ComputeStats folds posts into summary statistics.
// The result depends only on the set of posts, not their order.
func ComputeStats(posts []domain.Post) domain.Stats {
	stats := domain.Stats{
		Total:      len(posts),
		Categories: make(map[string]int),
		Tags:       make(map[string]int),
	}
	for i := range posts {
		meta := &posts[i].Metadata
		if meta.Draft {
			stats.Drafts++
		} else {
			stats.Published++
		}
		stats.Categories[meta.Category]++
		for _, tag := range meta.Tags {
			stats.Tags[tag]++
		}
	}
	stats.CategoryCount = len(stats.Categories)
	stats.TagCount = len(stats.Tags)
	return stats
}
