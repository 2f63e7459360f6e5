package services

import (
	"slices"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

// BuildIndex summarises a collection as a posts index, newest first.
// Category, tag and author lists keep first-seen order over the sorted posts.
func BuildIndex(collection *domain.Collection) domain.PostIndex {
	posts := ApplyQuery(collection.Posts, domain.PostQuery{Sort: domain.SortDateDesc})

	index := domain.PostIndex{
		Metadata: domain.IndexMetadata{
			TotalPosts:  len(posts),
			Categories:  []string{},
			Tags:        []string{},
			Authors:     []string{},
			LastUpdated: collection.GeneratedAt,
		},
		Posts: make([]domain.IndexEntry, 0, len(posts)),
	}

	for _, p := range posts {
		meta := p.Metadata
		index.Posts = append(index.Posts, domain.IndexEntry{
			ID:                 p.ID,
			Path:               p.Path,
			Title:              meta.Title,
			Date:               meta.Date,
			LastModified:       meta.LastModified,
			Category:           meta.Category,
			Tags:               meta.Tags,
			Author:             meta.Author,
			Draft:              meta.Draft,
			Excerpt:            p.Excerpt,
			ReadingTimeMinutes: p.ReadingTimeMinutes,
			Extra:              meta.Extra,
		})

		index.Metadata.Categories = appendUnique(index.Metadata.Categories, meta.Category)
		for _, tag := range meta.Tags {
			index.Metadata.Tags = appendUnique(index.Metadata.Tags, tag)
		}
		if meta.Author != "" {
			index.Metadata.Authors = appendUnique(index.Metadata.Authors, meta.Author)
		}
	}
	return index
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
