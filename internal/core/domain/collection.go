package domain

import (
	"slices"
	"time"
)

// Collection is an immutable snapshot of one pipeline run.
type Collection struct {
	// RunID identifies the pipeline run that produced the snapshot.
	RunID string

	GeneratedAt time.Time
	Posts       []Post
	Stats       Stats

	// Skipped lists files excluded from Posts because a step failed.
	Skipped []SkippedFile
}

// SkippedFile records why a file was left out of a collection.
type SkippedFile struct {
	Path string
	Err  error
}

// Stats summarises a collection.
type Stats struct {
	Total         int `json:"total"`
	Published     int `json:"published"`
	Drafts        int `json:"drafts"`
	CategoryCount int `json:"categoryCount"`
	TagCount      int `json:"tagCount"`

	// Categories counts posts per category.
	Categories map[string]int `json:"categories"`

	// Tags counts posts per tag.
	Tags map[string]int `json:"tags"`
}

// Find returns the post with the given ID.
func (c *Collection) Find(id string) (Post, bool) {
	for i := range c.Posts {
		if c.Posts[i].ID == id {
			return c.Posts[i].Clone(), true
		}
	}
	return Post{}, false
}

// CategoryNames returns the distinct categories, sorted.
func (s Stats) CategoryNames() []string {
	return sortedKeys(s.Categories)
}

// TagNames returns the distinct tags, sorted.
func (s Stats) TagNames() []string {
	return sortedKeys(s.Tags)
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	out := *c
	out.Posts = make([]Post, len(c.Posts))
	for i := range c.Posts {
		out.Posts[i] = c.Posts[i].Clone()
	}
	out.Skipped = slices.Clone(c.Skipped)
	out.Stats.Categories = cloneCounts(c.Stats.Categories)
	out.Stats.Tags = cloneCounts(c.Stats.Tags)
	return &out
}

func cloneCounts(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
