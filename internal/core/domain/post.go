package domain

import (
	"maps"
	"slices"
	"time"
)

// DefaultCategory is assigned to posts whose frontmatter names no category.
const DefaultCategory = "Uncategorized"

// Post is a fully enriched blog post.
// It is the pipeline's externally visible output.
type Post struct {
	// ID is the content identifier of the source file.
	// It is stable across fetches of unchanged content.
	ID string `json:"id"`

	// Path is the repository-relative path of the markdown file.
	Path string `json:"path"`

	// HTML is the rendered body.
	HTML string `json:"html"`

	// TOC lists the headings of the body in document order.
	TOC []TOCEntry `json:"toc"`

	// Excerpt is a plain-text, length-bounded summary of the body.
	Excerpt string `json:"excerpt"`

	// ReadingTimeMinutes is the estimated reading time, never below 1.
	ReadingTimeMinutes int `json:"readingTimeMinutes"`

	// Links are the links found in the body, in document order.
	Links []Link `json:"links,omitempty"`

	// Tasks are the GFM task list items found in the body.
	Tasks []Task `json:"tasks,omitempty"`

	Metadata PostMetadata `json:"metadata"`
}

// PostMetadata is the normalised frontmatter merged with source metadata.
type PostMetadata struct {
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`

	// Tags are trimmed, lowercase and free of duplicates.
	Tags []string `json:"tags"`

	Author string `json:"author,omitempty"`
	Draft  bool   `json:"draft"`

	// Views is provided externally and defaults to 0.
	Views int `json:"views"`

	LastModified   time.Time `json:"lastModified"`
	LastModifiedBy string    `json:"lastModifiedBy,omitempty"`

	// History is the commit history of the file, newest first.
	History []Commit `json:"history,omitempty"`

	// Extra holds frontmatter keys that have no dedicated field.
	Extra map[string]any `json:"extra,omitempty"`
}

// TOCEntry is one heading in a table of contents.
type TOCEntry struct {
	Text     string     `json:"text"`
	Level    int        `json:"level"`
	Slug     string     `json:"slug"`
	Children []TOCEntry `json:"children"`
}

// Link is a hyperlink found in a post body.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`

	// External is true when Href carries a URI scheme.
	// Consumers open external links in a new browsing context.
	External bool `json:"external"`
}

// Task is a GFM task list item.
type Task struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ProcessedDocument is the output of the document transformer.
// ID, LastModified, LastModifiedBy and Views are merged in later.
type ProcessedDocument struct {
	HTML               string
	TOC                []TOCEntry
	Excerpt            string
	ReadingTimeMinutes int
	Links              []Link
	Tasks              []Task
	Metadata           PostMetadata
}

// Published reports whether the post is not a draft.
func (p *Post) Published() bool {
	return !p.Metadata.Draft
}

// Clone returns a deep copy of the post.
func (p Post) Clone() Post {
	p.TOC = cloneTOC(p.TOC)
	p.Links = slices.Clone(p.Links)
	p.Tasks = slices.Clone(p.Tasks)
	p.Metadata.Tags = slices.Clone(p.Metadata.Tags)
	p.Metadata.History = slices.Clone(p.Metadata.History)
	p.Metadata.Extra = maps.Clone(p.Metadata.Extra)
	return p
}

func cloneTOC(entries []TOCEntry) []TOCEntry {
	if entries == nil {
		return nil
	}
	out := make([]TOCEntry, len(entries))
	for i, e := range entries {
		e.Children = cloneTOC(e.Children)
		out[i] = e
	}
	return out
}
