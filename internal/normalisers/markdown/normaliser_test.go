package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestNormaliser() *Normaliser {
	return New(Options{
		BaseURL:   "https://cdn.example.com/",
		ImagePath: "/images",
		Now:       func() time.Time { return fixedNow },
	})
}

func process(t *testing.T, source string) *domain.ProcessedDocument {
	t.Helper()
	doc, err := newTestNormaliser().Process("posts/test-post.md", []byte(source))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestProcess_Frontmatter(t *testing.T) {
	t.Run("maps known fields", func(t *testing.T) {
		doc := process(t, `---
title: Hello Go
date: 2024-03-10
category: Programming
tags: "Go, Concurrency,go"
author: Ann
draft: true
views: 42
---
# Heading

Body text.
`)
		meta := doc.Metadata
		assert.Equal(t, "Hello Go", meta.Title)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), meta.Date)
		assert.Equal(t, "Programming", meta.Category)
		assert.Equal(t, []string{"go", "concurrency"}, meta.Tags)
		assert.Equal(t, "Ann", meta.Author)
		assert.True(t, meta.Draft)
		assert.Equal(t, 42, meta.Views)
		assert.Nil(t, meta.Extra)
	})

	t.Run("applies defaults", func(t *testing.T) {
		doc := process(t, "Just a body.\n")
		meta := doc.Metadata
		assert.Equal(t, domain.DefaultCategory, meta.Category)
		assert.Equal(t, fixedNow, meta.Date)
		assert.False(t, meta.Draft)
		assert.Equal(t, 0, meta.Views)
		assert.Empty(t, meta.Tags)
		assert.NotNil(t, meta.Tags)
	})

	t.Run("tags as a list", func(t *testing.T) {
		doc := process(t, "---\ntags:\n  - Go\n  - \" go \"\n  - Rust\n  - \"\"\n---\nbody\n")
		assert.Equal(t, []string{"go", "rust"}, doc.Metadata.Tags)
	})

	t.Run("keeps unknown keys", func(t *testing.T) {
		doc := process(t, "---\nseries: go-basics\nextra:\n  level: 2\n---\nbody\n")
		assert.Equal(t, "go-basics", doc.Metadata.Extra["series"])
		assert.Equal(t, map[string]any{"level": 2}, doc.Metadata.Extra["extra"])
	})

	t.Run("draft as a string", func(t *testing.T) {
		doc := process(t, "---\ndraft: \"true\"\n---\nbody\n")
		assert.True(t, doc.Metadata.Draft)
	})

	t.Run("date with time", func(t *testing.T) {
		doc := process(t, "---\ndate: \"2024-01-15T10:30:00Z\"\n---\nbody\n")
		assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), doc.Metadata.Date)
	})
}

func TestProcess_Errors(t *testing.T) {
	n := newTestNormaliser()

	t.Run("malformed frontmatter is a parse error", func(t *testing.T) {
		_, err := n.Process("posts/bad.md", []byte("---\ntitle: [unclosed\n---\nbody\n"))
		require.Error(t, err)
		assert.True(t, IsParseError(err))
		assert.Contains(t, err.Error(), "posts/bad.md")
	})

	t.Run("invalid UTF-8 is a parse error", func(t *testing.T) {
		_, err := n.Process("posts/binary.md", []byte{0xff, 0xfe, 0xfd})
		assert.True(t, IsParseError(err))
	})

	t.Run("tags of another shape are a validation error", func(t *testing.T) {
		_, err := n.Process("posts/tags.md", []byte("---\ntags: 5\n---\nbody\n"))
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.False(t, IsParseError(err))
	})

	t.Run("tags with non-string items are a validation error", func(t *testing.T) {
		_, err := n.Process("posts/tags.md", []byte("---\ntags:\n  - go\n  - 3\n---\nbody\n"))
		assert.True(t, IsValidationError(err))
	})

	t.Run("unparseable date is a validation error", func(t *testing.T) {
		_, err := n.Process("posts/date.md", []byte("---\ndate: yesterday\n---\nbody\n"))
		assert.True(t, IsValidationError(err))
	})

	t.Run("fractional views are a validation error", func(t *testing.T) {
		_, err := n.Process("posts/views.md", []byte("---\nviews: 1.5\n---\nbody\n"))
		assert.True(t, IsValidationError(err))
	})
}

func TestProcess_Title(t *testing.T) {
	n := newTestNormaliser()

	t.Run("falls back to the first H1", func(t *testing.T) {
		doc, err := n.Process("posts/x.md", []byte("## Sub\n\n# Main Title\n\n# Other\n"))
		require.NoError(t, err)
		assert.Equal(t, "Main Title", doc.Metadata.Title)
	})

	t.Run("falls back to the file name", func(t *testing.T) {
		doc, err := n.Process("posts/my-first_post.md", []byte("no headings here\n"))
		require.NoError(t, err)
		assert.Equal(t, "my first post", doc.Metadata.Title)
	})
}

func TestProcess_TOC(t *testing.T) {
	t.Run("nests H2 under H1", func(t *testing.T) {
		doc := process(t, "# Intro\n\n## Setup\n\n## Usage\n\n# End\n")

		require.Len(t, doc.TOC, 2)
		intro, end := doc.TOC[0], doc.TOC[1]

		assert.Equal(t, "Intro", intro.Text)
		assert.Equal(t, 1, intro.Level)
		assert.Equal(t, "intro", intro.Slug)
		require.Len(t, intro.Children, 2)
		assert.Equal(t, "Setup", intro.Children[0].Text)
		assert.Equal(t, "setup", intro.Children[0].Slug)
		assert.Equal(t, "Usage", intro.Children[1].Text)

		assert.Equal(t, "End", end.Text)
		assert.Empty(t, end.Children)
	})

	t.Run("skipped levels nest under the nearest lower heading", func(t *testing.T) {
		doc := process(t, "# A\n\n### C\n\n## B\n\n#### D\n")

		require.Len(t, doc.TOC, 1)
		a := doc.TOC[0]
		require.Len(t, a.Children, 2)
		assert.Equal(t, "C", a.Children[0].Text)
		assert.Equal(t, 3, a.Children[0].Level)
		assert.Equal(t, "B", a.Children[1].Text)
		require.Len(t, a.Children[1].Children, 1)
		assert.Equal(t, "D", a.Children[1].Children[0].Text)
	})

	t.Run("headings before any H1 are roots", func(t *testing.T) {
		doc := process(t, "## First\n\n# Second\n")
		require.Len(t, doc.TOC, 2)
		assert.Equal(t, 2, doc.TOC[0].Level)
		assert.Equal(t, 1, doc.TOC[1].Level)
	})

	t.Run("duplicate headings get distinct slugs", func(t *testing.T) {
		doc := process(t, "## Setup\n\n## Setup\n")
		require.Len(t, doc.TOC, 2)
		assert.Equal(t, "setup", doc.TOC[0].Slug)
		assert.Equal(t, "setup-1", doc.TOC[1].Slug)
		assert.Contains(t, doc.HTML, `id="setup-1"`)
	})

	t.Run("slugs strip punctuation and emphasis", func(t *testing.T) {
		doc := process(t, "## Hello, *World*!\n")
		require.Len(t, doc.TOC, 1)
		assert.Equal(t, "Hello, World!", doc.TOC[0].Text)
		assert.Equal(t, "hello-world", doc.TOC[0].Slug)
	})
}

func TestProcess_Rendering(t *testing.T) {
	t.Run("heading with anchor link", func(t *testing.T) {
		doc := process(t, "## Setup\n")
		assert.Contains(t, doc.HTML,
			`<h2 id="setup">Setup <a class="anchor-link" href="#setup" aria-hidden="true">#</a></h2>`)
	})

	t.Run("external and internal links", func(t *testing.T) {
		doc := process(t, "See [Go](https://go.dev) and [about](/about).\n")
		assert.Contains(t, doc.HTML,
			`<a href="https://go.dev" target="_blank" rel="noopener noreferrer" class="external-link">Go</a>`)
		assert.Contains(t, doc.HTML, `<a href="/about" class="internal-link">about</a>`)

		require.Len(t, doc.Links, 2)
		assert.Equal(t, domain.Link{Href: "https://go.dev", Text: "Go", External: true}, doc.Links[0])
		assert.Equal(t, domain.Link{Href: "/about", Text: "about", External: false}, doc.Links[1])
	})

	t.Run("bare URLs are autolinked", func(t *testing.T) {
		doc := process(t, "Visit https://example.com today.\n")
		assert.Contains(t, doc.HTML, `href="https://example.com"`)
		assert.Contains(t, doc.HTML, `class="external-link"`)
		require.Len(t, doc.Links, 1)
		assert.True(t, doc.Links[0].External)
	})

	t.Run("dangerous link targets are dropped", func(t *testing.T) {
		doc := process(t, "[click](javascript:alert(1))\n")
		assert.NotContains(t, doc.HTML, "javascript:")
	})

	t.Run("image paths are resolved", func(t *testing.T) {
		doc := process(t, "![Diagram](diagram.png \"Flow\")\n\n![Logo](/img/logo.png)\n\n![Ext](https://img.example.com/a.png)\n")
		assert.Contains(t, doc.HTML, `<img src="/images/diagram.png" alt="Diagram" title="Flow" loading="lazy">`)
		assert.Contains(t, doc.HTML, `<img src="https://cdn.example.com/img/logo.png" alt="Logo" loading="lazy">`)
		assert.Contains(t, doc.HTML, `<img src="https://img.example.com/a.png" alt="Ext" loading="lazy">`)
	})

	t.Run("fenced code is highlighted", func(t *testing.T) {
		doc := process(t, "```go\nfunc main() {}\n```\n")
		assert.Contains(t, doc.HTML, `<div class="code-block"><div class="code-language">go</div>`)
		assert.Contains(t, doc.HTML, `<pre><code class="hljs language-go">`)
		assert.Contains(t, doc.HTML, "main")
	})

	t.Run("unknown languages render as plain text", func(t *testing.T) {
		doc := process(t, "```nosuchlang\n<script>alert(1)</script>\n```\n")
		assert.Contains(t, doc.HTML, `class="hljs language-plaintext"`)
		assert.Contains(t, doc.HTML, "&lt;script&gt;")
		assert.NotContains(t, doc.HTML, "<script>")
	})

	t.Run("indented code has no language label", func(t *testing.T) {
		doc := process(t, "Text\n\n    indented code\n")
		assert.Contains(t, doc.HTML, `<div class="code-block"><pre><code class="hljs language-plaintext">`)
	})

	t.Run("tables are wrapped", func(t *testing.T) {
		doc := process(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
		assert.Contains(t, doc.HTML, "<div class=\"table-wrapper\">\n<table>")
		assert.Contains(t, doc.HTML, "</table>\n</div>")
		assert.Contains(t, doc.HTML, "<td>1</td>")
	})

	t.Run("line breaks are kept", func(t *testing.T) {
		doc := process(t, "first line\nsecond line\n")
		assert.Contains(t, doc.HTML, "first line<br>")
	})

	t.Run("raw HTML is omitted", func(t *testing.T) {
		doc := process(t, "<div onclick=\"steal()\">x</div>\n")
		assert.NotContains(t, doc.HTML, "onclick")
	})
}

func TestProcess_Tasks(t *testing.T) {
	doc := process(t, "- [x] write post\n- [ ] publish it\n- plain item\n")
	require.Len(t, doc.Tasks, 2)
	assert.Equal(t, domain.Task{Text: "write post", Completed: true}, doc.Tasks[0])
	assert.Equal(t, domain.Task{Text: "publish it", Completed: false}, doc.Tasks[1])
}

func TestProcess_Deterministic(t *testing.T) {
	source := []byte("---\ntitle: Same\ndate: 2024-01-01\ntags: [a, b]\n---\n# One\n\n## Two\n\n```go\nx := 1\n```\n\n[link](https://go.dev)\n")

	first, err := New(Options{}).Process("p.md", source)
	require.NoError(t, err)
	second, err := New(Options{}).Process("p.md", source)
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, first.TOC, second.TOC)
	assert.Equal(t, first.Excerpt, second.Excerpt)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestProcess_ReadingTimeAndExcerpt(t *testing.T) {
	t.Run("empty body reads in one minute", func(t *testing.T) {
		doc := process(t, "---\ntitle: Empty\n---\n")
		assert.Equal(t, 1, doc.ReadingTimeMinutes)
		assert.Empty(t, doc.Excerpt)
	})

	t.Run("long body", func(t *testing.T) {
		doc := process(t, strings.Repeat("word ", 401))
		assert.Equal(t, 3, doc.ReadingTimeMinutes)
		assert.True(t, strings.HasSuffix(doc.Excerpt, "..."))
	})
}

func TestExcerpt(t *testing.T) {
	t.Run("truncates plain text to the limit", func(t *testing.T) {
		body := strings.Repeat("abcdefghij", 30)
		excerpt := Excerpt(body)

		assert.Len(t, excerpt, ExcerptLength+len("..."))
		assert.Equal(t, body[:ExcerptLength]+"...", excerpt)
	})

	t.Run("short text is untouched", func(t *testing.T) {
		assert.Equal(t, "Short text.", Excerpt("Short text."))
	})

	t.Run("strips markdown syntax", func(t *testing.T) {
		body := "## Title\n\nThis is **bold** and [a link](http://x.com) ![img](a.png)\n\n`code` next"
		assert.Equal(t, "Title This is bold and a link code next", Excerpt(body))
	})

	t.Run("strips underscore and strikethrough markers", func(t *testing.T) {
		body := "Some _emphasis_, __strong__ and ~~struck~~ words"
		assert.Equal(t, "Some emphasis, strong and struck words", Excerpt(body))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		body := strings.Repeat("é", 200)
		excerpt := Excerpt(body)
		assert.Equal(t, strings.Repeat("é", ExcerptLength)+"...", excerpt)
	})
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}

	for _, tt := range tests {
		body := strings.TrimSpace(strings.Repeat("w ", tt.words))
		assert.Equal(t, tt.want, ReadingTime(body), "words=%d", tt.words)
	}
}

func TestNormaliseTags(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"comma string", "A, b,B", []string{"a", "b"}},
		{"single tag", "Go", []string{"go"}},
		{"empty string", "", []string{}},
		{"string slice", []string{" X ", "x", "y"}, []string{"x", "y"}},
		{"any slice", []any{"Go", "GO", " rust"}, []string{"go", "rust"}},
		{"drops empties", "a,,  ,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormaliseTags(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects other shapes", func(t *testing.T) {
		_, err := NormaliseTags(map[string]any{"a": 1})
		assert.Error(t, err)
		_, err = NormaliseTags(12)
		assert.Error(t, err)
	})
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":         "hello-world",
		"  Trim  me  ":        "trim-me",
		"C++ & Go!":           "c-go",
		"already-slugged":     "already-slugged",
		"Multiple---dashes":   "multiple-dashes",
		"Ünïcödé Headings":    "ünïcödé-headings",
		"snake_case_is_kept":  "snake_case_is_kept",
		"!!!":                 "",
	}
	for input, want := range tests {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestIsExternalLink(t *testing.T) {
	assert.True(t, IsExternalLink("https://go.dev"))
	assert.True(t, IsExternalLink("mailto:a@b.c"))
	assert.True(t, IsExternalLink("ftp://files"))
	assert.False(t, IsExternalLink("/about"))
	assert.False(t, IsExternalLink("../other.md"))
	assert.False(t, IsExternalLink("#section"))
}
