package markdown

import (
	"bytes"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.DocumentTransformer = (*Normaliser)(nil)

// errInvalidUTF8 rejects input that is not well-formed UTF-8.
var errInvalidUTF8 = errors.New("input is not valid UTF-8")

// Normaliser turns markdown files with frontmatter into processed posts.
// It is safe for concurrent use.
type Normaliser struct {
	md  goldmark.Markdown
	now func() time.Time
}

// Options configures a Normaliser.
type Options struct {
	// BaseURL prefixes image paths starting with "/".
	BaseURL string

	// ImagePath prefixes relative image paths.
	ImagePath string

	// Now supplies the date of posts without one. Defaults to time.Now.
	Now func() time.Time
}

// New creates a Markdown normaliser.
func New(opts Options) *Normaliser {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			renderer.WithNodeRenderers(
				util.Prioritized(newPostRenderer(opts.BaseURL, opts.ImagePath), 100),
			),
		),
	)

	return &Normaliser{md: md, now: now}
}

// Process converts one markdown source into a processed document.
// Malformed frontmatter fails with *ParseError and unsupported metadata
// shapes with *ValidationError.
func (n *Normaliser) Process(path string, source []byte) (*domain.ProcessedDocument, error) {
	if !utf8.Valid(source) {
		return nil, &ParseError{Path: path, Err: errInvalidUTF8}
	}

	fields, body, err := splitFrontmatter(source)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	ctx := parser.NewContext(parser.WithIDs(newSlugIDs()))
	doc := n.md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	var buf bytes.Buffer
	if err := n.md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	out := collectOutline(doc, body)

	fallbackTitle := out.firstH1
	if fallbackTitle == "" {
		fallbackTitle = titleFromPath(path)
	}
	meta, err := normaliseMetadata(path, fields, fallbackTitle, n.now())
	if err != nil {
		return nil, err
	}

	bodyText := string(body)
	return &domain.ProcessedDocument{
		HTML:               buf.String(),
		TOC:                buildTOC(out.headings),
		Excerpt:            Excerpt(bodyText),
		ReadingTimeMinutes: ReadingTime(bodyText),
		Links:              out.links,
		Tasks:              out.tasks,
		Metadata:           meta,
	}, nil
}
