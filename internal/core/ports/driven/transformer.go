package driven

import "github.com/uakbr/github-blog-crm/internal/core/domain"

// DocumentTransformer converts one markdown file into a processed document.
// Implementations perform no I/O.
type DocumentTransformer interface {
	// Process splits frontmatter from body, renders the body and derives
	// TOC, excerpt, reading time and normalised metadata. path is used for
	// error context and as the title of last resort.
	Process(path string, source []byte) (*domain.ProcessedDocument, error)
}
