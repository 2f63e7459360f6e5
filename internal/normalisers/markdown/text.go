package markdown

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// ExcerptLength is the rune budget of an excerpt before the ellipsis.
	ExcerptLength = 160

	// WordsPerMinute is the reading speed used for reading time.
	WordsPerMinute = 200
)

var (
	excerptImages  = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	excerptLinks   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	excerptSymbols = regexp.MustCompile("[#*`_~]")
	excerptSpace   = regexp.MustCompile(`\s+`)
)

// Excerpt returns a plain-text summary of a markdown body. Link labels are
// kept, images and emphasis markers dropped and whitespace collapsed. Text
// longer than ExcerptLength runes is cut and suffixed with "...".
func Excerpt(body string) string {
	text := excerptImages.ReplaceAllString(body, "")
	text = excerptLinks.ReplaceAllString(text, "$1")
	text = excerptSymbols.ReplaceAllString(text, "")
	text = strings.TrimSpace(excerptSpace.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) <= ExcerptLength {
		return text
	}
	return strings.TrimSpace(string(runes[:ExcerptLength])) + "..."
}

// ReadingTime estimates minutes to read body. It is never below 1.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// titleFromPath derives a title from a file name.
func titleFromPath(path string) string {
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return strings.TrimSpace(filename)
}
