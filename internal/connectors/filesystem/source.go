// Package filesystem implements a content source over a local directory.
// It serves a checked-out blog repository the same way the GitHub source
// serves a remote one, and can watch the directory for changes.
package filesystem

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
)

// Ensure Source implements the interfaces.
var (
	_ driven.ContentSource = (*Source)(nil)
	_ driven.ChangeWatcher = (*Source)(nil)
)

// Filesystem-specific errors.
var (
	// ErrClosed indicates the source has been closed.
	ErrClosed = errors.New("filesystem: source closed")

	// ErrOutsideRoot indicates a path escaping the source root.
	ErrOutsideRoot = errors.New("filesystem: path outside root")
)

// skippedDirs are never walked.
var skippedDirs = map[string]struct{}{
	"node_modules": {},
	"dist":         {},
}

// Source reads markdown files below a root directory.
type Source struct {
	root string

	mu       sync.Mutex
	watchers []*fsnotify.Watcher
	closed   bool
}

// New creates a source rooted at root.
func New(root string) *Source {
	return &Source{root: filepath.Clean(root)}
}

// Root returns the source root.
func (s *Source) Root() string {
	return s.root
}

// checkRoot verifies the root is an accessible directory.
func (s *Source) checkRoot() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", s.root)
	}
	return nil
}

// ListMarkdownFiles walks the root for .md files, skipping hidden
// directories, node_modules and dist. Paths are slash-separated and
// relative to the root.
func (s *Source) ListMarkdownFiles(ctx context.Context) ([]domain.FileRef, error) {
	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	var refs []domain.FileRef
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) || !domain.IsMarkdownPath(d.Name()) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		refs = append(refs, domain.FileRef{
			Path:      filepath.ToSlash(rel),
			RawURL:    fileURL(path),
			ContentID: BlobSHA(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}
	return refs, nil
}

// FetchRawContent reads one file.
func (s *Source) FetchRawContent(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(content), nil
}

// FetchFileMetadata reports the file's modification time as its only
// history. Local files carry no commit information.
func (s *Source) FetchFileMetadata(ctx context.Context, path string) (*domain.FileMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("stat %s: is a directory", path)
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &domain.FileMetadata{
		Name:         info.Name(),
		Path:         filepath.ToSlash(path),
		SHA:          BlobSHA(content),
		Size:         int(info.Size()),
		DownloadURL:  fileURL(full),
		LastModified: info.ModTime(),
		History:      []domain.Commit{},
	}, nil
}

// ClearCache is a no-op; the filesystem source reads through.
func (s *Source) ClearCache() {}

// resolve maps a root-relative path onto the filesystem.
func (s *Source) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return full, nil
}

// Close stops every active watcher. Further Watch calls fail.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	var errs []error
	for _, w := range s.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.watchers = nil
	return errors.Join(errs...)
}

// BlobSHA returns the git blob hash of content, matching the SHA GitHub
// reports for the same file in a tree listing.
func BlobSHA(content []byte) string {
	h := sha1.New()
	h.Write([]byte("blob " + strconv.Itoa(len(content)) + "\x00"))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

func skipDir(name string) bool {
	if isHidden(name) {
		return true
	}
	_, skip := skippedDirs[name]
	return skip
}

// isHidden checks if any path element starts with a dot.
// "." and ".." are not considered hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
