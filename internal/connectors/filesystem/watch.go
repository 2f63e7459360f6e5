package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/logger"
)

// Watch emits a value whenever a markdown file below the root is created,
// written, removed or renamed. Bursts are coalesced: a pending signal
// absorbs later events until the consumer reads it. The channel closes
// when ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.mu.Unlock()

	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := s.addTree(watcher, s.root); err != nil {
		watcher.Close()
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		watcher.Close()
		return nil, ErrClosed
	}
	s.watchers = append(s.watchers, watcher)
	s.mu.Unlock()

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer s.release(watcher)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.handleFsEvent(watcher, event) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("filesystem: watch error: %v", err)
			}
		}
	}()

	return changes, nil
}

// handleFsEvent reports whether event affects a markdown file. New
// directories are added to the watch set.
func (s *Source) handleFsEvent(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	rel, err := filepath.Rel(s.root, event.Name)
	if err != nil || isHidden(rel) {
		return false
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipDir(info.Name()) && watcher != nil {
				if err := s.addTree(watcher, event.Name); err != nil {
					logger.Warn("filesystem: watch %s: %v", event.Name, err)
				}
			}
			return false
		}
	}

	if !domain.IsMarkdownPath(event.Name) {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

// addTree watches dir and every walkable directory below it.
func (s *Source) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// release closes watcher and forgets it.
func (s *Source) release(watcher *fsnotify.Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchers {
		if w == watcher {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			break
		}
	}
	watcher.Close()
}
