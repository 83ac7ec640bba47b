package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates cached documents when files in the checkpoint directory
// change. Subdirectories are watched too when the file pattern reaches into
// them. It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := s.addWatches(w, s.dir); err != nil {
		return err
	}
	s.log.Info().Str("dir", s.dir).Bool("recursive", s.recursive()).Msg("watching checkpoints")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			s.handleEvent(w, ev)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				s.InvalidateAll()
			}
			s.log.Warn().Err(err).Msg("checkpoint watcher")
		}
	}
}

func (s *Store) handleEvent(w *fsnotify.Watcher, ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	key, ok := s.cacheKey(ev.Name)
	if !ok {
		return
	}

	if ev.Has(fsnotify.Create) && s.recursive() {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := s.addWatches(w, ev.Name); err != nil {
				s.log.Warn().Err(err).Str("dir", key).Msg("watching new directory")
			}
		}
	}

	s.invalidateTree(key)
	s.log.Debug().Str("file", key).Str("op", ev.Op.String()).Msg("checkpoint changed")
}

// addWatches watches root, and every directory below it when the pattern
// spans directories.
func (s *Store) addWatches(w *fsnotify.Watcher, root string) error {
	if !s.recursive() {
		if err := w.Add(root); err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
		return nil
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// recursive reports whether the file pattern can match below the top level.
func (s *Store) recursive() bool {
	return strings.Contains(s.pattern, "/")
}

// cacheKey maps a watched path to the slash-separated name the cache uses.
func (s *Store) cacheKey(path string) (string, bool) {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// invalidateTree drops key and, for directories, every entry below it.
func (s *Store) invalidateTree(key string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(key)
	prefix := key + "/"
	for k := range s.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			s.cache.Delete(k)
		}
	}
}
