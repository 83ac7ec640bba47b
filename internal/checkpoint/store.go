// Package checkpoint serves documents from a directory of checkpoint JSON
// files, caching decoded documents in memory.
package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/annoview/internal/document"
)

var (
	// ErrNotFound is returned for files that do not exist or are not listed.
	ErrNotFound = errors.New("checkpoint not found")
	// ErrInvalidName is returned for names that escape the checkpoint directory.
	ErrInvalidName = errors.New("invalid checkpoint name")
)

// Options configures a Store.
type Options struct {
	Dir        string
	Pattern    string // doublestar glob relative to Dir
	LegacyFile string // file served by Documents
	CacheTTL   time.Duration
	Logger     zerolog.Logger
}

// Store reads checkpoint files from a directory.
type Store struct {
	dir        string
	fsys       fs.FS
	pattern    string
	legacyFile string
	cache      *gocache.Cache
	log        zerolog.Logger
}

// NewStore creates a Store. A zero CacheTTL disables caching.
func NewStore(opts Options) *Store {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*.json"
	}

	s := &Store{
		dir:        opts.Dir,
		fsys:       os.DirFS(opts.Dir),
		pattern:    pattern,
		legacyFile: opts.LegacyFile,
		log:        opts.Logger.With().Str("component", "checkpoint").Logger(),
	}
	if opts.CacheTTL > 0 {
		s.cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return s
}

// ListFiles returns the checkpoint file names matching the pattern, sorted.
func (s *Store) ListFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(s.fsys, s.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}
	sort.Strings(matches)
	if matches == nil {
		matches = []string{}
	}
	return matches, nil
}

// SingleDocument loads one checkpoint file by name.
func (s *Store) SingleDocument(ctx context.Context, name string) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if ok, _ := doublestar.Match(s.pattern, name); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s.load(name)
}

// MultipleDocuments loads each named file. Files that cannot be loaded are
// returned as empty documents so the result always has one entry per name.
func (s *Store) MultipleDocuments(ctx context.Context, names []string) (*document.Collection, error) {
	out := document.NewCollection()
	for _, name := range names {
		doc, err := s.SingleDocument(ctx, name)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if !errors.Is(err, ErrNotFound) {
				s.log.Warn().Err(err).Str("file", name).Msg("skipping checkpoint")
			}
			doc = document.New()
		}
		out.Put(name, doc)
	}
	return out, nil
}

// Documents loads the legacy single documents file.
func (s *Store) Documents(ctx context.Context) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.legacyFile == "" || !fs.ValidPath(s.legacyFile) {
		return nil, fmt.Errorf("%w: legacy file %q", ErrInvalidName, s.legacyFile)
	}
	return s.load(s.legacyFile)
}

// Invalidate drops name from the cache.
func (s *Store) Invalidate(name string) {
	if s.cache != nil {
		s.cache.Delete(name)
	}
}

// InvalidateAll empties the cache.
func (s *Store) InvalidateAll() {
	if s.cache != nil {
		s.cache.Flush()
	}
}

func (s *Store) load(name string) (*document.Document, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(name); ok {
			return v.(*document.Document), nil
		}
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	doc := document.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	s.log.Debug().Str("file", name).Int("records", doc.Len()).Msg("checkpoint loaded")

	if s.cache != nil {
		s.cache.SetDefault(name, doc)
	}
	return doc, nil
}
