package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Store holds the catalog currently served. It is safe for concurrent use;
// readers always see a complete catalog.
type Store struct {
	mu      sync.RWMutex
	current *Catalog
	log     *zap.Logger
}

// NewStore wraps an initial catalog. A nil logger disables logging.
func NewStore(c *Catalog, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{current: c, log: log.Named("catalog")}
}

// Catalog returns the current catalog.
func (s *Store) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a new catalog.
func (s *Store) Replace(c *Catalog) {
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
}

// Reload reads and validates path, then swaps it in. On error the current
// catalog stays in place.
func (s *Store) Reload(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("catalog: %s: %w", path, err)
	}
	s.Replace(c)
	return nil
}

// Watch reloads the catalog whenever path is written or replaced. It returns
// once the watch is registered; the reload loop runs until ctx is done.
//
// The parent directory is watched rather than the file so editors that save
// through a rename are still picked up.
func (s *Store) Watch(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("catalog: watch %s: %w", path, err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				prev := s.Catalog()
				if err := s.Reload(path); err != nil {
					s.log.Warn("reload failed, keeping previous catalog",
						zap.String("path", path), zap.Error(err))
					continue
				}
				s.log.Info("catalog reloaded",
					zap.String("path", path), zap.Int("scenes", s.Catalog().Len()),
					zap.Strings("changed", s.Catalog().Changed(prev)))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Error("watch error", zap.Error(err))
			}
		}
	}()
	return nil
}
