package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"passgrip/internal/domain"
	"passgrip/internal/eventbus"
)

// Watch loads the store and starts a background goroutine that reports
// changes. The watches are registered before the initial load, so any
// change that misses the snapshot still produces an event. The returned
// channel is closed when ctx ends.
func (s *Store) Watch(ctx context.Context) (<-chan domain.ChangeEvent, domain.Snapshot, error) {
	if err := s.checkRoot(); err != nil {
		return nil, nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	if err := s.addRecursive(w, s.dir); err != nil {
		w.Close()
		return nil, nil, fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}
	if s.watching != nil {
		s.watching()
	}

	snapshot, err := s.Load()
	if err != nil {
		w.Close()
		return nil, nil, err
	}

	bus := eventbus.New(eventbus.DefaultCapacity, s.logger)
	go s.watchLoop(ctx, w, bus)

	s.logger.Info("watching password store", zap.String("dir", s.dir), zap.Int("entries", len(snapshot)))
	return bus.Events(), snapshot, nil
}

func (s *Store) watchLoop(ctx context.Context, w *fsnotify.Watcher, bus *eventbus.Bus) {
	defer bus.Close()
	defer w.Close()

	// reload fires once the event burst has been quiet for s.debounce
	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !s.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.addRecursive(w, event.Name); err != nil {
						s.publish(ctx, bus, domain.ErrorEvent(fmt.Errorf("failed to watch %s: %w", event.Name, err)))
					}
				}
			}
			reload = time.After(s.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", zap.Error(err))
			s.publish(ctx, bus, domain.ErrorEvent(fmt.Errorf("change detection failed: %w", err)))

		case <-reload:
			reload = nil
			snapshot, err := s.Load()
			if err != nil {
				s.logger.Warn("reload failed", zap.Error(err))
				s.publish(ctx, bus, domain.ErrorEvent(err))
				continue
			}
			s.publish(ctx, bus, domain.UpdatedEvent(snapshot))
		}
	}
}

func (s *Store) publish(ctx context.Context, bus *eventbus.Bus, event domain.ChangeEvent) {
	if err := bus.Publish(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("failed to publish store event", zap.Error(err))
	}
}

// relevant filters out chmod-only events and files that are not entries
func (s *Store) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if isHidden(base) {
		return false
	}
	if strings.HasSuffix(base, s.codec.Extension()) {
		return true
	}
	// Directories have no extension; removals of a directory cannot be
	// stat'ed any more so they are always treated as relevant.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return filepath.Ext(base) == ""
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

func (s *Store) addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
