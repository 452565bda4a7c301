package resource

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever a file in the override directory changes.
// It returns once the watcher is running; the watcher stops when ctx is done.
// A reload that fails keeps the previous records and logs a warning.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return fmt.Errorf("resource watcher: no resources directory configured")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("resource watcher: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("resource watcher add %s: %w", s.dir, err)
	}

	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !isYAML(ev.Name) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
					!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if err := s.Reload(); err != nil {
					s.logger.Warn("resource reload failed, keeping previous records", map[string]any{
						"file":  ev.Name,
						"error": err.Error(),
					})
					continue
				}
				s.logger.Info("resources reloaded", map[string]any{"file": ev.Name})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("resource watcher error", map[string]any{"error": err.Error()})
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
