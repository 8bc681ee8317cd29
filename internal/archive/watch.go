package archive

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"artimentor/internal/logging"
)

// Event reports a change under the archive root.
type Event struct {
	Name string
	Op   string
}

// Watch emits an event whenever scan folders appear, disappear or get
// renamed under the root. It blocks until ctx is cancelled. Useful when
// another tool (or a second shell) is writing scans concurrently.
func (m *Manager) Watch(ctx context.Context, events chan<- Event) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(m.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", m.root, err)
	}
	logging.Get(logging.CategoryArchive).Info("watching %s", m.root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case events <- Event{Name: ev.Name, Op: ev.Op.String()}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Get(logging.CategoryArchive).Warn("watch error: %v", err)
		}
	}
}
