package bindings

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/chatter/uinav/internal/logger"
)

// Watcher reports changes to one bindings file. It watches the containing
// directory so that editors which replace the file by rename are seen too.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	filtered chan fsnotify.Event
	done     chan struct{}
	log      *logger.Logger
}

// NewWatcher starts watching path. The directory must exist.
func NewWatcher(path string, log *logger.Logger) (*Watcher, error) {
	log = log.With("component", "watcher")
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("failed to create fsnotify watcher", "err", err)
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		log.Error("failed to watch bindings directory", "path", dir, "err", err)
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	log.Info("watcher started", "path", path)

	w := &Watcher{
		watcher:  watcher,
		path:     path,
		filtered: make(chan fsnotify.Event, 1),
		done:     make(chan struct{}),
		log:      log,
	}
	go w.filterEvents()
	return w, nil
}

// Events returns the channel of events for the bindings file. It is closed
// when the watcher stops.
func (w *Watcher) Events() <-chan fsnotify.Event {
	return w.filtered
}

// Errors returns the channel of fsnotify errors.
func (w *Watcher) Errors() <-chan error {
	return w.watcher.Errors
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("closing fsnotify watcher: %w", err)
	}
	return nil
}

func (w *Watcher) filterEvents() {
	defer close(w.filtered)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldForward(event) {
				continue
			}
			w.log.Debug("bindings file changed", "path", event.Name, "op", event.Op.String())

			// A pending event already means "reload"; drop the rest of a burst.
			select {
			case w.filtered <- event:
			default:
				w.log.Debug("watcher event dropped (pending)", "path", event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "err", err)
		}
	}
}

func (w *Watcher) shouldForward(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
