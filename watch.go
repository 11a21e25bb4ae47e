package shader

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a set of shader source files.
//
// The parent directories are watched rather than the files, so editors that save by
// writing a temporary file and renaming it over the original are still noticed.
// Bursts of events coalesce into a single pending notification.
type Watcher struct {
	fw      *fsnotify.Watcher
	files   map[string]struct{}
	changed chan struct{}
	done    chan struct{}
	logger  *slog.Logger
}

// NewWatcher starts watching paths and logs to the package default logger.
func NewWatcher(paths ...string) (*Watcher, error) {
	return newWatcher(defaultLogger, paths)
}

// Watch starts watching paths with the manager's logger.
func (m *Manager) Watch(paths ...string) (*Watcher, error) {
	return newWatcher(m.logger, paths)
}

func newWatcher(logger *slog.Logger, paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create shader watcher: %w", err)
	}

	w := &Watcher{
		fw:      fw,
		files:   make(map[string]struct{}),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		logger:  logger,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch shader %q: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch shader directory %q: %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

// Changed receives a value after any watched file was written or replaced.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Poll reports whether a change is pending, without blocking. It is meant to be
// called once per frame from the render loop.
func (w *Watcher) Poll() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// Close stops watching and waits for the event goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; !watched {
				continue
			}
			w.logger.Debug("shader source changed", "file", event.Name, "op", event.Op.String())
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("shader watcher error", "err", err)
		}
	}
}
