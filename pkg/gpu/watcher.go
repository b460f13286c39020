package gpu

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports edits to shader source files so the render thread can
// call LoadShaders again. Directories are watched rather than files so that
// editors which replace a file on save are still seen.
type ShaderWatcher struct {
	w       *fsnotify.Watcher
	files   map[string]bool
	changed chan string
	log     *slog.Logger
}

// NewShaderWatcher watches the given shader file paths
func NewShaderWatcher(log *slog.Logger, paths ...string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create shader watcher: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	sw := &ShaderWatcher{
		w:       w,
		files:   make(map[string]bool, len(paths)),
		changed: make(chan string, 1),
		log:     log,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		sw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}
	return sw, nil
}

// Changed delivers the path of an edited shader. Bursts of edits collapse
// into one pending notification.
func (sw *ShaderWatcher) Changed() <-chan string {
	return sw.changed
}

// Run forwards file events until ctx is done or the watcher is closed
func (sw *ShaderWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !sw.files[abs] {
				continue
			}
			select {
			case sw.changed <- abs:
			default:
			}
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			sw.log.Warn("shader watcher", "error", err)
		}
	}
}

func (sw *ShaderWatcher) Close() error {
	return sw.w.Close()
}
