// Package watch re-runs a callback when files under a root directory
// change. Events are debounced so a burst of writes triggers one run.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/buemura/warden/internal/logging"
)

// DefaultDebounce is the quiet period after the last event before the
// callback fires.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a directory tree for changes.
type Watcher struct {
	root         string
	excludedDirs map[string]bool
	debounce     time.Duration
	fw           *fsnotify.Watcher
}

// New creates a Watcher over root. Directories named in excludedDirs
// are not watched.
func New(root string, excludedDirs []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(excludedDirs))
	for _, d := range excludedDirs {
		excluded[d] = true
	}

	w := &Watcher{
		root:         root,
		excludedDirs: excluded,
		debounce:     DefaultDebounce,
		fw:           fw,
	}

	if err := w.addRecursive(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// addRecursive registers root and every non-excluded subdirectory.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // unreadable subtree, skip
		}
		if !d.IsDir() {
			return nil
		}
		if w.excludedDirs[d.Name()] && path != root {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

// Run blocks, invoking onChange after each debounced burst of events,
// until ctx is cancelled. New directories are added to the watch as
// they appear.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	log := logging.L()
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if w.excludedDirs[filepath.Base(filepath.Dir(event.Name))] {
				continue
			}
			if event.Has(fsnotify.Create) {
				// A created path may be a directory; watch its subtree.
				if err := w.addRecursive(event.Name); err != nil {
					log.Debugw("watch add failed", "path", event.Name, "error", err)
				}
			}
			log.Debugw("change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			onChange()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watch error", "error", err)
		}
	}
}
