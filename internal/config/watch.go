package config

import (
	"context"
	"path/filepath"
	"time"

	fsnotify "github.com/fsnotify/fsnotify"
)

// Watch observes the settings file and invokes onChange after each
// modification, coalescing bursts of events. It blocks until ctx ends
// and only returns a non-nil error when the watcher cannot be set up.
func Watch(ctx context.Context, onChange func()) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Watch the directory, not the file: editors and SaveSettings both
	// replace the file, which would invalidate a file-level watch.
	if err := w.Add(dir); err != nil {
		return err
	}
	ch := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != settingsFile {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			// settle window for editors that write in multiple steps
			time.Sleep(120 * time.Millisecond)
			select {
			case <-ch:
			default:
			}
			onChange()
		}
	}
}
