package endpoints

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounceDelay coalesces rapid successive writes (editors often write
// a file more than once per save).
const WatchDebounceDelay = 300 * time.Millisecond

// Watch re-loads the definitions file on every write and hands the new Set to
// onChange; load failures go to onError and leave the previous set in place.
// Watch blocks until stop is closed.
func Watch(path string, onChange func(*Set), onError func(error), stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files by rename.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				set, err := Load(path)
				if err != nil {
					onError(err)
					return
				}
				onChange(set)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(err)

		case <-stop:
			return nil
		}
	}
}
