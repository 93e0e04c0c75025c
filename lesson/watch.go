package lesson

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 20 * time.Millisecond

// Watch signals when any of the files is written, created or replaced.
// Bursts of events are coalesced into one signal. The channel is closed when
// ctx is done.
//
// The directories of the files are watched rather than the files so editors
// that replace files on save keep triggering.
func Watch(ctx context.Context, files []string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
		dirs[dir] = true
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Error watching shader files: %v", err)
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(ev, watched) {
					continue
				}
				t := time.NewTimer(watchDebounce)
			outer:
				for {
					select {
					case <-watcher.Events:
					case <-t.C:
						break outer
					case <-ctx.Done():
						t.Stop()
						return
					}
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}
	}()
	return changes, nil
}

func relevant(ev fsnotify.Event, watched map[string]bool) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return watched[abs]
}
