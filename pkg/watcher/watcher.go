// Package watcher re-runs analysis when locally served model files change.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches model files and calls back with the changed path.
// Editors often emit bursts of write events on save, so callbacks are
// debounced per file.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func(string)
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a file watcher that invokes onChange with the absolute path
// of a changed file, at most once per debounce window per file
func New(debounce time.Duration, onChange func(string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		onChange: onChange,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Add starts watching a file
func (fw *FileWatcher) Add(file string) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}
	if err := fw.watcher.Add(absPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}
	return nil
}

// Start begins dispatching change events in a background goroutine
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					fw.schedule(event.Name)
				}

			case _, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (fw *FileWatcher) schedule(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if timer, exists := fw.timers[path]; exists {
		timer.Stop()
	}
	fw.timers[path] = time.AfterFunc(fw.debounce, func() {
		fw.onChange(path)
	})
}

// Close stops the watcher and cancels pending callbacks
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for path, timer := range fw.timers {
		timer.Stop()
		delete(fw.timers, path)
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
