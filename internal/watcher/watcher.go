// Package watcher notifies the widget when the settings file changes on
// disk, so external edits take effect without a restart.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of events an atomic save produces
// (create temp, write, rename) into a single reload.
const debounceWindow = 200 * time.Millisecond

// Reloader receives the change notification.
type Reloader interface {
	RequestReload()
}

// Watcher watches the directory containing the settings file. The directory
// is watched rather than the file itself because atomic saves replace the
// file, which would drop a file-level watch.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	target    string
	reloader  Reloader
	done      chan struct{}
	stopOnce  sync.Once

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// New creates a watcher for the given settings file path.
func New(settingsPath string, reloader Reloader) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		target:    settingsPath,
		reloader:  reloader,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The settings directory must exist.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.target)); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Atomic saves surface as Create or Rename on the target; in-place
	// editors produce Write.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if filepath.Base(event.Name) != filepath.Base(w.target) {
		return
	}
	w.scheduleReload()
}

func (w *Watcher) scheduleReload() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceWindow, func() {
		select {
		case <-w.done:
			return
		default:
		}
		log.Printf("watcher: settings file changed")
		w.reloader.RequestReload()
	})
}
