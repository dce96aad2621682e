package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups bursts of events into one refresh.
const DefaultDebounce = 150 * time.Millisecond

// Watcher follows one directory at a time and sends a Refresh action,
// carrying the directory in Text, when entries are created, removed or
// renamed in it.
type Watcher struct {
	// Directory being watched
	directory string

	tx       action.Sender
	debounce time.Duration
	pending  *time.Timer

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the watched directory
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a directory watcher reporting to tx
func New(tx action.Sender) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		tx:        tx,
		debounce:  DefaultDebounce,
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// SetDebounce changes how long events are grouped before a refresh.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mutex.Lock()
	w.debounce = d
	w.mutex.Unlock()
}

// Watch replaces the watched directory with dir
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.directory == dir {
		return nil
	}
	if w.directory != "" {
		// The old directory may already be gone.
		_ = w.fsWatcher.Remove(w.directory)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.directory = ""
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.directory = dir
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// Directory returns the directory being watched
func (w *Watcher) Directory() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.directory
}

// Start begins the event loop
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	stop := w.stopChan
	w.mutex.Unlock()

	go func() {
		log.Debug("Watcher event loop started.")

		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
					w.schedule()
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-stop:
				log.Debug("Watcher event loop received stop signal.")
				return
			}
		}
	}()

	return nil
}

// schedule sends one Refresh after the debounce window, however many
// events arrive during it.
func (w *Watcher) schedule() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.pending != nil {
		return
	}
	dir := w.directory
	w.pending = time.AfterFunc(w.debounce, func() {
		w.mutex.Lock()
		w.pending = nil
		current := w.directory
		w.mutex.Unlock()
		if current == dir {
			w.tx.Send(action.Action{Kind: action.Refresh, Text: dir})
		}
	})
}

// Stop halts the watcher. It cannot be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	close(w.stopChan)
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	w.running = false
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
