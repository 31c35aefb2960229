package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"admindash/internal/dataset"
	"admindash/internal/log"

	"github.com/fsnotify/fsnotify"
)

// SeedChange is a change to one seed file in the watched data directory
type SeedChange struct {
	Path      string
	Screen    string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors a data directory for seed file changes using fsnotify
type Watcher struct {
	// Directory being watched
	dir string

	// Channel to receive seed changes
	events chan SeedChange

	// Channel to signal stop, and one closed when the event loop exits
	stopChan chan struct{}
	done     chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
	stopped bool
}

// New creates a watcher for the seed files in dir
func New(dir string) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	// Watch the directory rather than the files so editors that replace
	// files on save, and files created later, are still seen.
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	return &Watcher{
		dir:       dir,
		events:    make(chan SeedChange, 10),
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
		fsWatcher: fsWatcher,
	}, nil
}

// Dir returns the watched directory
func (w *Watcher) Dir() string {
	return w.dir
}

// Events returns the channel that delivers seed changes. It is closed by Stop.
func (w *Watcher) Events() <-chan SeedChange {
	return w.events
}

// seedScreen maps a file name to the screen it seeds
func seedScreen(path string) (string, bool) {
	name := filepath.Base(path)
	if filepath.Ext(name) != ".yaml" {
		return "", false
	}
	screen := strings.TrimSuffix(name, ".yaml")
	if screen == dataset.ScreenFiles {
		return screen, true
	}
	if _, err := dataset.LookupScreen(screen); err != nil {
		return "", false
	}
	return screen, true
}

// Start begins the event loop
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	w.running = true

	go w.loop()

	log.LogWithFields(log.F("directory", w.dir)).Info("Watching seed files")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			screen, ok := seedScreen(event.Name)
			if !ok {
				continue
			}
			change := SeedChange{
				Path:      event.Name,
				Screen:    screen,
				Op:        event.Op,
				Timestamp: time.Now(),
			}
			log.LogWithFields(log.F("file", event.Name), log.F("op", event.Op.String())).Debug("Seed file changed")

			// Send non-blockingly so a slow consumer cannot wedge the loop; the
			// reloader only needs to know that something changed.
			select {
			case w.events <- change:
			case <-w.stopChan:
				return
			default:
				log.LogWithFields(log.F("file", event.Name)).Warn("Event channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and closes the events channel. It is safe to call
// more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true

	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithError(err).Error("Error closing fsnotify watcher")
	}
	if w.running {
		<-w.done
	}
	w.running = false
	close(w.events)

	log.Info("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
