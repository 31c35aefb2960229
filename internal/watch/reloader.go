package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"admindash/internal/dataset"
	"admindash/internal/log"
)

// Status represents the current status of the reloader
type Status struct {
	Running    bool      // Whether the reloader is currently active
	Dir        string    // Data directory being watched
	LastChange time.Time // Time of the last seed file event
	LastReload time.Time // Time of the last accepted reload
	Reloads    int       // Accepted reloads
	LastError  error     // Error of the most recent failed reload
}

// Reloader rebuilds the dataset snapshot whenever seed files change. Bursts of
// events are collapsed into one reload after a quiet period.
type Reloader struct {
	watcher  *Watcher
	store    *dataset.Store
	debounce time.Duration
	load     func(context.Context) (dataset.Snapshot, error)

	callback func(dataset.Snapshot, error)
	onChange func(SeedChange)

	mutex  sync.RWMutex
	status Status

	cancel context.CancelFunc
	done   chan struct{}
}

// NewReloader watches dir and commits reloaded snapshots into store
func NewReloader(dir string, store *dataset.Store, debounce time.Duration) (*Reloader, error) {
	w, err := New(dir)
	if err != nil {
		return nil, err
	}
	return &Reloader{
		watcher:  w,
		store:    store,
		debounce: debounce,
		load: func(context.Context) (dataset.Snapshot, error) {
			return dataset.LoadDir(dir)
		},
		status: Status{Dir: dir},
	}, nil
}

// OnReload sets a function called after every reload attempt. It receives
// the new snapshot on success and the error otherwise.
func (r *Reloader) OnReload(cb func(dataset.Snapshot, error)) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.callback = cb
}

// OnChange sets a function called for every seed file event, before the
// debounced reload runs.
func (r *Reloader) OnChange(cb func(SeedChange)) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.onChange = cb
}

// Start begins watching. The reloader stops when ctx is done or Stop is called.
func (r *Reloader) Start(ctx context.Context) error {
	r.mutex.Lock()
	if r.status.Running {
		r.mutex.Unlock()
		return fmt.Errorf("reloader is already running")
	}
	if err := r.watcher.Start(); err != nil {
		r.mutex.Unlock()
		return fmt.Errorf("error starting watcher: %w", err)
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	r.status.Running = true
	r.mutex.Unlock()

	go r.processEvents(ctx)
	return nil
}

// Stop halts the reloader and waits for it to finish
func (r *Reloader) Stop() {
	r.mutex.Lock()
	if !r.status.Running {
		r.mutex.Unlock()
		r.watcher.Stop()
		return
	}
	r.cancel()
	done := r.done
	r.mutex.Unlock()

	<-done
	r.watcher.Stop()

	r.mutex.Lock()
	r.status.Running = false
	r.mutex.Unlock()
}

// Status returns the current status of the reloader
func (r *Reloader) Status() Status {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.status
}

func (r *Reloader) processEvents(ctx context.Context) {
	defer close(r.done)

	// Created idle; the first seed event arms it.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case change, ok := <-r.watcher.Events():
			if !ok {
				return
			}
			r.mutex.Lock()
			r.status.LastChange = change.Timestamp
			onChange := r.onChange
			r.mutex.Unlock()
			if onChange != nil {
				onChange(change)
			}
			timer.Reset(r.debounce)

		case <-timer.C:
			r.reload(ctx)

		case <-ctx.Done():
			return
		}
	}
}

func (r *Reloader) reload(ctx context.Context) {
	accepted, err := r.store.Reload(ctx, r.load)

	r.mutex.Lock()
	if err != nil {
		r.status.LastError = err
	} else if accepted {
		r.status.LastError = nil
		r.status.LastReload = time.Now()
		r.status.Reloads++
	}
	cb := r.callback
	r.mutex.Unlock()

	if err == nil && !accepted {
		return
	}
	if err == nil {
		log.LogWithFields(log.F("directory", r.status.Dir)).Info("Seed files reloaded")
	}
	if cb != nil {
		if err != nil {
			cb(dataset.Snapshot{}, err)
		} else {
			cb(r.store.Snapshot(), nil)
		}
	}
}
