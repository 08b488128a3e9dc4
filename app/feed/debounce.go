package feed

import (
	"sync"
	"time"
)

// Debouncer models search input as a delayed-commit value: the raw value
// updates immediately on every keystroke, the committed value only after a
// quiet period with no further input. The pending commit is a cancellable
// scheduled callback, never a sleep in the fetch path.
type Debouncer struct {
	mu        sync.Mutex
	delay     time.Duration
	timer     *time.Timer
	raw       string
	committed string
	commit    func(string)
	stopped   bool
}

func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	return &Debouncer{delay: delay, commit: commit}
}

// Update records a new raw value and restarts the quiet period.
func (d *Debouncer) Update(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.raw = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	value := d.raw
	changed := value != d.committed
	d.committed = value
	d.mu.Unlock()

	if changed {
		d.commit(value)
	}
}

func (d *Debouncer) Raw() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

func (d *Debouncer) Committed() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.committed
}

// Stop cancels any pending commit. Used on teardown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
