// Package debounce delays propagation of a rapidly changing value until it
// has been quiet for a fixed interval.
package debounce

import (
	"sync"
	"time"
)

// Debouncer emits the last value passed to Set once no further Set call
// has arrived for the configured interval.
//
// A Set before the interval elapses supersedes the pending value and
// restarts the interval. Stop cancels the pending emit; the Debouncer can
// be reused afterwards. emit runs on the timer goroutine, never under the
// Debouncer's lock.
type Debouncer[T any] struct {
	mu       sync.Mutex
	interval time.Duration
	emit     func(T)

	timer   *time.Timer
	pending T
	armed   bool
	gen     uint64
}

// New creates a Debouncer. A non-positive interval emits synchronously on Set.
func New[T any](interval time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		interval: interval,
		emit:     emit,
	}
}

// Set records v as the pending value and (re)starts the quiet interval.
func (d *Debouncer[T]) Set(v T) {
	if d.interval <= 0 {
		d.emit(v)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = v
	d.armed = true

	gen := d.gen
	d.timer = time.AfterFunc(d.interval, func() { d.fire(gen) })
}

// Pending reports whether a value is waiting to be emitted.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Flush emits the pending value immediately, if any. It reports whether a
// value was emitted.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return false
	}
	v := d.take()
	d.mu.Unlock()

	d.emit(v)
	return true
}

// Stop cancels the pending emit, if any.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.take()
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// A newer Set, a Flush or a Stop already consumed this generation.
	if gen != d.gen || !d.armed {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.emit(v)
}

// take disarms the debouncer and returns the pending value. Callers hold mu.
func (d *Debouncer[T]) take() T {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.pending
	var zero T
	d.pending = zero
	d.armed = false
	d.gen++
	return v
}
