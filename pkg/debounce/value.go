package debounce

import (
	"sync"
	"time"
)

// Value holds a debounced copy of an input. Get only ever returns the
// initial value or a value that survived a full quiet interval.
type Value[T any] struct {
	mu       sync.RWMutex
	current  T
	input    *Debouncer[T]
	onChange func(T)
}

// NewValue creates a debounced value. onChange, if non-nil, is called after
// every update with the new value.
func NewValue[T any](initial T, interval time.Duration, onChange func(T)) *Value[T] {
	v := &Value[T]{
		current:  initial,
		onChange: onChange,
	}
	v.input = New(interval, v.apply)
	return v
}

// Set feeds a new input value.
func (v *Value[T]) Set(in T) {
	v.input.Set(in)
}

// Get returns the current debounced value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Reset cancels any pending input and sets the debounced value at once.
func (v *Value[T]) Reset(to T) {
	v.input.Stop()
	v.apply(to)
}

// Flush applies a pending input immediately.
func (v *Value[T]) Flush() bool {
	return v.input.Flush()
}

// Pending reports whether an input is waiting out its interval.
func (v *Value[T]) Pending() bool {
	return v.input.Pending()
}

// Stop cancels any pending input. The value stays usable.
func (v *Value[T]) Stop() {
	v.input.Stop()
}

func (v *Value[T]) apply(in T) {
	v.mu.Lock()
	v.current = in
	v.mu.Unlock()

	if v.onChange != nil {
		v.onChange(in)
	}
}
