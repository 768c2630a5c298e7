package slotmap

import "sync"

// Locked guards one Allocator with a read/write mutex so it can be shared
// between goroutines. Object access goes through closures so no pointer into
// the slot table escapes the lock.
type Locked[T any] struct {
	mu sync.RWMutex
	a  *Allocator[T]
}

// NewLocked wraps a new allocator built from opts (which may be nil).
func NewLocked[T any](opts *Options[T]) *Locked[T] {
	return &Locked[T]{a: New(opts)}
}

// Create is Allocator.Create under the write lock.
func (l *Locked[T]) Create() (Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Create()
}

// Insert is Allocator.Insert under the write lock.
func (l *Locked[T]) Insert(v T) (Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Insert(v)
}

// Get returns a copy of the object behind h.
func (l *Locked[T]) Get(h Handle) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.a.Get(h)
}

// Update calls fn with the object behind h while holding the write lock.
// fn must not retain the pointer.
func (l *Locked[T]) Update(h Handle, fn func(*T)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, err := l.a.GetMut(h)
	if err != nil {
		return err
	}
	fn(v)
	return nil
}

// Remove is Allocator.Remove under the write lock.
func (l *Locked[T]) Remove(h Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Remove(h)
}

// Contains is Allocator.Contains under the read lock.
func (l *Locked[T]) Contains(h Handle) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.a.Contains(h)
}

// Len is Allocator.Len under the read lock.
func (l *Locked[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.a.Len()
}

// Capacity is Allocator.Capacity.
func (l *Locked[T]) Capacity() (int, bool) {
	// max is fixed at construction
	return l.a.Capacity()
}

// Stats is Allocator.Stats under the read lock.
func (l *Locked[T]) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.a.Stats()
}

// Do runs fn with exclusive access to the underlying allocator, for batches
// that must not interleave with other callers. fn must not retain a.
func (l *Locked[T]) Do(fn func(a *Allocator[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.a)
}
