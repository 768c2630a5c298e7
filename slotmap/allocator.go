package slotmap

import (
	"fmt"
	"iter"
	"log/slog"
	"math"

	"github.com/joshuapare/slotkit/internal/logger"
)

// Compile-time toggle for O(n) free-list consistency checks.
const debugSlots = false

// Allocator owns a collection of T and hands out generational handles to it.
//
// NOT thread-safe. Only one goroutine should use it at a time; see Locked.
type Allocator[T any] struct {
	table    slotTable[T]
	free     freeList
	live     int
	newValue func() T
	lg       *slog.Logger // nil = logger.L
	stats    counters
}

// New creates an allocator. opts may be nil.
func New[T any](opts *Options[T]) *Allocator[T] {
	if opts == nil {
		opts = &Options[T]{}
	}

	maxCap := -1
	if opts.MaxCapacity > 0 || opts.Bounded {
		maxCap = max(opts.MaxCapacity, 0)
	}

	return &Allocator[T]{
		free:     newFreeList(maxCap),
		newValue: opts.New,
		lg:       opts.Logger,
	}
}

// NewWithCapacity creates an allocator that holds at most maxCapacity live
// objects. Zero is a real limit that rejects every create; a negative
// maxCapacity means unbounded.
func NewWithCapacity[T any](maxCapacity int) *Allocator[T] {
	return New(&Options[T]{MaxCapacity: maxCapacity, Bounded: maxCapacity >= 0})
}

// Create allocates a slot holding a fresh value (Options.New, or the zero T).
func (a *Allocator[T]) Create() (Handle, error) {
	pos, s, err := a.acquire()
	if err != nil {
		return Handle{}, err
	}
	if a.newValue != nil {
		s.value = a.newValue()
	}
	return a.occupy(pos, s), nil
}

// Insert allocates a slot holding v.
func (a *Allocator[T]) Insert(v T) (Handle, error) {
	pos, s, err := a.acquire()
	if err != nil {
		return Handle{}, err
	}
	s.value = v
	return a.occupy(pos, s), nil
}

// Get returns a copy of the object behind h.
func (a *Allocator[T]) Get(h Handle) (T, error) {
	s := a.table.lookup(h)
	if s == nil {
		var zero T
		return zero, fmt.Errorf("get %s: %w", h, ErrStaleHandle)
	}
	return s.value, nil
}

// GetMut returns a pointer to the object behind h. The pointer is only valid
// until the next Create, Insert, Remove or Clear on this allocator.
func (a *Allocator[T]) GetMut(h Handle) (*T, error) {
	s := a.table.lookup(h)
	if s == nil {
		return nil, fmt.Errorf("get %s: %w", h, ErrStaleHandle)
	}
	return &s.value, nil
}

// Contains reports whether h currently refers to a live object.
func (a *Allocator[T]) Contains(h Handle) bool {
	return a.table.lookup(h) != nil
}

// Remove drops the object behind h and invalidates h and every copy of it.
//
// Removing an object twice returns ErrDoubleFree, which also matches
// ErrStaleHandle. Neither failure changes allocator state.
func (a *Allocator[T]) Remove(h Handle) error {
	s := a.table.at(h.pos)
	if s == nil || !s.occupied || s.gen != h.gen {
		a.stats.staleRemoves++
		if a.isDoubleFree(s, h) {
			a.stats.doubleFrees++
			a.log().Warn("double free", "handle", h.String())
			return fmt.Errorf("remove %s: %w", h, ErrDoubleFree)
		}
		a.log().Warn("stale remove", "handle", h.String())
		return fmt.Errorf("remove %s: %w", h, ErrStaleHandle)
	}

	a.release(h.pos, s)
	a.live--
	a.stats.removes++
	return nil
}

// Clear removes every live object. All outstanding handles become stale and
// positions are reused lowest first.
func (a *Allocator[T]) Clear() {
	for i := len(a.table.slots) - 1; i >= 0; i-- {
		s := &a.table.slots[i]
		if !s.occupied {
			continue
		}
		a.release(uint32(i+1), s)
		a.stats.removes++
	}
	a.live = 0
}

// Len returns the number of live objects.
func (a *Allocator[T]) Len() int {
	return a.live
}

// Capacity returns the configured maximum, or false when unbounded.
func (a *Allocator[T]) Capacity() (int, bool) {
	if a.free.max < 0 {
		return 0, false
	}
	return a.free.max, true
}

// All yields every live object in ascending position order. The allocator
// must not be modified through Create, Insert, Remove or Clear while iterating.
func (a *Allocator[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range a.table.slots {
			s := &a.table.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Handle{pos: uint32(i + 1), gen: s.gen}, &s.value) {
				return
			}
		}
	}
}

// Handles returns the handles of all live objects in ascending position order.
func (a *Allocator[T]) Handles() []Handle {
	hs := make([]Handle, 0, a.live)
	for h := range a.All() {
		hs = append(hs, h)
	}
	return hs
}

// Stats returns a snapshot of the allocator counters.
func (a *Allocator[T]) Stats() Stats {
	return Stats{
		Creates:         a.stats.creates,
		Reused:          a.stats.reused,
		Appended:        a.stats.appended,
		Removes:         a.stats.removes,
		StaleRemoves:    a.stats.staleRemoves,
		DoubleFrees:     a.stats.doubleFrees,
		CapacityRejects: a.stats.capacityRejects,
		Retired:         a.stats.retired,
		Live:            a.live,
		Free:            a.free.len(),
		Slots:           a.table.len(),
	}
}

// acquire picks a free slot, reusing the most recently freed position before
// growing the table. It does not mark the slot occupied.
func (a *Allocator[T]) acquire() (uint32, *slot[T], error) {
	if !a.free.canGrow(a.live) {
		a.stats.capacityRejects++
		a.log().Debug("capacity exceeded", "live", a.live, "max", a.free.max)
		return 0, nil, ErrCapacityExceeded
	}

	if pos, ok := a.free.pop(); ok {
		s := a.table.at(pos)
		if s == nil || s.occupied || s.retired {
			panic(fmt.Sprintf("slotmap: free list yielded unusable position %d", pos))
		}
		a.stats.reused++
		a.log().Debug("slot reused", "pos", pos, "gen", s.gen)
		return pos, s, nil
	}

	pos, ok := a.table.grow()
	if !ok {
		a.stats.capacityRejects++
		return 0, nil, fmt.Errorf("%w: position space exhausted", ErrCapacityExceeded)
	}
	a.stats.appended++
	a.log().Debug("slot appended", "pos", pos)
	return pos, a.table.at(pos), nil
}

func (a *Allocator[T]) occupy(pos uint32, s *slot[T]) Handle {
	s.occupied = true
	a.live++
	a.stats.creates++
	return Handle{pos: pos, gen: s.gen}
}

// release frees an occupied slot: the value is dropped, the generation bumped
// and the position pushed for reuse. A slot at the last generation is retired.
func (a *Allocator[T]) release(pos uint32, s *slot[T]) {
	var zero T
	s.value = zero
	s.occupied = false

	if s.gen == math.MaxUint32 {
		s.retired = true
		a.stats.retired++
		a.log().Warn("slot retired", "pos", pos)
		return
	}
	s.gen++
	a.free.push(pos)
}

// isDoubleFree reports whether h was the last occupant of an already-free slot.
func (a *Allocator[T]) isDoubleFree(s *slot[T], h Handle) bool {
	if s == nil || s.occupied {
		return false
	}
	if s.retired {
		return s.gen == h.gen
	}
	return s.gen == h.gen+1
}

func (a *Allocator[T]) log() *slog.Logger {
	if a.lg != nil {
		return a.lg
	}
	return logger.L
}
