package slotmap

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded indicates that no free slot exists and the allocator
	// already holds its configured maximum of live objects.
	ErrCapacityExceeded = errors.New("slotmap: capacity exceeded")

	// ErrStaleHandle indicates a handle that is null, out of range, or whose
	// generation no longer matches its slot.
	ErrStaleHandle = errors.New("slotmap: stale or invalid handle")

	// ErrDoubleFree indicates removal of an object that was already removed.
	// It wraps ErrStaleHandle, so errors.Is(err, ErrStaleHandle) also holds.
	ErrDoubleFree = fmt.Errorf("%w: slot already free", ErrStaleHandle)
)
