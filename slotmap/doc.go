// Package slotmap provides a generational handle allocator for homogeneous objects.
//
// # Overview
//
// An Allocator owns a flat table of slots. Each slot holds either a live
// object together with its current generation, or nothing. External code never
// sees slot positions or pointers into the table directly; it holds a Handle,
// which is a plain {position, generation} value. A handle is valid only while
// its slot is occupied and the slot generation equals the handle generation.
//
// Removing an object bumps the generation of its slot, so every handle issued
// for that object becomes permanently stale, even after the position is reused
// by a later Create.
//
// # Allocator API
//
//   - Create(): Allocate a slot holding a fresh value and return its handle
//   - Insert(v): Allocate a slot holding v
//   - Get(h) / GetMut(h): Read or update the object behind a handle
//   - Remove(h): Drop the object and invalidate every copy of h
//   - Contains(h): Non-failing validity probe
//   - Len() / Capacity(): Live count and configured maximum
//
// # Usage Example
//
//	a := slotmap.New(&slotmap.Options[Session]{MaxCapacity: 1024})
//
//	h, err := a.Create()
//	if err != nil {
//	    return err
//	}
//
//	s, err := a.GetMut(h)
//	if err != nil {
//	    return err
//	}
//	s.User = "alice"
//
//	// Later
//	if err := a.Remove(h); err != nil {
//	    return err
//	}
//	_, err = a.Get(h) // errors.Is(err, slotmap.ErrStaleHandle)
//
// # Position Reuse
//
// Freed positions are kept on a LIFO free list and handed out again before the
// table grows. Reuse keeps the generation the slot had after its last removal,
// so a reused position never revalidates an older handle.
//
// # Generation Exhaustion
//
// Generations are 32-bit. A slot whose generation cannot be bumped again is
// retired: it is never placed back on the free list, and every handle that
// ever pointed at it stays stale.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally or wrap the allocator in a Locked.
package slotmap
