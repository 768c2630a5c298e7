package slotmap

import (
	"cmp"
	"fmt"
)

// Handle is an opaque reference to an object owned by an Allocator.
//
// Handles are plain values: copy, compare and discard them freely. The zero
// Handle is the null handle and is never valid.
type Handle struct {
	pos uint32 // 1-based slot position; 0 means never assigned
	gen uint32 // slot generation at issuance
}

// Null returns the null handle. It is equal to Handle{}.
func Null() Handle {
	return Handle{}
}

// IsNull reports whether h was never issued by an allocator.
func (h Handle) IsNull() bool {
	return h.pos == 0
}

// Position returns the 1-based slot position, or false for the null handle.
func (h Handle) Position() (int, bool) {
	if h.pos == 0 {
		return 0, false
	}
	return int(h.pos), true
}

// Generation returns the generation the handle was issued with.
func (h Handle) Generation() uint32 {
	return h.gen
}

// Less orders handles by position alone.
func (h Handle) Less(other Handle) bool {
	return h.pos < other.pos
}

// String renders the handle as h(position:generation), or h(null).
func (h Handle) String() string {
	if h.pos == 0 {
		return "h(null)"
	}
	return fmt.Sprintf("h(%d:%d)", h.pos, h.gen)
}

// Pack encodes the handle into one word: position in the high 32 bits,
// generation in the low 32 bits. The null handle packs to a value below 1<<32.
func (h Handle) Pack() uint64 {
	return uint64(h.pos)<<32 | uint64(h.gen)
}

// Unpack is the inverse of Handle.Pack.
func Unpack(v uint64) Handle {
	return Handle{pos: uint32(v >> 32), gen: uint32(v)}
}

// Compare orders handles by position only; the null handle sorts first.
// Handles sharing a position compare equal here even when their generations
// differ, so use == for identity.
//
//	slices.SortFunc(hs, slotmap.Compare)
func Compare(a, b Handle) int {
	return cmp.Compare(a.pos, b.pos)
}
