package slotmap

import "math"

// maxPositions is the largest table length a uint32 position can address.
const maxPositions = math.MaxUint32

// slot is one fixed storage location. value is the zero T while free.
type slot[T any] struct {
	gen      uint32
	occupied bool
	retired  bool // generation exhausted, never reused
	value    T
}

// slotTable is the backing store. Its length is the high-water mark of
// positions ever allocated; it never shrinks.
type slotTable[T any] struct {
	slots []slot[T]
}

// at returns the slot for a 1-based position, or nil when pos is out of range.
func (t *slotTable[T]) at(pos uint32) *slot[T] {
	if pos == 0 || int(pos) > len(t.slots) {
		return nil
	}
	return &t.slots[pos-1]
}

// lookup returns the slot a handle refers to if, and only if, the handle is
// currently valid.
func (t *slotTable[T]) lookup(h Handle) *slot[T] {
	s := t.at(h.pos)
	if s == nil || !s.occupied || s.gen != h.gen {
		return nil
	}
	return s
}

// grow appends an empty slot with generation 0 and returns its position.
func (t *slotTable[T]) grow() (uint32, bool) {
	if uint64(len(t.slots)) >= maxPositions {
		return 0, false
	}
	t.slots = append(t.slots, slot[T]{})
	return uint32(len(t.slots)), true
}

func (t *slotTable[T]) len() int {
	return len(t.slots)
}
