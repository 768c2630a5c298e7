package slotmap

import (
	"fmt"
	"slices"
)

// freeList is a LIFO stack of reusable slot positions.
// Popping the most recently freed position keeps hot slots hot.
type freeList struct {
	positions []uint32
	max       int // maximum live objects; negative = unbounded
}

func newFreeList(max int) freeList {
	return freeList{max: max}
}

// push records pos as reusable.
func (fl *freeList) push(pos uint32) {
	// Compile-time toggle: the scan is O(n) per push.
	if debugSlots && slices.Contains(fl.positions, pos) {
		panic(fmt.Sprintf("slotmap: position %d pushed to free list twice", pos))
	}
	fl.positions = append(fl.positions, pos)
}

// pop returns the most recently freed position.
func (fl *freeList) pop() (uint32, bool) {
	n := len(fl.positions)
	if n == 0 {
		return 0, false
	}
	pos := fl.positions[n-1]
	fl.positions = fl.positions[:n-1]
	return pos, true
}

// canGrow reports whether a brand-new position may be appended while inUse
// objects are live.
func (fl *freeList) canGrow(inUse int) bool {
	return fl.max < 0 || inUse < fl.max
}

func (fl *freeList) len() int {
	return len(fl.positions)
}
