package slotmap

// Stats is a snapshot of allocator counters.
type Stats struct {
	Creates         int // Successful Create/Insert calls
	Reused          int // Creates served from the free list
	Appended        int // Creates that grew the slot table
	Removes         int // Successful Remove calls (Clear counts each object)
	StaleRemoves    int // Remove calls rejected as stale or invalid
	DoubleFrees     int // Subset of StaleRemoves that targeted an already-freed object
	CapacityRejects int // Create/Insert calls rejected with ErrCapacityExceeded
	Retired         int // Slots whose generation was exhausted

	// Gauges at snapshot time
	Live  int // Occupied slots
	Free  int // Positions waiting on the free list
	Slots int // Slot table length (high-water mark)
}

// counters holds the monotonic part of Stats.
type counters struct {
	creates         int
	reused          int
	appended        int
	removes         int
	staleRemoves    int
	doubleFrees     int
	capacityRejects int
	retired         int
}
