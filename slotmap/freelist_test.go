package slotmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreeList_LIFO(t *testing.T) {
	fl := newFreeList(-1)

	_, ok := fl.pop()
	require.False(t, ok, "empty list must not yield a position")

	fl.push(1)
	fl.push(4)
	fl.push(2)
	require.Equal(t, 3, fl.len())

	for _, want := range []uint32{2, 4, 1} {
		got, ok := fl.pop()
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok = fl.pop()
	require.False(t, ok)
}

func TestFreeList_CanGrow(t *testing.T) {
	unbounded := newFreeList(-1)
	require.True(t, unbounded.canGrow(0))
	require.True(t, unbounded.canGrow(1<<30))

	zero := newFreeList(0)
	require.False(t, zero.canGrow(0))

	bounded := newFreeList(2)
	require.True(t, bounded.canGrow(0))
	require.True(t, bounded.canGrow(1))
	require.False(t, bounded.canGrow(2))
}
