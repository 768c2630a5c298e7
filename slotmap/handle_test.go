package slotmap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_Null(t *testing.T) {
	h := Null()
	require.Equal(t, Handle{}, h)
	require.True(t, h.IsNull())

	_, ok := h.Position()
	require.False(t, ok)
	require.Equal(t, "h(null)", h.String())
}

func TestHandle_Accessors(t *testing.T) {
	h := Handle{pos: 3, gen: 7}

	pos, ok := h.Position()
	require.True(t, ok)
	require.Equal(t, 3, pos)
	require.Equal(t, uint32(7), h.Generation())
	require.False(t, h.IsNull())
	require.Equal(t, "h(3:7)", h.String())
}

func TestHandle_Equality(t *testing.T) {
	a := Handle{pos: 1, gen: 0}
	b := Handle{pos: 1, gen: 0}
	c := Handle{pos: 1, gen: 1}

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.False(t, a == c, "generation must participate in equality")

	// usable as a map key
	m := map[Handle]string{a: "first"}
	assert.Equal(t, "first", m[b])
	_, ok := m[c]
	assert.False(t, ok)
}

func TestHandle_OrderingIgnoresGeneration(t *testing.T) {
	tests := []struct {
		name string
		a, b Handle
		want int
	}{
		{"lower position", Handle{pos: 1, gen: 9}, Handle{pos: 2, gen: 0}, -1},
		{"higher position", Handle{pos: 5, gen: 0}, Handle{pos: 2, gen: 3}, 1},
		{"same position different generation", Handle{pos: 4, gen: 1}, Handle{pos: 4, gen: 2}, 0},
		{"null sorts first", Handle{}, Handle{pos: 1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Compare(tt.a, tt.b))
			require.Equal(t, tt.want < 0, tt.a.Less(tt.b))
		})
	}
}

func TestHandle_SortDeterministic(t *testing.T) {
	hs := []Handle{{pos: 3}, {pos: 1, gen: 4}, {}, {pos: 2, gen: 1}}
	slices.SortFunc(hs, Compare)

	require.Equal(t, []Handle{{}, {pos: 1, gen: 4}, {pos: 2, gen: 1}, {pos: 3}}, hs)
}

func TestHandle_PackRoundTrip(t *testing.T) {
	for _, h := range []Handle{{}, {pos: 1}, {pos: 7, gen: 42}, {pos: 0xFFFFFFFF, gen: 0xFFFFFFFF}} {
		require.Equal(t, h, Unpack(h.Pack()), "handle %s", h)
	}

	require.Equal(t, uint64(1)<<32|5, Handle{pos: 1, gen: 5}.Pack())
	require.Less(t, Handle{gen: 99}.Pack(), uint64(1)<<32)
}
