package kitutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSyncMapLoadOrStore checks that the first stored value wins and that
// later calls observe it.
func TestSyncMapLoadOrStore(t *testing.T) {
	t.Parallel()

	var m SyncMap[string, *int]

	first, second := 1, 2
	got, loaded := m.LoadOrStore("a", &first)
	require.False(t, loaded)
	require.Same(t, &first, got)

	got, loaded = m.LoadOrStore("a", &second)
	require.True(t, loaded)
	require.Same(t, &first, got)

	v, ok := m.Load("a")
	require.True(t, ok)
	require.Same(t, &first, v)

	_, ok = m.Load("b")
	require.False(t, ok)

	m.Store("b", &second)
	require.Equal(t, 2, m.Len())

	// Overwriting a key doesn't change the size.
	m.Store("b", &first)
	require.Equal(t, 2, m.Len())

	v, ok = m.Load("b")
	require.True(t, ok)
	require.Same(t, &first, v)
}

// TestMap checks the slice mapping helper.
func TestMap(t *testing.T) {
	t.Parallel()

	out := Map([]int{1, 2, 3}, func(i int) string {
		return string(rune('a' + i - 1))
	})
	require.Equal(t, []string{"a", "b", "c"}, out)
}
