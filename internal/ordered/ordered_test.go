package ordered

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	require.Equal(t, []string{"a", "b", "c"}, Keys(m))

	var seen []int
	Range(m, func(_ string, v int) {
		seen = append(seen, v)
	})
	require.Equal(t, []int{1, 2, 3}, seen)

	require.Empty(t, Keys(map[string]bool{}))
}
