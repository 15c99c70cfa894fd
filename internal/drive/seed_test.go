package drive

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	s, ok := ParseSeed("42")
	require.True(t, ok)
	require.Equal(t, uint64(42), s)

	s, ok = ParseSeed(" downtown ")
	require.True(t, ok)
	require.Equal(t, xxhash.Sum64String("downtown"), s)

	_, ok = ParseSeed("  ")
	require.False(t, ok)
}
