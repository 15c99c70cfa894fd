package drive

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestSpawner_RejectionSampling(t *testing.T) {
	layout, err := GenerateCity(5, DefaultHalfExtent, DefaultBlockSpacing, nil)
	require.NoError(t, err)
	idx := NewCollisionIndex(layout.Primitives, true)
	_, extent := layout.Bounds()
	sp := NewSpawner(11, idx, extent, MaxSpawnAttempts)

	for i := 0; i < 1000; i++ {
		pos, err := sp.Sample()
		require.NoError(t, err)
		require.Equal(t, ItemHeight, pos[1])
		require.True(t, pos[0] >= -extent && pos[0] < extent)
		require.True(t, pos[2] >= -extent && pos[2] < extent)

		box := ItemBounds(pos)
		require.False(t, idx.IntersectsBox(box), "spawn %d overlaps a box", i)
		require.False(t, idx.IntersectsCylinderRegion(pos, 0, 0), "spawn %d inside a cylinder", i)
	}
}

func TestSpawner_NoFreeSpot(t *testing.T) {
	idx := NewCollisionIndex([]Primitive{
		boxPrim(mgl64.Vec3{-200, -1, -200}, mgl64.Vec3{200, 10, 200}),
	}, false)
	sp := NewSpawner(1, idx, 100, 10)

	_, err := sp.Sample()
	require.ErrorIs(t, err, ErrNoFreeSpot)
}

func TestItemBounds(t *testing.T) {
	b := ItemBounds(mgl64.Vec3{10, ItemHeight, 10})
	require.InDelta(t, 0, b.Min[1], 1e-12)
	require.InDelta(t, 0.3, b.Max[1], 1e-12)
	require.InDelta(t, 9.85, b.Min[0], 1e-12)
	require.InDelta(t, 10.15, b.Max[2], 1e-12)

	p := Item{Position: mgl64.Vec3{10, ItemHeight, 10}}.PickupBounds()
	require.InDelta(t, 9.7, p.Min[0], 1e-12)
	require.InDelta(t, 10.3, p.Max[2], 1e-12)
	require.InDelta(t, 0.6, p.Max[1]-p.Min[1], 1e-12)
}

func TestFormatElapsed(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{1.234, "1.23"},
		{2, "2.00"},
		{0.005, "0.01"},
		{-3, "0.00"},
		{61.999, "62.00"},
	} {
		require.Equal(t, tc.want, FormatElapsed(tc.in))
	}
}
