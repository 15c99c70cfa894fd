package drive

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCity(t *testing.T) {
	layout, err := GenerateCity(42, DefaultHalfExtent, DefaultBlockSpacing, nil)
	require.NoError(t, err)

	t.Run("one building per non-road cell", func(t *testing.T) {
		// 13 of the 50 grid lines per axis in [-25, 25) are roads.
		require.Len(t, layout.Buildings, 37*37)
		require.Len(t, layout.Primitives, len(layout.Buildings))
		for _, b := range layout.Buildings {
			require.False(t, IsRoad(b.GridX, b.GridZ, DefaultBlockSpacing), "building on road %d,%d", b.GridX, b.GridZ)
		}
	})

	t.Run("dimensions", func(t *testing.T) {
		s := float64(DefaultBlockSpacing)
		for _, b := range layout.Buildings {
			require.GreaterOrEqual(t, b.Height, 1.0)
			require.True(t, b.Width >= 1 && b.Width < 3, "width %g", b.Width)
			require.True(t, b.Depth >= 1 && b.Depth < 3, "depth %g", b.Depth)
			require.InDelta(t, b.Height/2, b.Position[1], 1e-12)

			ox := b.Position[0] - float64(b.GridX)*s
			oz := b.Position[2] - float64(b.GridZ)*s
			require.True(t, ox >= -1-1e-9 && ox < 1+1e-9, "offset x %g", ox)
			require.True(t, oz >= -1-1e-9 && oz < 1+1e-9, "offset z %g", oz)

			for _, c := range []float64{b.Color.R, b.Color.G, b.Color.B} {
				require.True(t, c >= 0 && c < 0.3, "colour %g", c)
			}
		}
	})

	t.Run("primitives match footprints", func(t *testing.T) {
		shapes := map[Shape]int{}
		for i, b := range layout.Buildings {
			p := layout.Primitives[i]
			shapes[b.Shape]++
			switch b.Shape {
			case ShapeBox:
				require.Equal(t, PrimitiveBox, p.Kind)
				require.InDelta(t, b.Width, p.Box.Max[0]-p.Box.Min[0], 1e-9)
				require.InDelta(t, b.Depth, p.Box.Max[2]-p.Box.Min[2], 1e-9)
				require.InDelta(t, b.Height, p.Box.Max[1]-p.Box.Min[1], 1e-9)
				require.InDelta(t, 0, p.Box.Min[1], 1e-9)
			case ShapeCylinder:
				require.Equal(t, PrimitiveCylinder, p.Kind)
				require.Equal(t, b.Width/2, p.Radius)
				require.Equal(t, b.Height/2, p.HalfHeight)
				require.Equal(t, b.Position, p.Center)
			}
		}
		require.Greater(t, shapes[ShapeBox], 0)
		require.Greater(t, shapes[ShapeCylinder], 0)
	})

	t.Run("deterministic per seed", func(t *testing.T) {
		again, err := GenerateCity(42, DefaultHalfExtent, DefaultBlockSpacing, nil)
		require.NoError(t, err)
		require.Equal(t, layout.Buildings, again.Buildings)

		other, err := GenerateCity(43, DefaultHalfExtent, DefaultBlockSpacing, nil)
		require.NoError(t, err)
		require.NotEqual(t, layout.Buildings, other.Buildings)
	})

	t.Run("bounds", func(t *testing.T) {
		lo, hi := layout.Bounds()
		require.Equal(t, -100.0, lo)
		require.Equal(t, 100.0, hi)
	})
}

func TestGenerateCity_NoiseHeight(t *testing.T) {
	layout, err := GenerateCity(1, 4, 4, func(x, z float64) float64 { return -0.5 })
	require.NoError(t, err)
	require.NotEmpty(t, layout.Buildings)
	for _, b := range layout.Buildings {
		require.Equal(t, 6.0, b.Height)
	}
}

func TestGenerateCity_Invalid(t *testing.T) {
	_, err := GenerateCity(1, 5, 0, nil)
	require.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = GenerateCity(1, -1, 4, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	empty, err := GenerateCity(1, 0, 4, nil)
	require.NoError(t, err)
	require.Empty(t, empty.Buildings)
}

func TestIsRoad(t *testing.T) {
	require.True(t, IsRoad(0, 3, 4))
	require.True(t, IsRoad(-8, 1, 4))
	require.True(t, IsRoad(1, -4, 4))
	require.False(t, IsRoad(-3, 5, 4))
	require.False(t, IsRoad(1, 1, 4))
}

func TestSimplexNoise(t *testing.T) {
	n := SimplexNoise(9)
	for x := -5.0; x < 5; x += 0.37 {
		v := n(x, -x/2)
		require.False(t, math.IsNaN(v))
		require.LessOrEqual(t, math.Abs(v), 1.0)
	}
}
