package drive

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

// aheadRotated places a target 10 units from the origin, rotated by a
// toward the driver's left from a vehicle facing +Z.
func aheadRotated(a float64) mgl64.Vec3 {
	return mgl64.Vec3{10 * math.Sin(a), 0, 10 * math.Cos(a)}
}

func TestCompassDirection(t *testing.T) {
	p := Pose{}

	t.Run("straight ahead is north", func(t *testing.T) {
		require.Equal(t, North, CompassDirection(p, aheadRotated(0)))
		require.InDelta(t, 0, Bearing(p, aheadRotated(0)), 1e-12)
	})

	t.Run("rotating the item to the left", func(t *testing.T) {
		require.Equal(t, NorthWest, CompassDirection(p, aheadRotated(math.Pi/4)))
		require.Equal(t, West, CompassDirection(p, aheadRotated(math.Pi/2)))
		require.InDelta(t, math.Pi/2, Bearing(p, aheadRotated(math.Pi/2)), 1e-12)
	})

	t.Run("all sectors", func(t *testing.T) {
		want := []Direction{North, NorthWest, West, SouthWest, South, SouthEast, East, NorthEast}
		for k, d := range want {
			for _, jitter := range []float64{-0.3, 0, 0.3} {
				a := float64(k)*math.Pi/4 + jitter
				require.Equal(t, d, CompassDirection(p, aheadRotated(a)), "angle %g", a)
			}
		}
	})

	t.Run("follows the heading", func(t *testing.T) {
		yawed := Pose{Yaw: math.Pi / 4}
		require.Equal(t, North, CompassDirection(yawed, mgl64.Vec3{10, 0.15, 10}))
		require.Equal(t, South, CompassDirection(yawed, mgl64.Vec3{-10, 0.15, -10}))
		require.Equal(t, West, CompassDirection(yawed, mgl64.Vec3{10, 0, -10}))
		require.Equal(t, East, CompassDirection(yawed, mgl64.Vec3{-10, 0, 10}))
	})
}

func TestSectorOf(t *testing.T) {
	require.Equal(t, North, SectorOf(0))
	require.Equal(t, North, SectorOf(2*math.Pi-0.1))
	require.Equal(t, North, SectorOf(-0.1))
	require.Equal(t, South, SectorOf(math.Pi))
	require.Equal(t, NorthWest, SectorOf(math.Pi/8+1e-9))
	require.Equal(t, North, SectorOf(math.Pi/8-1e-9))
}

func TestDirection_Strings(t *testing.T) {
	require.Equal(t, "N", North.String())
	require.Equal(t, "↑", North.Glyph())
	require.Equal(t, "W", West.String())
	require.Equal(t, "←", West.Glyph())
	require.Equal(t, "NE", NorthEast.String())
	require.Equal(t, "↗", NorthEast.Glyph())
}
