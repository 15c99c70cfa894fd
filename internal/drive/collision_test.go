package drive

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxPrim(min, max mgl64.Vec3) Primitive {
	return Primitive{Kind: PrimitiveBox, Box: AABB{Min: min, Max: max}}
}

func cylPrim(x, z, radius, height float64) Primitive {
	return Primitive{
		Kind:       PrimitiveCylinder,
		Center:     mgl64.Vec3{x, height / 2, z},
		Radius:     radius,
		HalfHeight: height / 2,
	}
}

func TestAABB(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	t.Run("Intersects", func(t *testing.T) {
		assert.True(t, a.Intersects(AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{2, 2, 2}}))
		assert.False(t, a.Intersects(AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}), "touching faces")
		assert.False(t, a.Intersects(AABB{Min: mgl64.Vec3{0, 2, 0}, Max: mgl64.Vec3{1, 3, 1}}))
	})

	t.Run("Shrink", func(t *testing.T) {
		s := a.Shrink(0.1)
		assert.InDelta(t, 0.1, s.Min[0], 1e-12)
		assert.InDelta(t, 0.9, s.Max[2], 1e-12)

		over := a.Shrink(5)
		assert.Equal(t, a.Center(), over.Min)
		assert.Equal(t, a.Center(), over.Max)
	})
}

func TestCollisionIndex_Queries(t *testing.T) {
	prims := []Primitive{
		boxPrim(mgl64.Vec3{4, 0, 4}, mgl64.Vec3{6, 5, 6}),
		cylPrim(-5, -5, 1, 4),
	}
	for _, broad := range []bool{false, true} {
		idx := NewCollisionIndex(prims, broad)

		t.Run("box inside box primitive", func(t *testing.T) {
			inside := BoxAround(mgl64.Vec3{5, 1, 5}, mgl64.Vec3{0.3, 0.3, 0.3})
			require.True(t, idx.IntersectsBox(inside))
			require.True(t, idx.QueryAny(PointProbe(inside)))
		})

		t.Run("box outside every primitive", func(t *testing.T) {
			outside := BoxAround(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0.3, 0.3, 0.3})
			require.False(t, idx.IntersectsBox(outside))
			require.False(t, idx.QueryAny(PointProbe(outside)))
		})

		t.Run("cylinder region", func(t *testing.T) {
			require.True(t, idx.IntersectsCylinderRegion(mgl64.Vec3{-5.5, 1, -5}, 0, 0))
			require.False(t, idx.IntersectsCylinderRegion(mgl64.Vec3{-6.5, 1, -5}, 0, 0))
			require.True(t, idx.IntersectsCylinderRegion(mgl64.Vec3{-6.5, 1, -5}, 0.6, 0))
			require.False(t, idx.IntersectsCylinderRegion(mgl64.Vec3{-5, 4.5, -5}, 0, 0), "above the roof")
			require.False(t, idx.IntersectsBox(BoxAround(mgl64.Vec3{-5, 1, -5}, mgl64.Vec3{0.1, 0.1, 0.1})), "box test ignores cylinders")

			near := BoxAround(mgl64.Vec3{-6.2, 1, -5}, mgl64.Vec3{0.3, 0.3, 0.3})
			require.False(t, idx.QueryAny(PointProbe(near)))
			require.True(t, idx.QueryAny(Probe{Box: near, Radius: 0.3}))
		})
	}
}

func TestCollisionIndex_CylinderVertical(t *testing.T) {
	// Height 1: centre y 0.5, half-height 0.5.
	idx := NewCollisionIndex([]Primitive{cylPrim(0, 0, 1, 1)}, false)

	require.True(t, idx.IntersectsCylinderRegion(mgl64.Vec3{0, 0.9, 0}, 0, 0.3))
	require.False(t, idx.IntersectsCylinderRegion(mgl64.Vec3{0, 1.2, 0}, 0, 0.3), "above the roof")
	require.False(t, idx.IntersectsCylinderRegion(mgl64.Vec3{0, 1.2, 0}, 0.5, 5), "region height does not widen the test")
	require.False(t, idx.IntersectsCylinderRegion(mgl64.Vec3{0, 1, 0}, 0, 0), "on the roof")

	above := BoxAround(mgl64.Vec3{0, 1.2, 0}, mgl64.Vec3{0.3, 0.3, 0.3})
	require.False(t, idx.QueryAny(Probe{Box: above, Radius: 0.3}))
	level := BoxAround(mgl64.Vec3{0, 0.4, 0}, mgl64.Vec3{0.3, 0.3, 0.3})
	require.True(t, idx.QueryAny(Probe{Box: level, Radius: 0.3}))
}

func TestCollisionIndex_BroadphaseMatchesLinear(t *testing.T) {
	layout, err := GenerateCity(7, 10, 4, nil)
	require.NoError(t, err)

	linear := NewCollisionIndex(layout.Primitives, false)
	tree := NewCollisionIndex(layout.Primitives, true)
	require.Equal(t, linear.Len(), tree.Len())

	rng := NewRand(3)
	hits := 0
	for i := 0; i < 3000; i++ {
		c := mgl64.Vec3{rng.RangeF(-45, 45), rng.RangeF(0, 3), rng.RangeF(-45, 45)}
		h := mgl64.Vec3{rng.RangeF(0.05, 1), rng.RangeF(0.05, 1), rng.RangeF(0.05, 1)}
		probe := Probe{Box: BoxAround(c, h), Radius: rng.RangeF(0, 0.5)}

		li, lok := linear.FirstHit(probe)
		ti, tok := tree.FirstHit(probe)
		require.Equal(t, lok, tok, "probe %d", i)
		require.Equal(t, li, ti, "probe %d", i)
		if lok {
			hits++
		}
	}
	require.Greater(t, hits, 0)
	require.Less(t, hits, 3000)
}

func TestCollisionIndex_Empty(t *testing.T) {
	idx := NewCollisionIndex(nil, true)
	require.False(t, idx.QueryAny(PointProbe(ItemBounds(mgl64.Vec3{}))))
	require.Zero(t, idx.Len())
}
