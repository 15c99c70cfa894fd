package drive

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min, Max mgl64.Vec3
}

// BoxAround returns the box with the given centre and half extents.
func BoxAround(center, half mgl64.Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Intersects reports strict overlap; touching faces do not count.
func (b AABB) Intersects(o AABB) bool {
	return b.Min[0] < o.Max[0] && b.Max[0] > o.Min[0] &&
		b.Min[1] < o.Max[1] && b.Max[1] > o.Min[1] &&
		b.Min[2] < o.Max[2] && b.Max[2] > o.Min[2]
}

func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) HalfExtents() mgl64.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Shrink moves every face inward by m, never past the centre.
func (b AABB) Shrink(m float64) AABB {
	c := b.Center()
	h := b.HalfExtents()
	for i := range h {
		h[i] = math.Max(0, h[i]-m)
	}
	return BoxAround(c, h)
}

type PrimitiveKind uint8

const (
	PrimitiveBox PrimitiveKind = iota
	PrimitiveCylinder
)

// Primitive is a collision proxy for one building. Box uses Box; Cylinder
// uses Center (x, centre height, z), Radius and HalfHeight.
type Primitive struct {
	Kind       PrimitiveKind
	Box        AABB
	Center     mgl64.Vec3
	Radius     float64
	HalfHeight float64
}

// footprint returns the horizontal extent as (minX, minZ, maxX, maxZ).
func (p Primitive) footprint() (float64, float64, float64, float64) {
	if p.Kind == PrimitiveCylinder {
		return p.Center[0] - p.Radius, p.Center[2] - p.Radius, p.Center[0] + p.Radius, p.Center[2] + p.Radius
	}
	return p.Box.Min[0], p.Box.Min[2], p.Box.Max[0], p.Box.Max[2]
}

// Probe is a query volume. Box is tested against box primitives; the box
// centre with Radius is tested against cylinders.
type Probe struct {
	Box    AABB
	Radius float64
}

// PointProbe treats the box as a point against cylinders.
func PointProbe(b AABB) Probe {
	return Probe{Box: b}
}

func (p Probe) hits(prim *Primitive) bool {
	if prim.Kind == PrimitiveCylinder {
		return cylinderHit(prim, p.Box.Center(), p.Radius)
	}
	return prim.Box.Intersects(p.Box)
}

// cylinderHit compares centres: horizontally against the summed radii,
// vertically against the cylinder's half-height alone.
func cylinderHit(c *Primitive, point mgl64.Vec3, radius float64) bool {
	dx := point[0] - c.Center[0]
	dz := point[2] - c.Center[2]
	if math.Hypot(dx, dz) >= c.Radius+radius {
		return false
	}
	return math.Abs(point[1]-c.Center[1]) < c.HalfHeight
}

// indexedPrimitive is the broadphase entry for primitive i.
type indexedPrimitive struct {
	i    int
	rect rtreego.Rect
}

func (ip *indexedPrimitive) Bounds() rtreego.Rect { return ip.rect }

// broadphaseEps widens query rectangles so touching footprints remain candidates.
const broadphaseEps = 1e-6

// CollisionIndex holds the immutable primitive list of a city.
type CollisionIndex struct {
	prims []Primitive
	tree  *rtreego.Rtree
}

// NewCollisionIndex builds an index; with broadphase set, QueryAny narrows
// candidates with an R-tree over horizontal footprints first.
func NewCollisionIndex(prims []Primitive, broadphase bool) *CollisionIndex {
	ci := &CollisionIndex{prims: prims}
	if !broadphase || len(prims) == 0 {
		return ci
	}
	objs := make([]rtreego.Spatial, 0, len(prims))
	for i := range prims {
		x0, z0, x1, z1 := prims[i].footprint()
		rect, err := footprintRect(x0, z0, x1, z1)
		if err != nil {
			// Degenerate footprint; fall back to linear scans.
			return &CollisionIndex{prims: prims}
		}
		objs = append(objs, &indexedPrimitive{i: i, rect: rect})
	}
	ci.tree = rtreego.NewTree(2, TreeMinChildren, TreeMaxChildren, objs...)
	return ci
}

func footprintRect(x0, z0, x1, z1 float64) (rtreego.Rect, error) {
	return rtreego.NewRectFromPoints(
		rtreego.Point{x0 - broadphaseEps, z0 - broadphaseEps},
		rtreego.Point{x1 + broadphaseEps, z1 + broadphaseEps},
	)
}

func (ci *CollisionIndex) Len() int { return len(ci.prims) }

// IntersectsBox tests box against every box primitive.
func (ci *CollisionIndex) IntersectsBox(box AABB) bool {
	for i := range ci.prims {
		p := &ci.prims[i]
		if p.Kind == PrimitiveBox && p.Box.Intersects(box) {
			return true
		}
	}
	return false
}

// IntersectsCylinderRegion tests a region around point against every
// cylinder primitive. halfHeight is the region's own vertical extent and does
// not widen the test: a point above a roof misses however tall the region.
func (ci *CollisionIndex) IntersectsCylinderRegion(point mgl64.Vec3, radius, halfHeight float64) bool {
	for i := range ci.prims {
		p := &ci.prims[i]
		if p.Kind == PrimitiveCylinder && cylinderHit(p, point, radius) {
			return true
		}
	}
	return false
}

// QueryAny reports whether the probe hits any primitive.
func (ci *CollisionIndex) QueryAny(probe Probe) bool {
	_, ok := ci.FirstHit(probe)
	return ok
}

// FirstHit returns the lowest-indexed primitive hit by the probe. The
// broadphase and linear paths return the same answer.
func (ci *CollisionIndex) FirstHit(probe Probe) (int, bool) {
	if ci.tree == nil {
		return ci.firstHitLinear(probe)
	}
	x0, z0 := probe.Box.Min[0]-probe.Radius, probe.Box.Min[2]-probe.Radius
	x1, z1 := probe.Box.Max[0]+probe.Radius, probe.Box.Max[2]+probe.Radius
	rect, err := footprintRect(x0, z0, x1, z1)
	if err != nil {
		return ci.firstHitLinear(probe)
	}
	found := ci.tree.SearchIntersect(rect)
	if len(found) == 0 {
		return -1, false
	}
	idx := make([]int, 0, len(found))
	for _, s := range found {
		idx = append(idx, s.(*indexedPrimitive).i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		if probe.hits(&ci.prims[i]) {
			return i, true
		}
	}
	return -1, false
}

func (ci *CollisionIndex) firstHitLinear(probe Probe) (int, bool) {
	for i := range ci.prims {
		if probe.hits(&ci.prims[i]) {
			return i, true
		}
	}
	return -1, false
}
