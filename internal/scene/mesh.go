package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"citydrive/internal/drive"
)

// Interleaved vertex layout: position, normal, colour.
const (
	FloatsPerVertex  = 9
	CylinderSegments = 16
)

var (
	GroundColor  = mgl32.Vec3{0.08, 0.08, 0.09}
	VehicleColor = mgl32.Vec3{0.85, 0.12, 0.1}
	CabinColor   = mgl32.Vec3{0.15, 0.18, 0.22}
	ItemColor    = mgl32.Vec3{1.0, 0.8, 0.1}
	RainColor    = mgl32.Vec3{0.55, 0.6, 0.75}
)

// VertexCount returns the number of vertices in an interleaved buffer.
func VertexCount(buf []float32) int32 { return int32(len(buf) / FloatsPerVertex) }

func appendVertex(dst []float32, p, n, c mgl32.Vec3) []float32 {
	return append(dst, p[0], p[1], p[2], n[0], n[1], n[2], c[0], c[1], c[2])
}

func appendTri(dst []float32, a, b, c, n, col mgl32.Vec3) []float32 {
	dst = appendVertex(dst, a, n, col)
	dst = appendVertex(dst, b, n, col)
	return appendVertex(dst, c, n, col)
}

// appendQuad emits a, b, c, d in counter-clockwise order seen from n.
func appendQuad(dst []float32, a, b, c, d, n, col mgl32.Vec3) []float32 {
	dst = appendTri(dst, a, b, c, n, col)
	return appendTri(dst, a, c, d, n, col)
}

// AppendBox appends the 36 vertices of an axis-aligned box.
func AppendBox(dst []float32, lo, hi, col mgl32.Vec3) []float32 {
	x0, y0, z0 := lo[0], lo[1], lo[2]
	x1, y1, z1 := hi[0], hi[1], hi[2]
	v := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }

	dst = appendQuad(dst, v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1), v(x1, y0, z1), mgl32.Vec3{1, 0, 0}, col)
	dst = appendQuad(dst, v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0), v(x0, y0, z0), mgl32.Vec3{-1, 0, 0}, col)
	dst = appendQuad(dst, v(x0, y1, z0), v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0), mgl32.Vec3{0, 1, 0}, col)
	dst = appendQuad(dst, v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1), mgl32.Vec3{0, -1, 0}, col)
	dst = appendQuad(dst, v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1), mgl32.Vec3{0, 0, 1}, col)
	dst = appendQuad(dst, v(x1, y0, z0), v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0), mgl32.Vec3{0, 0, -1}, col)
	return dst
}

// AppendCylinder appends an upright cylinder with both caps.
func AppendCylinder(dst []float32, center mgl32.Vec3, radius, halfHeight float32, segments int, col mgl32.Vec3) []float32 {
	y0, y1 := center[1]-halfHeight, center[1]+halfHeight
	top := mgl32.Vec3{center[0], y1, center[2]}
	bottom := mgl32.Vec3{center[0], y0, center[2]}

	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		s0, c0 := float32(math.Sin(a0)), float32(math.Cos(a0))
		s1, c1 := float32(math.Sin(a1)), float32(math.Cos(a1))

		p0 := mgl32.Vec3{center[0] + radius*s0, 0, center[2] + radius*c0}
		p1 := mgl32.Vec3{center[0] + radius*s1, 0, center[2] + radius*c1}
		n := mgl32.Vec3{float32(math.Sin((a0 + a1) / 2)), 0, float32(math.Cos((a0 + a1) / 2))}

		b0, b1 := mgl32.Vec3{p0[0], y0, p0[2]}, mgl32.Vec3{p1[0], y0, p1[2]}
		t0, t1 := mgl32.Vec3{p0[0], y1, p0[2]}, mgl32.Vec3{p1[0], y1, p1[2]}

		dst = appendQuad(dst, b0, b1, t1, t0, n, col)
		dst = appendTri(dst, top, t0, t1, mgl32.Vec3{0, 1, 0}, col)
		dst = appendTri(dst, bottom, b1, b0, mgl32.Vec3{0, -1, 0}, col)
	}
	return dst
}

func colorOf(c drive.Color) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

// CityMesh builds one static buffer holding every building and the ground.
func CityMesh(layout *drive.CityLayout) []float32 {
	lo, hi := layout.Bounds()
	buf := make([]float32, 0, (len(layout.Buildings)*36+6)*FloatsPerVertex)

	g0, g1 := float32(lo-drive.DefaultBlockSpacing), float32(hi+drive.DefaultBlockSpacing)
	buf = appendQuad(buf,
		mgl32.Vec3{g0, 0, g0}, mgl32.Vec3{g0, 0, g1}, mgl32.Vec3{g1, 0, g1}, mgl32.Vec3{g1, 0, g0},
		mgl32.Vec3{0, 1, 0}, GroundColor)

	for _, b := range layout.Buildings {
		col := colorOf(b.Color)
		c := vec32(b.Position)
		switch b.Shape {
		case drive.ShapeCylinder:
			buf = AppendCylinder(buf, c, float32(b.Width/2), float32(b.Height/2), CylinderSegments, col)
		default:
			half := mgl32.Vec3{float32(b.Width / 2), float32(b.Height / 2), float32(b.Depth / 2)}
			buf = AppendBox(buf, c.Sub(half), c.Add(half), col)
		}
	}
	return buf
}

// VehicleMesh builds a vehicle in model space: resting on y=0 like its
// collision box, nose toward +Z.
func VehicleMesh(spec drive.VehicleSpec) []float32 {
	w, h, l := float32(spec.Width/2), float32(spec.Height), float32(spec.Length/2)
	buf := AppendBox(nil, mgl32.Vec3{-w, 0, -l}, mgl32.Vec3{w, h * 0.6, l}, VehicleColor)
	return AppendBox(buf, mgl32.Vec3{-w * 0.8, h * 0.6, -l * 0.5}, mgl32.Vec3{w * 0.8, h, l * 0.2}, CabinColor)
}

// ItemMesh builds the pickup cube in model space.
func ItemMesh() []float32 {
	s := float32(drive.ItemSize / 2)
	return AppendBox(nil, mgl32.Vec3{-s, -s, -s}, mgl32.Vec3{s, s, s}, ItemColor)
}

func vec32(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
