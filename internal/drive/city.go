package drive

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

type Shape uint8

const (
	ShapeBox Shape = iota
	ShapeCylinder
)

func (s Shape) String() string {
	if s == ShapeCylinder {
		return "cylinder"
	}
	return "box"
}

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Shape) UnmarshalText(b []byte) error {
	switch string(b) {
	case "box":
		*s = ShapeBox
	case "cylinder":
		*s = ShapeCylinder
	default:
		return fmt.Errorf("unknown shape %q", b)
	}
	return nil
}

type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Building describes one generated building. Position is the centre of the
// volume. Cylinders use Width as their diameter.
type Building struct {
	Shape        Shape      `json:"shape"`
	GridX        int        `json:"grid_x"`
	GridZ        int        `json:"grid_z"`
	Width        float64    `json:"width"`
	Depth        float64    `json:"depth"`
	Height       float64    `json:"height"`
	Position     mgl64.Vec3 `json:"position"`
	Color        Color      `json:"color"`
	MaterialSeed uint64     `json:"material_seed"`
}

// Primitive returns the collision proxy matching the building's footprint.
func (b Building) Primitive() Primitive {
	if b.Shape == ShapeCylinder {
		return Primitive{
			Kind:       PrimitiveCylinder,
			Center:     b.Position,
			Radius:     b.Width / 2,
			HalfHeight: b.Height / 2,
		}
	}
	half := mgl64.Vec3{b.Width / 2, b.Height / 2, b.Depth / 2}
	return Primitive{Kind: PrimitiveBox, Box: BoxAround(b.Position, half)}
}

// NoiseFunc maps a 2D coordinate to a height scalar.
type NoiseFunc func(x, z float64) float64

// SimplexNoise returns OpenSimplex noise seeded for one run.
func SimplexNoise(seed uint64) NoiseFunc {
	n := opensimplex.New(int64(seed))
	return n.Eval2
}

// CityLayout is the generated city. Buildings and Primitives are parallel.
type CityLayout struct {
	Seed         uint64      `json:"seed"`
	HalfExtent   int         `json:"half_extent"`
	BlockSpacing int         `json:"block_spacing"`
	Buildings    []Building  `json:"buildings"`
	Primitives   []Primitive `json:"-"`
}

// IsRoad reports whether grid cell (x,z) is kept free as a road.
func IsRoad(x, z, spacing int) bool {
	return x%spacing == 0 || z%spacing == 0
}

// GenerateCity lays out one building per non-road cell in [-n, n)². Each
// cell draws from its own hashed stream, so the result depends only on seed.
func GenerateCity(seed uint64, halfExtent, spacing int, noise NoiseFunc) (*CityLayout, error) {
	if halfExtent < 0 || spacing <= 0 {
		return nil, fmt.Errorf("%w: city %dx%d spacing %d", ErrInvalidConfig, halfExtent, halfExtent, spacing)
	}
	if noise == nil {
		noise = SimplexNoise(seed)
	}

	layout := &CityLayout{Seed: seed, HalfExtent: halfExtent, BlockSpacing: spacing}
	s := float64(spacing)
	for x := -halfExtent; x < halfExtent; x++ {
		for z := -halfExtent; z < halfExtent; z++ {
			if IsRoad(x, z, spacing) {
				continue
			}
			r := NewRand(hash2D(seed, x, z))
			b := Building{GridX: x, GridZ: z}
			if r.Float64() > 0.5 {
				b.Shape = ShapeCylinder
			}
			b.Width = r.RangeF(1, 3)
			b.Depth = r.RangeF(1, 3)
			b.Height = math.Abs(noise(float64(x)/10, float64(z)/10))*10 + 1
			ox := r.RangeF(-1, 1)
			oz := r.RangeF(-1, 1)
			b.Position = mgl64.Vec3{float64(x)*s + ox, b.Height / 2, float64(z)*s + oz}
			b.Color = Color{R: r.RangeF(0, 0.3), G: r.RangeF(0, 0.3), B: r.RangeF(0, 0.3)}
			b.MaterialSeed = r.NextU64()

			layout.Buildings = append(layout.Buildings, b)
			layout.Primitives = append(layout.Primitives, b.Primitive())
		}
	}
	return layout, nil
}

// Bounds returns the horizontal extent [min, max] of the grid in world units.
func (l *CityLayout) Bounds() (float64, float64) {
	e := float64(l.HalfExtent * l.BlockSpacing)
	return -e, e
}
