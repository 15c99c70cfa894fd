package drive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Direction is one of eight compass sectors relative to the vehicle heading.
// N is straight ahead and W is to the driver's left.
type Direction uint8

const (
	North Direction = iota
	NorthWest
	West
	SouthWest
	South
	SouthEast
	East
	NorthEast
)

var directionNames = [...]string{"N", "NW", "W", "SW", "S", "SE", "E", "NE"}

// Arrows point the way a driver would turn toward the item.
var directionGlyphs = [...]string{"↑", "↖", "←", "↙", "↓", "↘", "→", "↗"}

func (d Direction) String() string { return directionNames[d%8] }

func (d Direction) Glyph() string { return directionGlyphs[d%8] }

// Bearing is the horizontal angle in [0, 2π) from the pose's forward vector
// to target, counter-clockwise seen from above (toward the driver's left).
func Bearing(p Pose, target mgl64.Vec3) float64 {
	fwd := p.Forward()
	dx := target[0] - p.Position[0]
	dz := target[2] - p.Position[2]
	cross := fwd[2]*dx - fwd[0]*dz
	dot := fwd[0]*dx + fwd[2]*dz
	return normAngle(math.Atan2(cross, dot))
}

// SectorOf maps a bearing to its 45° sector; sectors are centred on
// multiples of π/4, so boundaries sit at odd multiples of π/8.
func SectorOf(theta float64) Direction {
	k := int(math.Floor((normAngle(theta) + math.Pi/8) / (math.Pi / 4)))
	return Direction(k % 8)
}

func CompassDirection(p Pose, target mgl64.Vec3) Direction {
	return SectorOf(Bearing(p, target))
}
