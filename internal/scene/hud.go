package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"citydrive/internal/drive"
)

// HUD renders the status line shown in the window title.
func HUD(title string, s drive.Snapshot) string {
	var b strings.Builder
	b.WriteString(title)

	if s.Vehicle == nil {
		b.WriteString("  loading vehicle…")
	} else {
		e := s.Vehicle.Engine
		fmt.Fprintf(&b, "  gear %d  %4.0f rpm  %5.1f km/h  accel %.4f", e.Gear, e.RPM, KPH(e.Speed), e.Acceleration)
	}
	if s.Compass != "" {
		fmt.Fprintf(&b, "  item %s", s.Compass)
	}
	if s.LastPickup != "" {
		fmt.Fprintf(&b, "  last %ss", s.LastPickup)
	}
	return b.String()
}

// KPH converts world units per tick at 60 ticks a second, one unit being a
// metre, into km/h.
func KPH(speed float64) float64 {
	if speed < 0 {
		speed = -speed
	}
	return speed * 60 * 3.6
}

// Mat32 narrows a double precision matrix for upload as a GL uniform.
func Mat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

// VehicleModel places vehicle model space at a pose.
func VehicleModel(p drive.Pose) mgl32.Mat4 {
	return Mat32(mgl64.Translate3D(p.Position[0], p.Position[1], p.Position[2]).Mul4(p.Rotation().Mat4()))
}

// ItemModel spins the pickup cube about +Y over time.
func ItemModel(pos mgl64.Vec3, t float64) mgl32.Mat4 {
	bob := 0.025 * (1 + math.Sin(t*3))
	return Mat32(mgl64.Translate3D(pos[0], pos[1]+bob, pos[2]).Mul4(mgl64.HomogRotate3DY(t * 2)))
}
