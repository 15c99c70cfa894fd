package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citydrive/internal/drive"
)

func TestHUD(t *testing.T) {
	s := drive.Snapshot{}
	require.Equal(t, "citydrive  loading vehicle…", HUD("citydrive", s))

	s.Vehicle = &drive.VehicleView{Engine: drive.DrivetrainState{Gear: 3, RPM: 4260, Speed: 0.25, Acceleration: 0.00079}}
	s.Compass = "↖"
	s.LastPickup = "12.34"
	got := HUD("citydrive", s)
	assert.Equal(t, "citydrive  gear 3  4260 rpm   54.0 km/h  accel 0.0008  item ↖  last 12.34s", got)
}

func TestKPH(t *testing.T) {
	assert.InDelta(t, 216, KPH(1), 1e-9)
	assert.InDelta(t, 21.6, KPH(-0.1), 1e-9)
}

func TestMat32(t *testing.T) {
	m := mgl64.Perspective(mgl64.DegToRad(75), 16.0/9, 0.1, 1000)
	got := Mat32(m)
	for i := range m {
		assert.InDelta(t, m[i], float64(got[i]), 1e-4)
	}
}

func TestVehicleModel(t *testing.T) {
	p := drive.Pose{Position: mgl64.Vec3{3, 0.1, -2}, Yaw: math.Pi / 2}
	m := VehicleModel(p)

	nose := m.Mul4x1([4]float32{0, 0, 1, 1})
	assert.InDelta(t, 4, float64(nose[0]), 1e-5)
	assert.InDelta(t, 0.1, float64(nose[1]), 1e-5)
	assert.InDelta(t, -2, float64(nose[2]), 1e-5)
}

func TestItemModel(t *testing.T) {
	pos := mgl64.Vec3{1, drive.ItemHeight, 2}
	for _, tt := range []float64{0, 0.5, 1.7} {
		c := ItemModel(pos, tt).Col(3)
		assert.InDelta(t, 1, float64(c[0]), 1e-6)
		assert.GreaterOrEqual(t, float64(c[1]), drive.ItemHeight-1e-6)
		assert.LessOrEqual(t, float64(c[1]), drive.ItemHeight+0.05+1e-6)
	}
}
