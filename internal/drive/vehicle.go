package drive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var upAxis = mgl64.Vec3{0, 1, 0}

// Pose is a position on the ground plane plus a heading about +Y.
// Yaw 0 faces +Z.
type Pose struct {
	Position mgl64.Vec3 `json:"position" msgpack:"position"`
	Yaw      float64    `json:"yaw" msgpack:"yaw"`
}

func (p Pose) Forward() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(p.Yaw), 0, math.Cos(p.Yaw)}
}

func (p Pose) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(p.Yaw, upAxis)
}

// VehicleSpec gives the visual dimensions of a vehicle model. Shrink pulls
// the collision box inward from the visual bounds.
type VehicleSpec struct {
	Name         string  `yaml:"name" json:"name" msgpack:"name"`
	Width        float64 `yaml:"width" json:"width" msgpack:"width"`
	Height       float64 `yaml:"height" json:"height" msgpack:"height"`
	Length       float64 `yaml:"length" json:"length" msgpack:"length"`
	Shrink       float64 `yaml:"shrink" json:"shrink" msgpack:"shrink"`
	GroundOffset float64 `yaml:"ground_offset" json:"ground_offset" msgpack:"ground_offset"`
}

func DefaultVehicleSpec() VehicleSpec {
	return VehicleSpec{
		Name:         "roadster",
		Width:        0.6,
		Height:       0.4,
		Length:       1.2,
		Shrink:       0.1,
		GroundOffset: 0.1,
	}
}

// Vehicle owns a pose and the controller that drives it.
type Vehicle struct {
	Pose Pose
	Spec VehicleSpec
	Ctrl Controller

	scaleTurn bool
}

func NewVehicle(spec VehicleSpec, ctrl Controller, scaleTurn bool, pose Pose) *Vehicle {
	pose.Position[1] = spec.GroundOffset
	return &Vehicle{Pose: pose, Spec: spec, Ctrl: ctrl, scaleTurn: scaleTurn}
}

// Bounds is the world box of the rotated model shrunk by Spec.Shrink.
func (v *Vehicle) Bounds() AABB {
	return vehicleBounds(v.Spec, v.Pose)
}

func vehicleBounds(s VehicleSpec, p Pose) AABB {
	hw, hl := s.Width/2, s.Length/2
	sin, cos := math.Abs(math.Sin(p.Yaw)), math.Abs(math.Cos(p.Yaw))
	half := mgl64.Vec3{cos*hw + sin*hl, s.Height / 2, sin*hw + cos*hl}
	center := p.Position.Add(mgl64.Vec3{0, s.Height / 2, 0})
	return BoxAround(center, half).Shrink(s.Shrink)
}

// Probe models the vehicle as its inscribed horizontal circle against cylinders.
func (v *Vehicle) Probe() Probe {
	b := v.Bounds()
	h := b.HalfExtents()
	return Probe{Box: b, Radius: math.Min(h[0], h[2])}
}

// Integrate applies the controller's speed and the turn input to the pose.
// When the new pose hits the index, the old pose is restored and the
// controller stopped; the return value reports that rollback.
func (v *Vehicle) Integrate(in InputState, idx *CollisionIndex) bool {
	prev := v.Pose
	speed := v.Ctrl.Speed()

	rot := v.Ctrl.RotationSpeed(in.Tight)
	if v.scaleTurn {
		rot *= speed / v.Ctrl.MaxSpeed()
	}
	v.Pose.Yaw = normAngle(v.Pose.Yaw + in.Turn()*rot)
	v.Pose.Position = v.Pose.Position.Add(v.Pose.Forward().Mul(speed))

	if idx != nil && idx.QueryAny(v.Probe()) {
		v.Pose = prev
		v.Ctrl.Stop()
		return true
	}
	return false
}
