package drive

import (
	"fmt"
	"math"
)

// Controller turns held controls into a speed and a rotation rate.
type Controller interface {
	Update(in InputState)
	Speed() float64
	MaxSpeed() float64
	RotationSpeed(tight bool) float64
	// Stop zeroes speed after a collision.
	Stop()
	State() DrivetrainState
}

var (
	_ Controller = (*Drivetrain)(nil)
	_ Controller = (*Arcade)(nil)
)

// NewController builds the controller named by the profile.
func NewController(p Profile, sched *Scheduler) (Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch p.Controller {
	case KindDrivetrain:
		return NewDrivetrain(p, sched), nil
	case KindArcade:
		return NewArcade(p), nil
	}
	return nil, fmt.Errorf("%w: controller %q", ErrInvalidProfile, p.Controller)
}

// Arcade is the gearless model: linear acceleration up to a cap, friction
// when idle, reverse capped at a fraction of top speed.
type Arcade struct {
	speed       float64
	accel       float64
	tune        ArcadeTuning
	base, tight float64
}

func NewArcade(p Profile) *Arcade {
	return &Arcade{tune: p.Arcade, base: p.BaseRotationSpeed, tight: p.TightRotationSpeed}
}

func (a *Arcade) Update(in InputState) {
	t := &a.tune
	switch in.Throttle() {
	case 1:
		a.accel = t.Acceleration
	case -1:
		a.accel = -t.Acceleration
	default:
		a.accel = 0
		a.speed = approach(a.speed, 0, t.Friction)
	}
	a.speed += a.accel
	a.speed = clampF(a.speed, -t.MaxSpeed*t.ReverseRatio, t.MaxSpeed)
}

func (a *Arcade) Speed() float64 { return a.speed }

func (a *Arcade) MaxSpeed() float64 { return a.tune.MaxSpeed }

func (a *Arcade) RotationSpeed(tight bool) float64 {
	if tight {
		return a.tight
	}
	return a.base
}

func (a *Arcade) Stop() {
	a.speed = 0
	a.accel = 0
}

// arcadeIdleRPM and arcadeMaxRPM give the gearless model an engine note.
const (
	arcadeIdleRPM = 1000.0
	arcadeMaxRPM  = 9000.0
)

// State reports a synthetic rpm proportional to speed in a single gear.
func (a *Arcade) State() DrivetrainState {
	frac := math.Abs(a.speed) / a.tune.MaxSpeed
	return DrivetrainState{
		Speed:        a.speed,
		RPM:          arcadeIdleRPM + frac*(arcadeMaxRPM-arcadeIdleRPM),
		Gear:         1,
		Accelerating: a.speed > 0,
		Acceleration: a.accel,
	}
}
