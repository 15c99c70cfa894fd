package drive

import "math"

// DrivetrainState is the observable engine state.
type DrivetrainState struct {
	Speed         float64 `json:"speed" msgpack:"speed"`
	RPM           float64 `json:"rpm" msgpack:"rpm"`
	Gear          int     `json:"gear" msgpack:"gear"`
	Accelerating  bool    `json:"accelerating" msgpack:"accelerating"`
	ShiftDelaying bool    `json:"shift_delaying" msgpack:"shift_delaying"`

	// Acceleration is the last computed engine pull. Speed does not use it.
	Acceleration float64 `json:"acceleration" msgpack:"acceleration"`
}

// Drivetrain simulates a geared engine driving one scalar speed.
type Drivetrain struct {
	state DrivetrainState

	tune        DrivetrainTuning
	base, tight float64
	sched       *Scheduler

	// OnShift is called after every gear change.
	OnShift func(from, to int)
}

func NewDrivetrain(p Profile, sched *Scheduler) *Drivetrain {
	return &Drivetrain{
		state: DrivetrainState{RPM: p.Drivetrain.IdleRPM, Gear: 1},
		tune:  p.Drivetrain,
		base:  p.BaseRotationSpeed,
		tight: p.TightRotationSpeed,
		sched: sched,
	}
}

func (d *Drivetrain) State() DrivetrainState { return d.state }

func (d *Drivetrain) Speed() float64 { return d.state.Speed }

func (d *Drivetrain) MaxSpeed() float64 { return d.tune.GearSpeedFactors[d.tune.MaxGear] }

func (d *Drivetrain) RotationSpeed(tight bool) float64 {
	if tight {
		return d.tight
	}
	return d.base
}

// StartAcceleration is ignored during a shift or at the rev limit in top gear.
func (d *Drivetrain) StartAcceleration() bool {
	if d.state.ShiftDelaying {
		return false
	}
	if d.state.Gear == d.tune.MaxGear && d.state.RPM >= d.tune.MaxRPM {
		return false
	}
	d.state.Accelerating = true
	return true
}

func (d *Drivetrain) StopAcceleration() {
	d.state.Accelerating = false
}

// Stop is the hard stop after a crash: zero speed, idle rpm, first gear.
func (d *Drivetrain) Stop() {
	d.state.Speed = 0
	d.state.RPM = d.tune.IdleRPM
	d.state.Acceleration = 0
	if d.state.Gear != 1 {
		from := d.state.Gear
		d.state.Gear = 1
		d.shifted(from)
	}
}

// Update maps held controls onto the accelerate toggle and advances one tick.
func (d *Drivetrain) Update(in InputState) {
	if in.Forward {
		if !d.state.Accelerating {
			d.StartAcceleration()
		}
	} else if d.state.Accelerating {
		d.StopAcceleration()
	}
	d.Step(in.Backward && !in.Forward)
}

// Step advances the engine by one tick. It is a no-op while shifting.
func (d *Drivetrain) Step(reversing bool) {
	if d.state.ShiftDelaying {
		return
	}
	t := &d.tune
	s := &d.state

	if s.Accelerating {
		if s.Speed < 0 {
			// Rolling backwards: brake to a halt before pulling away.
			s.Speed = approach(s.Speed, 0, t.ReverseAcceleration)
			s.Acceleration = 0
		} else {
			gear := float64(s.Gear)
			s.RPM += t.RPMRise / gear * t.RPMDecayRate
			s.Acceleration = 0.005 * (1 / (gear * 1.5)) * (1 - (s.RPM/t.MaxRPM)*0.6)
			s.Speed = (s.RPM / t.MaxRPM) * t.GearSpeedFactors[s.Gear]
			if s.RPM >= t.UpshiftRPM && s.Gear < t.MaxGear {
				d.shiftUp()
			}
		}
	} else {
		s.Acceleration = 0
		s.RPM -= t.CoastRPMDrop
		if s.RPM <= t.IdleRPM {
			s.RPM = t.IdleRPM
			if s.Gear > 1 && s.RPM <= t.DownshiftRPM {
				d.shiftDown()
			}
		}
		if reversing {
			s.Speed = math.Max(s.Speed-t.ReverseAcceleration, -t.ReverseMaxSpeed)
		} else {
			s.Speed = approach(s.Speed, 0, t.DecelerationRate)
		}
	}

	s.RPM = clampF(s.RPM, t.IdleRPM, t.MaxRPM)
	s.Gear = clampInt(s.Gear, 1, t.MaxGear)
}

func (d *Drivetrain) shiftUp() {
	from := d.state.Gear
	d.state.Gear++
	d.state.RPM = d.gearRPM()
	d.shifted(from)

	resume := d.state.Accelerating
	d.state.Accelerating = false
	d.state.ShiftDelaying = true
	d.sched.After(d.tune.ShiftDelay, func() {
		d.state.ShiftDelaying = false
		if resume {
			d.StartAcceleration()
		}
	})
}

func (d *Drivetrain) shiftDown() {
	from := d.state.Gear
	d.state.Gear--
	d.state.RPM = d.gearRPM()
	d.shifted(from)
}

// gearRPM is the rpm the current speed implies in the current gear.
func (d *Drivetrain) gearRPM() float64 {
	f := d.tune.GearSpeedFactors[d.state.Gear]
	return math.Min(d.tune.MaxRPM, math.Abs(d.state.Speed)/f*d.tune.MaxRPM)
}

func (d *Drivetrain) shifted(from int) {
	if d.OnShift != nil {
		d.OnShift(from, d.state.Gear)
	}
}
