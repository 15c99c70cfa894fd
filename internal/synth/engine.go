package synth

import (
	"math"
	"sync/atomic"
)

const (
	engineGain = 0.22
	pitchGlide = 0.0064 // per frame
	gainGlide  = 0.0008
)

// Engine is an endless engine drone whose pitch follows the RPM set from
// the game loop. Read runs on the audio goroutine.
type Engine struct {
	rpm  atomic.Uint64 // float64 bits
	mute atomic.Bool

	freq  float64
	gain  float64
	phase float64
	sub   float64
	seed  uint64
}

func NewEngine() *Engine { return &Engine{seed: 0xE61E} }

// SetRPM sets the target engine speed; 0 fades the drone out.
func (e *Engine) SetRPM(rpm float64) {
	if rpm < 0 {
		rpm = 0
	}
	e.rpm.Store(math.Float64bits(rpm))
}

func (e *Engine) RPM() float64 { return math.Float64frombits(e.rpm.Load()) }

func (e *Engine) SetMuted(m bool) { e.mute.Store(m) }

func (e *Engine) Muted() bool { return e.mute.Load() }

// firingFreq is the fundamental of a four-stroke four-cylinder engine.
func firingFreq(rpm float64) float64 { return rpm / 30 }

func (e *Engine) Read(p []byte) (int, error) {
	frames := len(p) / BytesPerFrame
	rpm := e.RPM()
	targetFreq := firingFreq(rpm)
	targetGain := 0.0
	if rpm > 0 && !e.Muted() {
		targetGain = engineGain
	}
	if e.freq == 0 {
		e.freq = targetFreq
	}

	for i := 0; i < frames; i++ {
		e.freq += (targetFreq - e.freq) * pitchGlide
		e.gain += (targetGain - e.gain) * gainGlide

		e.phase += 2 * math.Pi * e.freq / SampleRate
		if e.phase > 2*math.Pi {
			e.phase -= 2 * math.Pi
		}
		e.sub += math.Pi * e.freq / SampleRate
		if e.sub > 2*math.Pi {
			e.sub -= 2 * math.Pi
		}

		s := 0.6*math.Sin(e.phase) + 0.25*math.Sin(2*e.phase) + 0.15*math.Sin(e.sub)
		s += 0.04 * lcg(&e.seed)
		putStereo(p, i, softSat(s*e.gain))
	}
	return frames * BytesPerFrame, nil
}
