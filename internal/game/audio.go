package game

import (
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"citydrive/internal/synth"
)

const (
	sfxVolume    = 0.58
	engineVolume = 0.5
)

// Audio plays the engine drone and one-shot effects through oto.
type Audio struct {
	ctx    *oto.Context
	ready  chan struct{}
	engine *synth.Engine
	drone  oto.Player
	log    *zap.Logger
	muted  bool

	chime, thump, blip []byte
}

func NewAudio(log *zap.Logger) (*Audio, error) {
	ctx, ready, err := oto.NewContext(synth.SampleRate, synth.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, err
	}
	return &Audio{
		ctx:    ctx,
		ready:  ready,
		engine: synth.NewEngine(),
		log:    log,
		chime:  synth.Chime(),
		thump:  synth.Thump(),
		blip:   synth.Blip(),
	}, nil
}

func (a *Audio) isReady() bool {
	if a == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

// SetRPM steers the drone; the player starts on the first call after the
// device is ready.
func (a *Audio) SetRPM(rpm float64) {
	if !a.isReady() {
		return
	}
	a.engine.SetRPM(rpm)
	if a.drone == nil {
		a.drone = a.ctx.NewPlayer(a.engine)
		a.drone.SetVolume(engineVolume)
		a.drone.Play()
		a.log.Debug("engine audio started")
	}
}

func (a *Audio) ToggleMute() bool {
	if a == nil {
		return false
	}
	a.muted = !a.muted
	a.engine.SetMuted(a.muted)
	return a.muted
}

// SoundKind identifies a one-shot effect.
type SoundKind int

const (
	SoundChime SoundKind = iota
	SoundThump
	SoundBlip
)

// Play starts a one-shot effect; it is a no-op on a nil or muted Audio.
func (a *Audio) Play(kind SoundKind) {
	if !a.isReady() || a.muted {
		return
	}
	var samples []byte
	switch kind {
	case SoundChime:
		samples = a.chime
	case SoundThump:
		samples = a.thump
	case SoundBlip:
		samples = a.blip
	default:
		return
	}
	go func() {
		player := a.ctx.NewPlayer(synth.NewReader(samples))
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

func (a *Audio) Close() {
	if a == nil || a.drone == nil {
		return
	}
	a.drone.Close()
}
