// Package synth generates the game's procedural sounds as interleaved
// stereo float32 little-endian PCM.
package synth

import (
	"io"
	"math"
)

const (
	SampleRate    = 44100
	ChannelCount  = 2
	BytesPerFrame = 8
)

// Reader plays a fixed buffer once.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader { return &Reader{data: data} }

func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereo writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereo(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*BytesPerFrame + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// Sample reads back the left channel of frame i.
func Sample(buf []byte, i int) float64 {
	o := i * BytesPerFrame
	v := uint32(buf[o]) | uint32(buf[o+1])<<8 | uint32(buf[o+2])<<16 | uint32(buf[o+3])<<24
	return float64(math.Float32frombits(v))
}

// Frames is the number of stereo frames in buf.
func Frames(buf []byte) int { return len(buf) / BytesPerFrame }

// softSat saturates gently instead of clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalised progress [0,1]; attack, decay and
// release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(frames int) []byte { return make([]byte, frames*BytesPerFrame) }

// Chime is the item pickup sound: a rising C major arpeggio.
func Chime() []byte {
	freqs := []float64{523.25, 659.25, 783.99, 1046.5}
	noteLen := SampleRate * 75 / 1000
	total := len(freqs)*noteLen + int(0.18*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.38
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.09
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereo(buf, i, softSat(s))
	}
	return buf
}

// Thump is the crash sound: a falling body tone under a noise burst.
func Thump() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x7A11)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.15, 0.3)
		freq := 140 - 90*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.6
		s += lcg(&seed) * env * (1 - p) * 0.25
		putStereo(buf, i, softSat(s))
	}
	return buf
}

// Blip is the gear change click.
func Blip() []byte {
	n := int(0.05 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		env := adsr(float64(i)/float64(n), 0.05, 0.4, 0.2, 0.4)
		putStereo(buf, i, softSat(math.Sin(2*math.Pi*1800*t)*env*0.3))
	}
	return buf
}
