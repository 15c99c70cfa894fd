package drive

import "math"

// splitmix64 is the finaliser of the splitmix64 generator.
func splitmix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// hash2D seeds the stream of grid cell (x, z).
func hash2D(seed uint64, x, z int) uint64 {
	h := seed + 0x9E3779B97F4A7C15
	h ^= uint64(uint32(x)) * 0x9E3779B185EBCA87
	h ^= uint64(uint32(z)) * 0xC2B2AE3D27D4EB4F
	return splitmix64(h)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// approach moves cur toward target by at most step without overshooting.
func approach(cur, target, step float64) float64 {
	if cur < target {
		return math.Min(cur+step, target)
	}
	return math.Max(cur-step, target)
}

// normAngle wraps a into [0, 2π).
func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// Rand is a splitmix64 stream: a counter advanced by the golden gamma and
// fed through the mixer. Any seed, including 0, is valid.
type Rand struct {
	state uint64
}

func NewRand(seed uint64) *Rand { return &Rand{state: seed} }

func (r *Rand) NextU64() uint64 {
	r.state += 0x9E3779B97F4A7C15
	return splitmix64(r.state)
}

// Intn returns a value in [0, n); n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) / (1 << 53)
}

// RangeF returns a value in [lo, hi).
func (r *Rand) RangeF(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*r.Float64()
}
