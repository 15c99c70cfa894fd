package drive

// Rain is a field of falling drops stored as a flat xyz buffer.
type Rain struct {
	Positions []float32

	rng   *Rand
	minY  float64
	spanY float64
	fall  float32
}

// NewRain scatters count drops over an area×area square centred on the origin.
func NewRain(count int, area float64, seed uint64) *Rain {
	r := &Rain{
		Positions: make([]float32, count*3),
		rng:       NewRand(seed),
		minY:      RainMinY,
		spanY:     RainSpanY,
		fall:      RainFallSpeed,
	}
	half := area / 2
	for i := 0; i < count; i++ {
		r.Positions[i*3] = float32(r.rng.RangeF(-half, half))
		r.Positions[i*3+1] = r.dropHeight()
		r.Positions[i*3+2] = float32(r.rng.RangeF(-half, half))
	}
	return r
}

func (r *Rain) dropHeight() float32 {
	return float32(r.minY + r.rng.Float64()*r.spanY)
}

func (r *Rain) Len() int { return len(r.Positions) / 3 }

// Update lowers every drop; drops below ground restart at the top band.
func (r *Rain) Update() {
	for i := 1; i < len(r.Positions); i += 3 {
		y := r.Positions[i] - r.fall
		if y < 0 {
			y = r.dropHeight()
		}
		r.Positions[i] = y
	}
}
