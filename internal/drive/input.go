package drive

// InputState is the set of held controls for one tick.
type InputState struct {
	Forward  bool `json:"forward" msgpack:"forward"`
	Backward bool `json:"backward" msgpack:"backward"`
	Left     bool `json:"left" msgpack:"left"`
	Right    bool `json:"right" msgpack:"right"`
	Tight    bool `json:"tight" msgpack:"tight"`
}

// Throttle returns 1 for forward, -1 for backward, 0 otherwise. Forward wins.
func (in InputState) Throttle() float64 {
	switch {
	case in.Forward:
		return 1
	case in.Backward:
		return -1
	}
	return 0
}

// Turn returns +1 for left, -1 for right; both held cancel out.
func (in InputState) Turn() float64 {
	t := 0.0
	if in.Left {
		t++
	}
	if in.Right {
		t--
	}
	return t
}
