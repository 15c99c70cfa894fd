package drive

import "sort"

type scheduledFunc struct {
	due float64
	seq uint64
	fn  func()
}

// Scheduler runs one-shot callbacks against the game clock. Everything runs
// on the goroutine that calls Advance.
type Scheduler struct {
	now     float64
	seq     uint64
	pending []scheduledFunc
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Now() float64 { return s.now }

// After queues fn to run once the clock has advanced by delay seconds.
func (s *Scheduler) After(delay float64, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	s.pending = append(s.pending, scheduledFunc{due: s.now + delay, seq: s.seq, fn: fn})
}

// Advance moves the clock by dt and fires every due callback in (due, insertion)
// order. Callbacks queued while firing wait for the next Advance.
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}
	if len(s.pending) == 0 {
		return
	}
	var due []scheduledFunc
	out := s.pending[:0]
	for _, e := range s.pending {
		if e.due <= s.now {
			due = append(due, e)
		} else {
			out = append(out, e)
		}
	}
	s.pending = out
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, e := range due {
		e.fn()
	}
}

func (s *Scheduler) Pending() int { return len(s.pending) }
