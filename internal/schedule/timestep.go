package schedule

import "time"

// DefaultMaxCatchUp bounds how many fixed steps one frame may run.
const DefaultMaxCatchUp = 4

// Timestep accumulates frame time and releases it in fixed intervals.
type Timestep struct {
	interval   time.Duration
	maxCatchUp int
	acc        time.Duration
	steps      uint64
}

// NewTimestep creates a timestep that fires every interval of simulated time.
// maxCatchUp <= 0 selects DefaultMaxCatchUp.
func NewTimestep(interval time.Duration, maxCatchUp int) *Timestep {
	if maxCatchUp <= 0 {
		maxCatchUp = DefaultMaxCatchUp
	}
	return &Timestep{
		interval:   interval,
		maxCatchUp: maxCatchUp,
	}
}

// Interval returns the fixed step length.
func (t *Timestep) Interval() time.Duration {
	return t.interval
}

// Advance adds dt to the accumulator and returns how many whole intervals
// elapsed. Leftover time carries into the next call. When more than
// maxCatchUp intervals are pending, the excess is dropped.
func (t *Timestep) Advance(dt time.Duration) int {
	if t.interval <= 0 || dt <= 0 {
		return 0
	}
	t.acc += dt

	n := int(t.acc / t.interval)
	t.acc -= time.Duration(n) * t.interval
	if n > t.maxCatchUp {
		n = t.maxCatchUp
		t.acc = 0
	}
	t.steps += uint64(n)
	return n
}

// Overstep returns the time accumulated toward the next step.
func (t *Timestep) Overstep() time.Duration {
	return t.acc
}

// Steps returns the number of steps released so far.
func (t *Timestep) Steps() uint64 {
	return t.steps
}

// Reset drops accumulated time and the step count.
func (t *Timestep) Reset() {
	t.acc = 0
	t.steps = 0
}
