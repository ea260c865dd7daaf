package engine

import (
	"time"

	"go.uber.org/ratelimit"
)

// Clock produces a fixed timestep and optionally paces callers to it in
// wall-clock time.
type Clock struct {
	step    time.Duration
	limiter ratelimit.Limiter
	ticks   int
}

// NewClock returns a clock ticking fps times per simulated second. With pace
// set, Tick blocks so that ticks are spread evenly in real time.
func NewClock(fps int, pace bool) *Clock {
	if fps <= 0 {
		fps = 60
	}
	c := &Clock{step: time.Second / time.Duration(fps)}
	if pace {
		c.limiter = ratelimit.New(fps)
	} else {
		c.limiter = ratelimit.NewUnlimited()
	}
	return c
}

// Tick waits for the next frame slot and returns the timestep in seconds.
func (c *Clock) Tick() float64 {
	c.limiter.Take()
	c.ticks++
	return c.step.Seconds()
}

// Step returns the fixed timestep.
func (c *Clock) Step() time.Duration { return c.step }

// Elapsed returns the simulated time since the clock was created.
func (c *Clock) Elapsed() time.Duration {
	return time.Duration(c.ticks) * c.step
}
