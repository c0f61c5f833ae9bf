// Package loop provides the frame clock shared by every frame loop.
package loop

import (
	"time"

	"github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/physics"
)

// Clock converts wall-clock frame gaps into simulation ticks and paces
// frames to the target frame time.
type Clock struct {
	now       func() time.Time
	sleep     func(time.Duration)
	last      time.Time
	frame     time.Time
	frameTime time.Duration
}

// NewClock returns a clock paced at config.TargetFrameTime.
func NewClock() *Clock {
	return newClock(time.Now, time.Sleep, config.TargetFrameTime)
}

func newClock(now func() time.Time, sleep func(time.Duration), frameTime time.Duration) *Clock {
	t := now()
	return &Clock{now: now, sleep: sleep, last: t, frame: t, frameTime: frameTime}
}

// Tick starts a frame and returns the elapsed ticks since the previous one,
// clamped to [0, MaxDeltaTicks] so a stall never produces a huge step.
func (c *Clock) Tick() float64 {
	t := c.now()
	gap := t.Sub(c.last)
	c.last = t
	c.frame = t
	return Ticks(gap)
}

// Reset forgets the previous frame so the next Tick reports no elapsed
// time. Used when resuming from a pause or a menu.
func (c *Clock) Reset() {
	c.last = c.now()
}

// Wait sleeps out the rest of the current frame.
func (c *Clock) Wait() {
	elapsed := c.now().Sub(c.frame)
	if elapsed < c.frameTime {
		c.sleep(c.frameTime - elapsed)
	}
}

// Ticks converts a wall-clock duration to clamped simulation ticks.
func Ticks(d time.Duration) float64 {
	ticks := float64(d) / float64(time.Millisecond) / config.TickMillis
	return physics.Clamp(ticks, 0, config.MaxDeltaTicks)
}
