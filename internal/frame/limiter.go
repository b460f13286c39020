package frame

import (
	"time"
)

// Limiter caps the render loop frame rate
type Limiter struct {
	next time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{}
}

// Wait blocks until the next frame is due at limit frames per second.
// A limit of 0 or less disables the cap.
func (f *Limiter) Wait(limit int) {
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// spin the last stretch; Sleep overshoots at high caps
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// resync after a hitch instead of bursting to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}

// Counter reports frames per second once per interval
type Counter struct {
	frames   int
	last     time.Time
	interval time.Duration
}

func NewCounter(interval time.Duration) *Counter {
	return &Counter{last: time.Now(), interval: interval}
}

// Tick records a frame. When an interval has passed it returns the rate and true.
func (c *Counter) Tick(now time.Time) (int, bool) {
	c.frames++
	elapsed := now.Sub(c.last)
	if elapsed < c.interval {
		return 0, false
	}
	fps := int(float64(c.frames)/elapsed.Seconds() + 0.5)
	c.frames = 0
	c.last = now
	return fps, true
}
