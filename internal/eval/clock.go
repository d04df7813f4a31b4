package eval

import "sync/atomic"

// Clock is a monotonic logical clock for trace ordering.
//
// Every trace event is stamped with a strictly increasing seq number from
// this clock, so a recorded reduction replays in exactly the order it
// happened - no wall-clock timestamps are involved anywhere.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the engine's single-threaded loop means only one goroutine
// typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
