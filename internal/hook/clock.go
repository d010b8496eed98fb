package hook

import "sync/atomic"

// seqClock stamps listeners with a monotonic registration sequence.
// Equal-priority listeners are ordered by this value.
type seqClock struct {
	seq atomic.Int64
}

// next returns the next sequence number.
func (c *seqClock) next() int64 {
	return c.seq.Add(1)
}
