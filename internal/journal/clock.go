package journal

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Sequencer hands out strictly increasing logical sequence numbers.
// Implemented by Clock (production) and testutil.DeterministicClock (tests).
type Sequencer interface {
	Next() int64
}

// SessionIDGenerator produces identifiers for new sessions.
// Implemented by UUIDv7Generator (production) and testutil.FixedSessionGenerator (tests).
type SessionIDGenerator interface {
	Generate() string
}

// Clock is a monotonic logical clock.
//
// Every recorded transition gets the next seq, so ordering never depends
// on wall-clock time.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0. The first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

// UUIDv7Generator generates time-sortable UUIDv7 session IDs.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
// Panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
