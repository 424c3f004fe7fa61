package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/calc/internal/journal"
)

var (
	_ journal.Sequencer          = (*DeterministicClock)(nil)
	_ journal.SessionIDGenerator = (*FixedSessionGenerator)(nil)
)

func TestDeterministicClock_NextIncrementsFromOne(t *testing.T) {
	clock := NewDeterministicClock()
	assert.Equal(t, int64(0), clock.Current())

	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(2), clock.Next())
	assert.Equal(t, int64(3), clock.Next())
	assert.Equal(t, int64(3), clock.Current())
}

func TestDeterministicClock_Reset(t *testing.T) {
	clock := NewDeterministicClock()
	clock.Next()
	clock.Next()

	clock.Reset()

	assert.Equal(t, int64(0), clock.Current())
	assert.Equal(t, int64(1), clock.Next())
}

func TestDeterministicClock_ConcurrentNextIsUnique(t *testing.T) {
	clock := NewDeterministicClock()
	const goroutines, calls = 8, 50

	var wg sync.WaitGroup
	seqs := make(chan int64, goroutines*calls)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				seqs <- clock.Next()
			}
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[int64]bool)
	for seq := range seqs {
		assert.False(t, seen[seq], "seq %d issued twice", seq)
		seen[seq] = true
	}
	assert.Len(t, seen, goroutines*calls)
	assert.Equal(t, int64(goroutines*calls), clock.Current())
}

func TestFixedSessionGenerator(t *testing.T) {
	gen := NewFixedSessionGenerator("session-42")
	assert.Equal(t, "session-42", gen.Generate())
	assert.Equal(t, "session-42", gen.Generate())

	assert.Equal(t, DefaultSessionID, NewFixedSessionGenerator("").Generate())
}
