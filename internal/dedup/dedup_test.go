package dedup

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_FirstSeenIsTrueExactlyOnce(t *testing.T) {
	gate := NewGate(100, time.Hour)

	assert.True(t, gate.FirstSeen("wamid.1"))
	assert.False(t, gate.FirstSeen("wamid.1"))
	assert.True(t, gate.Seen("wamid.1"))

	assert.True(t, gate.FirstSeen("wamid.2"))
	assert.Equal(t, 2, gate.Len())
}

func TestGate_ConcurrentDeliveriesPassOnce(t *testing.T) {
	gate := NewGate(100, time.Hour)

	const goroutines = 32
	var passed int64
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if gate.FirstSeen("wamid.race") {
				atomic.AddInt64(&passed, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), passed)
}

func TestGate_EvictsOldestWhenFull(t *testing.T) {
	gate := NewGate(3, time.Hour)

	for i := 0; i < 4; i++ {
		assert.True(t, gate.FirstSeen(fmt.Sprintf("wamid.%d", i)))
	}

	assert.Equal(t, 3, gate.Len())
	// The oldest identifier was evicted and would pass again.
	assert.False(t, gate.Seen("wamid.0"))
	assert.True(t, gate.Seen("wamid.3"))
}

func TestGate_ExpiredEntriesPassAgain(t *testing.T) {
	gate := NewGate(100, time.Hour)

	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	gate.SetClock(func() time.Time { return now })

	assert.True(t, gate.FirstSeen("wamid.ttl"))
	assert.False(t, gate.FirstSeen("wamid.ttl"))

	now = now.Add(2 * time.Hour)
	assert.False(t, gate.Seen("wamid.ttl"))
	assert.True(t, gate.FirstSeen("wamid.ttl"))
}
