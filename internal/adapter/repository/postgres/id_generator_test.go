package postgres

import (
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGenerator_SortsWithinOneMillisecond(t *testing.T) {
	frozen := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	gen := newULIDGeneratorWithClock(func() time.Time { return frozen })

	prev := gen.Generate()
	for i := 0; i < 500; i++ {
		next := gen.Generate()
		require.Less(t, prev, next, "ids must increase for lines of one entry")
		prev = next
	}

	parsed, err := ulid.ParseStrict(prev)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(frozen), parsed.Time())
	assert.Len(t, prev, 26, "ids must fit the VARCHAR(26) key columns")
}

func TestULIDGenerator_ConcurrentIDsAreUnique(t *testing.T) {
	gen := NewULIDGenerator()

	const workers, perWorker = 8, 200
	ids := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for range perWorker {
				ids <- gen.Generate()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, workers*perWorker)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}
