package postgres

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues ULIDs that sort in issue order, also within one
// millisecond. Journal lines are read back ordered by id, so lines keep
// the order they were written in.
type ULIDGenerator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return newULIDGeneratorWithClock(time.Now)
}

func newULIDGeneratorWithClock(now func() time.Time) *ULIDGenerator {
	return &ULIDGenerator{
		now:     now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate returns the next id.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
