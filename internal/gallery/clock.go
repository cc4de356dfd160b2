package gallery

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// TimestampIDGenerator produces IDs made of the current Unix millisecond
// timestamp followed by a random fraction, e.g. "17290000000000.4821...".
// Only uniqueness matters; the values are not reproducible.
type TimestampIDGenerator struct {
	Clock Clock
}

func (g TimestampIDGenerator) New() string {
	clock := g.Clock
	if clock == nil {
		clock = RealClock{}
	}
	ms := strconv.FormatInt(clock.Now().UnixMilli(), 10)
	return ms + strconv.FormatFloat(rand.Float64(), 'f', -1, 64)
}
