package service

import (
	"math/rand"
	"time"
)

// Clock supplies the current time. Injected so time-gated behavior
// (streak walks, notification triggers) is testable.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// NewRealClock returns a Clock backed by the system clock (UTC).
func NewRealClock() Clock { return realClock{} }

// RandomSource is the randomness capability used for content selection
// and coach-message variation. *rand.Rand satisfies it; tests pass a
// fixed-seed source to get deterministic routines.
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a time-seeded RandomSource for production wiring.
func NewRandomSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
