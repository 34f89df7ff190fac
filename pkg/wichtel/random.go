package wichtel

import (
	"math/rand"
	"time"
)

// RandomSource picks an index in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a pseudorandom source seeded from the clock, so every run draws differently.
// It is not suitable for anything that needs unpredictability against an adversary.
func NewRandomSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404
}

// SequenceSource replays a fixed list of indexes. Each index is taken modulo n;
// once the list runs out it always answers 0.
type SequenceSource struct {
	indexes []int
	pos     int
}

// NewSequenceSource creates a deterministic source for tests and reproducible draws
func NewSequenceSource(indexes ...int) *SequenceSource {
	return &SequenceSource{indexes: indexes}
}

// Intn returns the next index of the sequence bounded by n
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 || s.pos >= len(s.indexes) {
		return 0
	}
	i := s.indexes[s.pos] % n
	s.pos++
	if i < 0 {
		i += n
	}
	return i
}
