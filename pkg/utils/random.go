package utils

import "math/rand"

// RandomSource draws uniform integers. Implementations must be safe for
// concurrent use since one source is shared by every request.
type RandomSource interface {
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.Intn(n) }

// DefaultRandomSource returns the process-wide source backed by the
// runtime's concurrency-safe generator.
func DefaultRandomSource() RandomSource {
	return globalSource{}
}
