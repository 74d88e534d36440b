package sim

import "math/rand"

// Source supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a Source seeded with seed. The result is not safe for
// concurrent use.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// coinFlip rounds a uniform draw to 0 or 1 and reports whether it came up 1.
func coinFlip(src Source) bool {
	return src.Float64() >= 0.5
}
