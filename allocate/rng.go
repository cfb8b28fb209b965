package allocate

import (
	"math/rand"
	"time"
)

// RandomSource supplies the table permutation. *rand.Rand satisfies it.
// A RandomSource is used by one Allocate call at a time. A nil source,
// including a nil *rand.Rand, means NewSeededSource(0).
type RandomSource interface {
	Shuffle(n int, swap func(i, j int))
}

// defaultSeed is used when callers pass seed == 0 or a nil source.
const defaultSeed int64 = 1

// NewSeededSource returns a deterministic source.
// Policy: seed == 0 ⇒ defaultSeed; otherwise the seed is used verbatim.
func NewSeededSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// NewSource returns a source seeded from the wall clock, for production
// runs where table numbering should differ between calls.
func NewSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// permutation returns a uniformly random permutation of 0..n-1.
//
// Complexity: O(n).
func permutation(n int, rng RandomSource) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	if r, ok := rng.(*rand.Rand); rng == nil || (ok && r == nil) {
		rng = NewSeededSource(0)
	}
	rng.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })

	return p
}
