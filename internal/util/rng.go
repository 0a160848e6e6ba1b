// Package util holds the seeded randomness used by the arena generator.
package util

import "math/rand"

// New returns a deterministic source. Seed 0 is remapped so an unset
// flag still reproduces.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Derive spreads batch job i away from the base seed.
func Derive(seed int64, i int) int64 { return seed + int64(i)*7919 }
