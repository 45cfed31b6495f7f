// Package randutil derives the deterministic generators that drive shuffles
// and opponent behaviour. Everything downstream takes one int64 seed, so a
// simulation replays exactly when rerun with the same seed.
package randutil

import rand "math/rand/v2"

// goldenRatio64 offsets the second PCG word so both halves of the state
// never collapse to the same value.
const goldenRatio64 = 0x9e3779b97f4a7c15

// New builds a PCG-backed generator from a single seed. rand/v2 wants two
// 64-bit state words, so the seed is pushed through a splitmix64 finalizer
// twice with distinct inputs, which keeps adjacent seeds uncorrelated.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(finalize(u), finalize(u+goldenRatio64)))
}

// finalize is the splitmix64 output function.
func finalize(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
