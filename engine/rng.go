package engine

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking. Every
// draw increments the position, so a save can restore the generator to
// the exact point it was at; all gameplay randomness flows through
// here, never through an ambient global source.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, src: rand.New(rand.NewSource(seed))}
}

// draw is the single primitive every method reduces to: exactly one
// Int63 per position increment, so RestoreRNG can replay by count.
// Intn would not do — its rejection loop consumes a variable number of
// underlying draws.
func (r *RNG) draw() int64 {
	r.pos++
	return r.src.Int63()
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	return int(r.draw()%int64(sides)) + 1
}

// Chance reports true with the given percent probability.
func (r *RNG) Chance(percent int) bool {
	return r.Roll(100) <= percent
}

// Pick returns a random index in [0, n).
func (r *RNG) Pick(n int) int {
	return int(r.draw() % int64(n))
}

// WeightedPick returns an index chosen by weighted selection. weights
// must be non-empty with positive values.
func (r *RNG) WeightedPick(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := int(r.draw() % int64(total))
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// Seed returns the seed the generator was created from.
func (r *RNG) Seed() int64 { return r.seed }

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 { return r.pos }

// RestoreRNG creates an RNG and replays it to the given position,
// reproducing the exact generator state from a save.
func RestoreRNG(seed, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.src.Int63()
	}
	rng.pos = position
	return rng
}
