package generate

import "math/rand"

// Rand is the random source every generator draws from. *math/rand.Rand
// satisfies it; tests substitute fixed sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded math/rand source
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// chance is the single probabilistic gate used by the generators. A source
// that always returns 0 passes every gate with p > 0.
func chance(rnd Rand, p float64) bool {
	return rnd.Float64() < p
}

// pick returns a random index in [0, n), or 0 when n <= 1
func pick(rnd Rand, n int) int {
	if n <= 1 {
		return 0
	}
	return rnd.Intn(n)
}

// jitter returns a value uniformly spread over [-amount, amount)
func jitter(rnd Rand, amount float64) float64 {
	return (rnd.Float64()*2 - 1) * amount
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func percent(v int) float64 {
	return float64(clampInt(v, 0, 100)) / 100
}
