package physics

import (
	"math/rand/v2"
	"time"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float32() float32
}

// NewSource returns a PCG-backed source. Seed == 0 uses a time-based seed.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between maps a uniform draw into [lo, hi).
func between(src Source, lo, hi float32) float32 {
	return lo + src.Float32()*(hi-lo)
}

// spread maps a uniform draw into [-half, half).
func spread(src Source, half float32) float32 {
	return between(src, -half, half)
}
