package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds describes the arena and the tuning constants of the bounce simulation.
// Accelerations and velocities are per reference frame (one 60 Hz tick), so a step
// with dt=1 reproduces the per-frame behaviour exactly.
type Bounds struct {
	// FloorLevel is the lowest Y a body may occupy.
	FloorLevel float32
	// Boundary is the half-extent of the square arena on X and Z.
	Boundary float32
	// Gravity is the (negative) vertical acceleration per frame².
	Gravity float32
	// Damping scales the whole velocity on every floor impact.
	Damping float32

	SettleEpsilon   float32
	SettleTolerance float32
	// RespawnChance is the per-frame probability that a settled body respawns.
	RespawnChance float32
}

// SpawnRanges controls the randomized initial and respawn state of a body.
type SpawnRanges struct {
	// Spread is the half-extent on X and Z for spawn positions; clamped to the arena.
	Spread float32
	MinY   float32
	MaxY   float32
	// Speed holds the half-range of the initial velocity per axis.
	Speed        mgl32.Vec3
	RotationRate float32
	BounceMin    float32
	BounceMax    float32
}

// DefaultBounds returns the arena used by the scene: floor at -3.5, a 15 unit half-extent
// and a gentle gravity of -0.008 per frame².
func DefaultBounds() Bounds {
	return Bounds{
		FloorLevel:      -3.5,
		Boundary:        15,
		Gravity:         -0.008,
		Damping:         0.9,
		SettleEpsilon:   0.01,
		SettleTolerance: 0.05,
		RespawnChance:   0.01,
	}
}

// DefaultSpawnRanges returns spawn ranges that keep new bodies in the upper arena.
func DefaultSpawnRanges() SpawnRanges {
	return SpawnRanges{
		Spread:       12,
		MinY:         10,
		MaxY:         20,
		Speed:        mgl32.Vec3{0.15, 0.1, 0.15},
		RotationRate: 0.03,
		BounceMin:    0.6,
		BounceMax:    0.9,
	}
}
