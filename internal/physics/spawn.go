package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"bingo-scene/internal/entity"
)

// Spawner creates bodies with randomized state and resets settled ones.
type Spawner struct {
	bounds Bounds
	ranges SpawnRanges
	src    Source
}

// NewSpawner returns a spawner that draws from src. Spread and height are clamped so every
// spawned body starts inside the arena.
func NewSpawner(bounds Bounds, ranges SpawnRanges, src Source) *Spawner {
	ranges.Spread = min(math32.Abs(ranges.Spread), bounds.Boundary)
	if ranges.MinY < bounds.FloorLevel {
		ranges.MinY = bounds.FloorLevel
	}
	if ranges.MaxY < ranges.MinY {
		ranges.MaxY = ranges.MinY
	}
	if ranges.BounceMin <= 0 {
		ranges.BounceMin = 0.01
	}
	if ranges.BounceMax > 1 {
		ranges.BounceMax = 1
	}
	if ranges.BounceMax < ranges.BounceMin {
		ranges.BounceMax = ranges.BounceMin
	}
	return &Spawner{bounds: bounds, ranges: ranges, src: src}
}

// NewBody returns a body with randomized position, velocity, rotation rate and bounce factor.
// The ID is assigned by the entity store.
func (s *Spawner) NewBody() entity.Body {
	b := entity.Body{
		RotationRate: mgl32.Vec3{
			spread(s.src, s.ranges.RotationRate),
			spread(s.src, s.ranges.RotationRate),
			spread(s.src, s.ranges.RotationRate),
		},
		BounceFactor: between(s.src, s.ranges.BounceMin, s.ranges.BounceMax),
	}
	s.Respawn(&b)
	return b
}

// Respawn teleports b to a new random position in the upper arena with a new random velocity.
// RotationRate and BounceFactor are left unchanged.
func (s *Spawner) Respawn(b *entity.Body) {
	b.Position = mgl32.Vec3{
		spread(s.src, s.ranges.Spread),
		between(s.src, s.ranges.MinY, s.ranges.MaxY),
		spread(s.src, s.ranges.Spread),
	}
	b.Velocity = mgl32.Vec3{
		spread(s.src, s.ranges.Speed.X()),
		spread(s.src, s.ranges.Speed.Y()),
		spread(s.src, s.ranges.Speed.Z()),
	}
}
