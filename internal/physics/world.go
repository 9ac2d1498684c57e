package physics

import (
	"github.com/chewxy/math32"

	"bingo-scene/internal/entity"
)

// StepResult reports what happened to one body during a step.
type StepResult struct {
	FloorHit  bool
	WallHitX  bool
	WallHitZ  bool
	Settled   bool
	Respawned bool
}

// Summary aggregates step results over every body of a pass.
type Summary struct {
	FloorHits int
	WallHits  int
	Settled   int
	Respawns  int
}

// Add folds r into the summary.
func (s *Summary) Add(r StepResult) {
	if r.FloorHit {
		s.FloorHits++
	}
	if r.WallHitX {
		s.WallHits++
	}
	if r.WallHitZ {
		s.WallHits++
	}
	if r.Settled {
		s.Settled++
	}
	if r.Respawned {
		s.Respawns++
	}
}

// Merge adds the counters of o.
func (s *Summary) Merge(o Summary) {
	s.FloorHits += o.FloorHits
	s.WallHits += o.WallHits
	s.Settled += o.Settled
	s.Respawns += o.Respawns
}

// World runs the bounce simulation over moving bodies: gravity, Euler integration,
// floor and wall response, rotation and the settle/respawn rule.
type World struct {
	Bounds  Bounds
	spawner *Spawner
	src     Source
}

// NewWorld returns a world that respawns settled bodies through spawner and draws respawn
// decisions from src.
func NewWorld(bounds Bounds, spawner *Spawner, src Source) *World {
	return &World{Bounds: bounds, spawner: spawner, src: src}
}

// Step advances one body by dt reference frames. The order is fixed: gravity, integrate,
// floor, walls, rotation, settle check.
func (w *World) Step(b *entity.Body, dt float32) StepResult {
	var r StepResult
	bd := &w.Bounds

	b.Velocity[1] += bd.Gravity * dt
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	if b.Position[1] < bd.FloorLevel {
		b.Position[1] = bd.FloorLevel
		b.Velocity[1] = -b.Velocity[1] * b.BounceFactor
		// Floor impacts bleed energy on every axis; wall impacts do not.
		b.Velocity = b.Velocity.Mul(bd.Damping)
		r.FloorHit = true
	}

	r.WallHitX = w.wall(b, 0)
	r.WallHitZ = w.wall(b, 2)

	b.Rotation = b.Rotation.Add(b.RotationRate.Mul(dt))

	if w.settled(b) {
		r.Settled = true
		if w.spawner != nil && w.src != nil && w.src.Float32() < w.respawnThreshold(dt) {
			w.spawner.Respawn(b)
			r.Respawned = true
		}
	}
	return r
}

// StepAll advances every body by dt.
func (w *World) StepAll(bodies []entity.Body, dt float32) Summary {
	var s Summary
	for i := range bodies {
		s.Add(w.Step(&bodies[i], dt))
	}
	return s
}

// Settled reports whether b is resting on the floor.
func (w *World) Settled(b *entity.Body) bool {
	return w.settled(b)
}

func (w *World) settled(b *entity.Body) bool {
	return math32.Abs(b.Velocity[1]) < w.Bounds.SettleEpsilon &&
		b.Position[1] <= w.Bounds.FloorLevel+w.Bounds.SettleTolerance
}

// wall clamps axis to the arena and reflects that axis only.
func (w *World) wall(b *entity.Body, axis int) bool {
	limit := w.Bounds.Boundary
	if math32.Abs(b.Position[axis]) <= limit {
		return false
	}
	b.Position[axis] = math32.Copysign(limit, b.Position[axis])
	b.Velocity[axis] = -b.Velocity[axis] * b.BounceFactor
	return true
}

// respawnThreshold converts the per-frame respawn chance to the chance over dt frames.
func (w *World) respawnThreshold(dt float32) float32 {
	p := w.Bounds.RespawnChance
	if p <= 0 {
		return 0
	}
	if dt == 1 || p >= 1 {
		return p
	}
	return 1 - math32.Pow(1-p, dt)
}
