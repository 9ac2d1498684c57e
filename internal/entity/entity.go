package entity

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BodyID identifies a moving body for the lifetime of the process. Bodies are never removed,
// so an ID is also the body's index in the store.
type BodyID int

// Body is the kinematic state of one bouncing ball. It holds no render handles.
type Body struct {
	ID           BodyID
	Position     mgl32.Vec3
	Velocity     mgl32.Vec3
	Rotation     mgl32.Vec3
	RotationRate mgl32.Vec3
	// BounceFactor is the restitution coefficient in (0,1], fixed at creation.
	BounceFactor float32
}

// Point is one ambient star. Its drift is a function of time and Index only.
type Point struct {
	Index    int
	Position mgl32.Vec3
}

// Transform is the render-facing view of an entity for one frame.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
}
