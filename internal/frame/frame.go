package frame

import (
	"context"
	"time"

	"bingo-scene/internal/camera"
	"bingo-scene/internal/entity"
)

// Material selects how the render boundary draws an entity. It is a handle, not a GPU resource.
type Material int

const (
	MaterialBall Material = iota
	MaterialStar
)

// Drawable pairs an entity transform with its material handle.
type Drawable struct {
	ID        int
	Transform entity.Transform
	Material  Material
}

// Context is the per-tick update context passed explicitly through the scheduler.
type Context struct {
	// Elapsed is wall time since the first tick.
	Elapsed time.Duration
	// SimTime is the total simulated time; it advances in whole steps.
	SimTime time.Duration
	// Dt is the step size in reference frames (1 at 60 Hz).
	Dt    float32
	Steps int
	Mode  camera.Mode
}

// Frame is everything the render boundary needs for one draw. Slices are reused between
// ticks; renderers must not retain them.
type Frame struct {
	Context Context
	Bodies  []Drawable
	Points  []Drawable
	Camera  camera.State
	Stats   Stats
}

// Renderer is the external drawing collaborator.
type Renderer interface {
	Render(ctx context.Context, f *Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, f *Frame) error

// Render calls fn.
func (fn RendererFunc) Render(ctx context.Context, f *Frame) error {
	return fn(ctx, f)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
