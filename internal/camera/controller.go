package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/atomic"
)

// Mode says who places the camera.
type Mode int

const (
	// Scripted follows the time-driven Path. It is the initial mode.
	Scripted Mode = iota
	// UserControlled hands placement to an attached orbit control. There is no way back.
	UserControlled
)

func (m Mode) String() string {
	switch m {
	case Scripted:
		return "scripted"
	case UserControlled:
		return "user"
	default:
		return "unknown"
	}
}

// State is the camera placement for one frame.
type State struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Mode     Mode
}

// Controller owns the camera mode and the scripted path. RequestOrbit may be called from any
// goroutine; the mode itself only changes in Sync, on the frame goroutine.
type Controller struct {
	path    Path
	mode    Mode
	pending atomic.Bool
	state   State
	orbit   *Orbit
}

// NewController returns a controller in Scripted mode positioned at the start of path.
func NewController(path Path) *Controller {
	c := &Controller{path: path, mode: Scripted}
	c.state = State{Position: path.At(0), Target: path.Target, Mode: Scripted}
	return c
}

// RequestOrbit asks for user control to take over. Safe for concurrent use.
func (c *Controller) RequestOrbit() {
	c.pending.Store(true)
}

// Sync applies a pending orbit request and returns the current mode.
func (c *Controller) Sync() Mode {
	if c.mode == Scripted && c.pending.Load() {
		c.mode = UserControlled
		c.state.Mode = UserControlled
	}
	return c.mode
}

// Mode returns the mode as of the last Sync.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Update moves the camera along the scripted path while in Scripted mode. Once user
// controlled, the last scripted placement is kept as the orbit's starting point.
func (c *Controller) Update(t float64) State {
	if c.mode == Scripted {
		c.state.Position = c.path.At(t)
	}
	return c.state
}

// Orbit applies a user drag of (dx, dy) pixels and wheel zoom steps. It does nothing while
// Scripted. The first call after the hand-over starts the orbit from the last scripted
// placement, so the view does not jump.
func (c *Controller) Orbit(dx, dy, zoom float32) State {
	if c.mode != UserControlled {
		return c.state
	}
	if c.orbit == nil {
		o := NewOrbit(c.state.Position, c.state.Target)
		c.orbit = &o
	}
	c.orbit.Rotate(dx, dy)
	c.orbit.Zoom(zoom)
	c.state.Position = c.orbit.Position()
	return c.state
}

// State returns the last computed camera state.
func (c *Controller) State() State {
	return c.state
}
