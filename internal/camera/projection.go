package camera

import "github.com/go-gl/mathgl/mgl32"

// Projection holds perspective parameters. Only Aspect changes at runtime, on viewport resize.
type Projection struct {
	Fovy   float32
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultProjection matches a 75 degree perspective camera with a 0.1..1000 depth range.
func DefaultProjection(width, height int) Projection {
	p := Projection{Fovy: 75, Aspect: 1, Near: 0.1, Far: 1000}
	p.Resize(width, height)
	return p
}

// Resize recomputes the aspect ratio. Degenerate sizes (minimized windows) are ignored and
// report false.
func (p *Projection) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	p.Aspect = float32(width) / float32(height)
	return true
}

// Matrix returns the OpenGL perspective matrix, column-major.
func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.Fovy), p.Aspect, p.Near, p.Far)
}
