package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxPitch         = math32.Pi/2 - 0.01
	orbitZoomStep    = 0.1
	orbitMinRadius   = 2
	orbitMaxRadius   = 200
	orbitSensitivity = 0.005
)

// Orbit places the camera on a sphere around Target. Yaw is measured from +Z toward +X,
// pitch from the XZ plane, both in radians.
type Orbit struct {
	Target mgl32.Vec3
	Yaw    float32
	Pitch  float32
	Radius float32
}

// NewOrbit returns the orbit that puts the camera at pos looking at target.
func NewOrbit(pos, target mgl32.Vec3) Orbit {
	off := pos.Sub(target)
	r := off.Len()
	if r == 0 {
		return Orbit{Target: target, Radius: orbitMinRadius}
	}
	return Orbit{
		Target: target,
		Yaw:    math32.Atan2(off.X(), off.Z()),
		Pitch:  math32.Asin(mgl32.Clamp(off.Y()/r, -1, 1)),
		Radius: r,
	}
}

// Position returns the camera position on the orbit sphere.
func (o Orbit) Position() mgl32.Vec3 {
	cp := math32.Cos(o.Pitch)
	return o.Target.Add(mgl32.Vec3{
		cp * math32.Sin(o.Yaw),
		math32.Sin(o.Pitch),
		cp * math32.Cos(o.Yaw),
	}.Mul(o.Radius))
}

// Rotate turns the orbit by a mouse drag of (dx, dy) pixels. Dragging right swings the camera
// left around the target; dragging down raises it. Pitch stops just short of the poles.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Yaw -= dx * orbitSensitivity
	o.Pitch = mgl32.Clamp(o.Pitch+dy*orbitSensitivity, -maxPitch, maxPitch)
}

// Zoom moves toward the target by 10% per positive wheel step and away per negative step.
func (o *Orbit) Zoom(steps float32) {
	r := o.Radius * (1 - orbitZoomStep*steps)
	o.Radius = mgl32.Clamp(r, orbitMinRadius, orbitMaxRadius)
}
