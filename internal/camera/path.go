package camera

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Path is the scripted camera sweep: two independent oscillators on X and Z around a fixed
// height and viewing distance. Frequencies are in radians per millisecond.
type Path struct {
	AmplitudeX float32
	FrequencyX float64
	AmplitudeZ float32
	FrequencyZ float64
	Height     float32
	Distance   float32
	Target     mgl32.Vec3
}

// DefaultPath returns a slow elliptical sweep 30 units from the origin.
func DefaultPath() Path {
	return Path{
		AmplitudeX: 10,
		FrequencyX: 0.0003,
		AmplitudeZ: 5,
		FrequencyZ: 0.0002,
		Height:     5,
		Distance:   30,
	}
}

// At returns the camera position at t milliseconds. It depends on nothing but t.
func (p Path) At(t float64) mgl32.Vec3 {
	ax := float32(math.Mod(t*p.FrequencyX, 2*math.Pi))
	az := float32(math.Mod(t*p.FrequencyZ, 2*math.Pi))
	return mgl32.Vec3{
		math32.Sin(ax) * p.AmplitudeX,
		p.Height,
		p.Distance + math32.Cos(az)*p.AmplitudeZ,
	}
}

// QuarterPeriodX returns the time in milliseconds at which the X oscillator peaks.
func (p Path) QuarterPeriodX() float64 {
	if p.FrequencyX == 0 {
		return 0
	}
	return math.Pi / (2 * p.FrequencyX)
}
