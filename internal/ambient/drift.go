package ambient

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"bingo-scene/internal/entity"
)

const (
	// DefaultFrequency is the drift oscillator frequency in radians per millisecond.
	DefaultFrequency = 0.001
	// DefaultAmplitude is the per-frame offset magnitude.
	DefaultAmplitude = 0.01
)

// Drift applies a deterministic oscillating offset to ambient points. The phase of each
// point is its index, so neighbouring stars move out of step with each other.
type Drift struct {
	Frequency float64
	Amplitude float32
}

// NewDrift returns a drift with the default frequency and amplitude.
func NewDrift() Drift {
	return Drift{Frequency: DefaultFrequency, Amplitude: DefaultAmplitude}
}

// Offset returns the offset for point i at time t (milliseconds). It is a pure function.
func (d Drift) Offset(t float64, i int) mgl32.Vec3 {
	// Reduce the phase in float64 so long runtimes keep precision before narrowing.
	phase := float32(wrapPhase(t*d.Frequency + float64(i)))
	return mgl32.Vec3{
		math32.Sin(phase) * d.Amplitude,
		math32.Cos(phase) * d.Amplitude,
		0,
	}
}

// Apply adds the offset at time t, scaled by dt reference frames, to every point in place.
func (d Drift) Apply(points []entity.Point, t float64, dt float32) {
	for i := range points {
		points[i].Position = points[i].Position.Add(d.Offset(t, points[i].Index).Mul(dt))
	}
}

// DriftOffset is Offset with the default frequency and amplitude.
func DriftOffset(t float64, i int) mgl32.Vec3 {
	return NewDrift().Offset(t, i)
}
