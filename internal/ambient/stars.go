package ambient

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"bingo-scene/internal/entity"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float32() float32
}

// Scatter adds n points to store, uniformly distributed in a cube of side spread centred on
// the origin.
func Scatter(store *entity.Store, n int, spread float32, src Source) {
	half := spread / 2
	for i := 0; i < n; i++ {
		store.AddPoint(entity.Point{Position: mgl32.Vec3{
			src.Float32()*spread - half,
			src.Float32()*spread - half,
			src.Float32()*spread - half,
		}})
	}
}

func wrapPhase(p float64) float64 {
	return math.Mod(p, 2*math.Pi)
}
