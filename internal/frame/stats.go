package frame

import (
	"time"

	"go.uber.org/zap"

	"bingo-scene/internal/physics"
)

// Stats are cumulative counters of the simulation, except Settled which is the count after
// the most recent step.
type Stats struct {
	Ticks        uint64
	Steps        uint64
	DroppedSteps uint64
	FloorHits    uint64
	WallHits     uint64
	Respawns     uint64
	RenderErrors uint64
	Settled      int
}

func (s *Stats) addSummary(sum physics.Summary) {
	s.FloorHits += uint64(sum.FloorHits)
	s.WallHits += uint64(sum.WallHits)
	s.Respawns += uint64(sum.Respawns)
	s.Settled = sum.Settled
}

// statsLogger writes Stats once per interval, in the manner of a frame profiler.
type statsLogger struct {
	interval  time.Duration
	last      time.Time
	lastTicks uint64
	lastSteps uint64
}

// maybeLog logs st if the interval elapsed since the previous log and reports whether it did.
func (l *statsLogger) maybeLog(log *zap.Logger, now time.Time, st Stats) bool {
	if l.interval <= 0 {
		return false
	}
	if l.last.IsZero() {
		l.last = now
		return false
	}
	elapsed := now.Sub(l.last)
	if elapsed < l.interval {
		return false
	}
	secs := elapsed.Seconds()
	log.Info("simulation stats",
		zap.Float64("fps", float64(st.Ticks-l.lastTicks)/secs),
		zap.Float64("steps_per_sec", float64(st.Steps-l.lastSteps)/secs),
		zap.Uint64("dropped_steps", st.DroppedSteps),
		zap.Uint64("floor_hits", st.FloorHits),
		zap.Uint64("wall_hits", st.WallHits),
		zap.Uint64("respawns", st.Respawns),
		zap.Int("settled", st.Settled),
		zap.Uint64("render_errors", st.RenderErrors),
	)
	l.last = now
	l.lastTicks = st.Ticks
	l.lastSteps = st.Steps
	return true
}
