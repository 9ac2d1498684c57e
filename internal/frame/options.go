package frame

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"bingo-scene/internal/ambient"
)

const (
	// ReferenceRate is the display rate the per-frame physics constants were tuned for.
	ReferenceRate = 60.0
	// MaxTickRate caps the simulation rate so a step never rounds down to zero duration.
	MaxTickRate = 1000.0
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the time source. Tests pass clock.NewMock().
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithTickRate sets the fixed simulation rate in steps per second. Values <= 0 use
// ReferenceRate; values above MaxTickRate are clamped to it.
func WithTickRate(hz float64) Option {
	return func(s *Scheduler) {
		if hz <= 0 {
			hz = ReferenceRate
		}
		s.tickRate = min(hz, MaxTickRate)
	}
}

// WithMaxSteps caps the simulation steps run in one tick; the rest of the backlog is dropped.
func WithMaxSteps(n int) Option {
	return func(s *Scheduler) {
		if n < 1 {
			n = 1
		}
		s.maxSteps = n
	}
}

// WithParallelPasses runs the body and ambient passes of a step concurrently.
func WithParallelPasses(enabled bool) Option {
	return func(s *Scheduler) {
		s.parallel = enabled
	}
}

// WithOrbitAttachAfter requests user camera control d after the first tick. Zero disables it.
func WithOrbitAttachAfter(d time.Duration) Option {
	return func(s *Scheduler) {
		s.orbitAfter = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStatsInterval sets how often simulation stats are logged. Zero disables logging.
func WithStatsInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.statsInterval = d
	}
}

// WithDrift overrides the ambient drift parameters.
func WithDrift(d ambient.Drift) Option {
	return func(s *Scheduler) {
		s.drift = d
	}
}
