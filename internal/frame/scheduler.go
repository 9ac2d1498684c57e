package frame

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bingo-scene/internal/ambient"
	"bingo-scene/internal/camera"
	"bingo-scene/internal/entity"
	"bingo-scene/internal/physics"
)

// Scheduler runs one update-and-render pass per display refresh. Wall time is converted into
// fixed simulation steps, so the simulation speed does not depend on the refresh rate.
// It is not safe for concurrent use; call Tick from the render goroutine only.
type Scheduler struct {
	store    *entity.Store
	world    *physics.World
	drift    ambient.Drift
	cam      *camera.Controller
	renderer Renderer

	clock         clock.Clock
	log           *zap.Logger
	tickRate      float64
	maxSteps      int
	parallel      bool
	orbitAfter    time.Duration
	statsInterval time.Duration

	started     bool
	start       time.Time
	last        time.Time
	accumulator time.Duration
	simTime     time.Duration
	stats       Stats
	statsLog    statsLogger
	frame       Frame
	transforms  []entity.Transform
}

// New returns a scheduler over store. r receives every frame after the update passes.
func New(store *entity.Store, world *physics.World, cam *camera.Controller, r Renderer, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:         store,
		world:         world,
		drift:         ambient.NewDrift(),
		cam:           cam,
		renderer:      r,
		clock:         clock.New(),
		log:           zap.NewNop(),
		tickRate:      ReferenceRate,
		maxSteps:      5,
		statsInterval: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.statsLog.interval = s.statsInterval
	s.frame.Bodies = make([]Drawable, 0, store.BodyCount())
	s.frame.Points = make([]Drawable, 0, store.PointCount())
	return s
}

// StepDuration is the simulated time covered by one step.
func (s *Scheduler) StepDuration() time.Duration {
	return time.Duration(float64(time.Second) / s.tickRate)
}

// Stats returns the current counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Tick runs the passes for the time elapsed since the previous tick, in fixed order:
// physics over every body, ambient drift over every point, the scripted camera path (only
// in Scripted mode), then hands the frame to the renderer. Render failures are logged and
// counted; Tick never fails.
func (s *Scheduler) Tick(ctx context.Context) *Frame {
	now := s.clock.Now()
	if !s.started {
		s.begin(now)
	}
	s.accumulator += now.Sub(s.last)
	s.last = now

	stepDur := s.StepDuration()
	dt := float32(ReferenceRate / s.tickRate)
	steps := 0
	for s.accumulator >= stepDur && steps < s.maxSteps {
		s.simTime += stepDur
		s.step(dt)
		s.accumulator -= stepDur
		steps++
	}
	// The dropped count is reported by the periodic stats log.
	if s.accumulator >= stepDur {
		s.stats.DroppedSteps += uint64(s.accumulator / stepDur)
		s.accumulator %= stepDur
	}
	s.stats.Ticks++
	s.stats.Steps += uint64(steps)

	mode := s.cam.Sync()
	elapsed := now.Sub(s.start)
	camState := s.cam.State()
	if mode == camera.Scripted {
		camState = s.cam.Update(millis(elapsed))
	}

	f := &s.frame
	f.Context = Context{Elapsed: elapsed, SimTime: s.simTime, Dt: dt, Steps: steps, Mode: mode}
	f.Camera = camState
	s.fill(f)
	f.Stats = s.stats

	if s.renderer != nil {
		if err := s.renderer.Render(ctx, f); err != nil {
			s.stats.RenderErrors++
			if s.stats.RenderErrors == 1 {
				s.log.Warn("render failed", zap.Error(err))
			}
		}
	}
	s.statsLog.maybeLog(s.log, now, s.stats)
	return f
}

func (s *Scheduler) begin(now time.Time) {
	s.started = true
	s.start = now
	s.last = now
	if s.orbitAfter > 0 {
		s.clock.AfterFunc(s.orbitAfter, s.cam.RequestOrbit)
	}
	s.log.Info("simulation started",
		zap.Int("bodies", s.store.BodyCount()),
		zap.Int("points", s.store.PointCount()),
		zap.Float64("tick_rate", s.tickRate),
		zap.Bool("parallel", s.parallel),
	)
}

// step runs the body and ambient passes once. They touch disjoint state.
func (s *Scheduler) step(dt float32) {
	bodies := s.store.Bodies()
	points := s.store.Points()
	t := millis(s.simTime)

	if !s.parallel {
		s.stats.addSummary(s.world.StepAll(bodies, dt))
		s.drift.Apply(points, t, dt)
		return
	}

	var sum physics.Summary
	var g errgroup.Group
	g.Go(func() error {
		sum = s.world.StepAll(bodies, dt)
		return nil
	})
	g.Go(func() error {
		s.drift.Apply(points, t, dt)
		return nil
	})
	_ = g.Wait()
	s.stats.addSummary(sum)
}

func (s *Scheduler) fill(f *Frame) {
	s.transforms = s.store.BodyTransforms(s.transforms)
	f.Bodies = f.Bodies[:0]
	for i, tr := range s.transforms {
		f.Bodies = append(f.Bodies, Drawable{ID: i, Transform: tr, Material: MaterialBall})
	}
	s.transforms = s.store.PointTransforms(s.transforms)
	f.Points = f.Points[:0]
	for i, tr := range s.transforms {
		f.Points = append(f.Points, Drawable{ID: i, Transform: tr, Material: MaterialStar})
	}
}
