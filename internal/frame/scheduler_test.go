package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"

	"bingo-scene/internal/ambient"
	"bingo-scene/internal/camera"
	"bingo-scene/internal/entity"
	"bingo-scene/internal/physics"
)

type recorder struct {
	frames []Frame
	err    error
}

func (r *recorder) Render(_ context.Context, f *Frame) error {
	cp := *f
	cp.Bodies = append([]Drawable(nil), f.Bodies...)
	cp.Points = append([]Drawable(nil), f.Points...)
	r.frames = append(r.frames, cp)
	return r.err
}

func (r *recorder) last() Frame {
	return r.frames[len(r.frames)-1]
}

type fixture struct {
	store *entity.Store
	world *physics.World
	cam   *camera.Controller
	clk   *clock.Mock
	rec   *recorder
}

func newFixture(seed uint64, bodies, points int) *fixture {
	src := physics.NewSource(seed)
	bounds := physics.DefaultBounds()
	spawner := physics.NewSpawner(bounds, physics.DefaultSpawnRanges(), src)
	store := entity.NewStore(bodies, points)
	for i := 0; i < bodies; i++ {
		store.AddBody(spawner.NewBody())
	}
	ambient.Scatter(store, points, 100, src)
	return &fixture{
		store: store,
		world: physics.NewWorld(bounds, spawner, src),
		cam:   camera.NewController(camera.DefaultPath()),
		clk:   clock.NewMock(),
		rec:   &recorder{},
	}
}

func (fx *fixture) scheduler(opts ...Option) *Scheduler {
	opts = append([]Option{WithClock(fx.clk)}, opts...)
	return New(fx.store, fx.world, fx.cam, fx.rec, opts...)
}

func TestFirstTickRendersWithoutStepping(t *testing.T) {
	fx := newFixture(1, 3, 5)
	s := fx.scheduler()
	before := fx.store.Body(0).Position

	f := s.Tick(context.Background())

	test.That(t, f.Context.Steps, test.ShouldEqual, 0)
	test.That(t, fx.rec.frames, test.ShouldHaveLength, 1)
	test.That(t, fx.rec.last().Bodies, test.ShouldHaveLength, 3)
	test.That(t, fx.rec.last().Points, test.ShouldHaveLength, 5)
	test.That(t, fx.rec.last().Bodies[0].Transform.Position, test.ShouldResemble, before)
	test.That(t, fx.rec.last().Points[0].Material, test.ShouldEqual, MaterialStar)
	test.That(t, fx.rec.last().Bodies[0].Material, test.ShouldEqual, MaterialBall)
}

func TestTickRunsFixedSteps(t *testing.T) {
	fx := newFixture(1, 2, 2)
	s := fx.scheduler(WithTickRate(60))
	ctx := context.Background()
	s.Tick(ctx)

	fx.clk.Add(50 * time.Millisecond)
	f := s.Tick(ctx)
	test.That(t, f.Context.Steps, test.ShouldEqual, 3)
	test.That(t, f.Context.Dt, test.ShouldEqual, float32(1))
	test.That(t, f.Context.SimTime, test.ShouldEqual, 3*s.StepDuration())

	// Partial steps carry over to the next tick.
	fx.clk.Add(10 * time.Millisecond)
	test.That(t, s.Tick(ctx).Context.Steps, test.ShouldEqual, 0)
	fx.clk.Add(10 * time.Millisecond)
	test.That(t, s.Tick(ctx).Context.Steps, test.ShouldEqual, 1)

	test.That(t, s.Stats().Steps, test.ShouldEqual, uint64(4))
	test.That(t, s.Stats().Ticks, test.ShouldEqual, uint64(4))
}

func TestTickRateScalesDt(t *testing.T) {
	fx := newFixture(1, 1, 0)
	s := fx.scheduler(WithTickRate(120), WithMaxSteps(100))
	ctx := context.Background()
	s.Tick(ctx)
	fx.clk.Add(100 * time.Millisecond)

	f := s.Tick(ctx)
	test.That(t, f.Context.Dt, test.ShouldEqual, float32(0.5))
	test.That(t, f.Context.Steps, test.ShouldEqual, 12)
}

func TestTickDropsBacklogBeyondMaxSteps(t *testing.T) {
	fx := newFixture(1, 1, 0)
	s := fx.scheduler(WithMaxSteps(4))
	ctx := context.Background()
	s.Tick(ctx)

	fx.clk.Add(time.Second)
	f := s.Tick(ctx)

	test.That(t, f.Context.Steps, test.ShouldEqual, 4)
	test.That(t, s.Stats().DroppedSteps, test.ShouldEqual, uint64(56))

	fx.clk.Add(17 * time.Millisecond)
	test.That(t, s.Tick(ctx).Context.Steps, test.ShouldEqual, 1)
}

func TestBodiesStayInBoundsAcrossTicks(t *testing.T) {
	fx := newFixture(7, 20, 0)
	s := fx.scheduler()
	ctx := context.Background()
	bounds := fx.world.Bounds

	for i := 0; i < 600; i++ {
		fx.clk.Add(16 * time.Millisecond)
		f := s.Tick(ctx)
		for _, d := range f.Bodies {
			p := d.Transform.Position
			test.That(t, p.Y(), test.ShouldBeGreaterThanOrEqualTo, bounds.FloorLevel)
			test.That(t, math32.Abs(p.X()), test.ShouldBeLessThanOrEqualTo, bounds.Boundary)
			test.That(t, math32.Abs(p.Z()), test.ShouldBeLessThanOrEqualTo, bounds.Boundary)
		}
	}
	test.That(t, s.Stats().FloorHits, test.ShouldBeGreaterThan, uint64(0))
}

func TestAmbientDriftUsesSimTime(t *testing.T) {
	fx := newFixture(3, 0, 4)
	s := fx.scheduler()
	start := make([]mgl32.Vec3, 4)
	for i, p := range fx.store.Points() {
		start[i] = p.Position
	}
	ctx := context.Background()
	s.Tick(ctx)
	fx.clk.Add(s.StepDuration() * 2)
	s.Tick(ctx)

	d := ambient.NewDrift()
	step := millis(s.StepDuration())
	for i, p := range fx.store.Points() {
		want := start[i].Add(d.Offset(step, i)).Add(d.Offset(2*step, i))
		test.That(t, p.Position, test.ShouldResemble, want)
	}
}

func TestCameraFollowsPathUntilOrbit(t *testing.T) {
	fx := newFixture(1, 1, 0)
	s := fx.scheduler()
	ctx := context.Background()
	path := camera.DefaultPath()

	s.Tick(ctx)
	fx.clk.Add(2 * time.Second)
	f := s.Tick(ctx)
	test.That(t, f.Camera.Mode, test.ShouldEqual, camera.Scripted)
	test.That(t, f.Camera.Position, test.ShouldResemble, path.At(2000))

	fx.cam.RequestOrbit()
	fx.clk.Add(2 * time.Second)
	f = s.Tick(ctx)
	test.That(t, f.Context.Mode, test.ShouldEqual, camera.UserControlled)
	test.That(t, f.Camera.Position, test.ShouldResemble, path.At(2000))
}

func TestOrbitAttachesAfterDelay(t *testing.T) {
	fx := newFixture(1, 1, 0)
	s := fx.scheduler(WithOrbitAttachAfter(time.Second))
	ctx := context.Background()
	s.Tick(ctx)

	fx.clk.Add(500 * time.Millisecond)
	test.That(t, s.Tick(ctx).Context.Mode, test.ShouldEqual, camera.Scripted)

	fx.clk.Add(600 * time.Millisecond)
	// The mock clock runs AfterFunc callbacks on their own goroutine.
	deadline := time.Now().Add(2 * time.Second)
	mode := camera.Scripted
	for mode == camera.Scripted && time.Now().Before(deadline) {
		mode = s.Tick(ctx).Context.Mode
		if mode == camera.Scripted {
			time.Sleep(time.Millisecond)
		}
	}
	test.That(t, mode, test.ShouldEqual, camera.UserControlled)
}

func TestParallelPassesMatchSequential(t *testing.T) {
	run := func(parallel bool) []entity.Body {
		fx := newFixture(99, 10, 50)
		s := fx.scheduler(WithParallelPasses(parallel))
		ctx := context.Background()
		for i := 0; i < 120; i++ {
			fx.clk.Add(16 * time.Millisecond)
			s.Tick(ctx)
		}
		out := append([]entity.Body(nil), fx.store.Bodies()...)
		return out
	}
	test.That(t, run(true), test.ShouldResemble, run(false))
}

func TestRenderErrorsAreCounted(t *testing.T) {
	fx := newFixture(1, 1, 0)
	core, logs := observer.New(zap.WarnLevel)
	fx.rec.err = errors.New("gpu lost")
	s := fx.scheduler(WithLogger(zap.New(core)))
	ctx := context.Background()

	s.Tick(ctx)
	s.Tick(ctx)

	test.That(t, s.Stats().RenderErrors, test.ShouldEqual, uint64(2))
	test.That(t, logs.FilterMessage("render failed").Len(), test.ShouldEqual, 1)
}

func TestStatsAreLoggedPerInterval(t *testing.T) {
	fx := newFixture(1, 1, 0)
	core, logs := observer.New(zap.InfoLevel)
	s := fx.scheduler(WithLogger(zap.New(core)), WithStatsInterval(time.Second))
	ctx := context.Background()

	s.Tick(ctx)
	fx.clk.Add(500 * time.Millisecond)
	s.Tick(ctx)
	test.That(t, logs.FilterMessage("simulation stats").Len(), test.ShouldEqual, 0)

	fx.clk.Add(600 * time.Millisecond)
	s.Tick(ctx)
	test.That(t, logs.FilterMessage("simulation stats").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("simulation started").Len(), test.ShouldEqual, 1)
}

func TestRendererFunc(t *testing.T) {
	called := false
	var r Renderer = RendererFunc(func(context.Context, *Frame) error {
		called = true
		return nil
	})
	test.That(t, r.Render(context.Background(), &Frame{}), test.ShouldBeNil)
	test.That(t, called, test.ShouldBeTrue)
}

func TestStarDriftIndependentOfTickRate(t *testing.T) {
	displacement := func(hz float64) float32 {
		fx := newFixture(5, 0, 1)
		start := fx.store.Points()[0].Position
		s := fx.scheduler(WithTickRate(hz), WithMaxSteps(1000))
		ctx := context.Background()
		s.Tick(ctx)
		fx.clk.Add(200 * time.Millisecond)
		s.Tick(ctx)
		return fx.store.Points()[0].Position.Sub(start).Len()
	}
	d60 := displacement(60)
	test.That(t, d60, test.ShouldBeGreaterThan, float32(0.1))
	test.That(t, displacement(120), test.ShouldAlmostEqual, d60, 0.005)
	test.That(t, displacement(240), test.ShouldAlmostEqual, d60, 0.005)
}

func TestTickRateIsClamped(t *testing.T) {
	fx := newFixture(1, 1, 1)
	s := fx.scheduler(WithTickRate(2e9))
	test.That(t, s.StepDuration(), test.ShouldEqual, time.Millisecond)

	ctx := context.Background()
	s.Tick(ctx)
	fx.clk.Add(time.Second)
	f := s.Tick(ctx)
	test.That(t, f.Context.Steps, test.ShouldEqual, 5)
	test.That(t, s.Stats().DroppedSteps, test.ShouldEqual, uint64(995))
}

func TestFallingBehindIsNotLoggedPerTick(t *testing.T) {
	fx := newFixture(1, 1, 0)
	core, logs := observer.New(zap.DebugLevel)
	s := fx.scheduler(WithLogger(zap.New(core)), WithMaxSteps(1), WithStatsInterval(time.Hour))
	ctx := context.Background()

	s.Tick(ctx)
	for i := 0; i < 10; i++ {
		fx.clk.Add(100 * time.Millisecond)
		s.Tick(ctx)
	}
	test.That(t, s.Stats().DroppedSteps, test.ShouldBeGreaterThan, uint64(0))
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	test.That(t, logs.All()[0].Message, test.ShouldEqual, "simulation started")
}
