package camera

import (
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.viam.com/test"
)

func TestPathStartsAtBaseline(t *testing.T) {
	p := DefaultPath()
	pos := p.At(0)

	test.That(t, pos.X(), test.ShouldEqual, float32(0))
	test.That(t, pos.Y(), test.ShouldEqual, p.Height)
	test.That(t, pos.Z(), test.ShouldEqual, p.Distance+p.AmplitudeZ)
}

func TestPathPeaksAtQuarterPeriod(t *testing.T) {
	p := DefaultPath()
	pos := p.At(p.QuarterPeriodX())

	test.That(t, pos.X(), test.ShouldAlmostEqual, p.AmplitudeX, 1e-4)
}

func TestPathIsPureFunctionOfTime(t *testing.T) {
	p := DefaultPath()
	test.That(t, p.At(12345), test.ShouldResemble, p.At(12345))
	test.That(t, p.At(12345), test.ShouldNotResemble, p.At(54321))
}

func TestQuarterPeriodWithoutOscillation(t *testing.T) {
	p := Path{}
	test.That(t, p.QuarterPeriodX(), test.ShouldEqual, 0.0)
	test.That(t, p.At(1e6), test.ShouldResemble, mgl32.Vec3{0, 0, 0})
}

func TestControllerFollowsPathWhileScripted(t *testing.T) {
	p := DefaultPath()
	c := NewController(p)

	test.That(t, c.Sync(), test.ShouldEqual, Scripted)
	st := c.Update(2000)
	test.That(t, st.Position, test.ShouldResemble, p.At(2000))
	test.That(t, st.Mode, test.ShouldEqual, Scripted)
}

func TestControllerOrbitSupersedesPath(t *testing.T) {
	p := DefaultPath()
	c := NewController(p)
	c.Update(1000)

	c.RequestOrbit()
	// The request only takes effect on the next Sync.
	test.That(t, c.Mode(), test.ShouldEqual, Scripted)
	test.That(t, c.Sync(), test.ShouldEqual, UserControlled)

	st := c.Update(5000)
	test.That(t, st.Position, test.ShouldResemble, p.At(1000))
	test.That(t, st.Mode, test.ShouldEqual, UserControlled)

	// No reverse transition.
	test.That(t, c.Sync(), test.ShouldEqual, UserControlled)
	test.That(t, c.State().Mode, test.ShouldEqual, UserControlled)
}

func TestRequestOrbitConcurrently(t *testing.T) {
	c := NewController(DefaultPath())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RequestOrbit()
		}()
	}
	wg.Wait()
	test.That(t, c.Sync(), test.ShouldEqual, UserControlled)
}

func TestModeString(t *testing.T) {
	test.That(t, Scripted.String(), test.ShouldEqual, "scripted")
	test.That(t, UserControlled.String(), test.ShouldEqual, "user")
	test.That(t, Mode(9).String(), test.ShouldEqual, "unknown")
}

func TestProjectionResize(t *testing.T) {
	p := DefaultProjection(1600, 900)
	test.That(t, p.Aspect, test.ShouldAlmostEqual, 16.0/9.0, 1e-6)

	test.That(t, p.Resize(0, 900), test.ShouldBeFalse)
	test.That(t, p.Aspect, test.ShouldAlmostEqual, 16.0/9.0, 1e-6)

	test.That(t, p.Resize(800, 800), test.ShouldBeTrue)
	test.That(t, p.Aspect, test.ShouldEqual, float32(1))
}

func TestOrbitRoundTripsPosition(t *testing.T) {
	pos := mgl32.Vec3{10, 5, 30}
	o := NewOrbit(pos, mgl32.Vec3{})
	got := o.Position()
	for i := 0; i < 3; i++ {
		test.That(t, got[i], test.ShouldAlmostEqual, pos[i], 1e-4)
	}
}

func TestOrbitClampsPitchAndRadius(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})
	o.Rotate(0, 1e6)
	test.That(t, o.Pitch, test.ShouldBeLessThan, math32.Pi/2)
	test.That(t, o.Position().Y(), test.ShouldBeLessThan, float32(10))

	o.Zoom(100)
	test.That(t, o.Radius, test.ShouldEqual, float32(orbitMinRadius))
	o.Zoom(-1e4)
	test.That(t, o.Radius, test.ShouldEqual, float32(orbitMaxRadius))
}

func TestOrbitKeepsDistanceWhileRotating(t *testing.T) {
	target := mgl32.Vec3{1, 2, 3}
	o := NewOrbit(mgl32.Vec3{1, 2, 23}, target)
	o.Rotate(120, -40)
	test.That(t, o.Position().Sub(target).Len(), test.ShouldAlmostEqual, 20, 1e-4)
}

func TestControllerOrbitOnlyWhenUserControlled(t *testing.T) {
	p := DefaultPath()
	c := NewController(p)
	c.Update(1000)
	start := c.State().Position

	test.That(t, c.Orbit(50, 0, 0).Position, test.ShouldResemble, start)

	c.RequestOrbit()
	c.Sync()
	st := c.Orbit(0, 0, 0)
	for i := 0; i < 3; i++ {
		test.That(t, st.Position[i], test.ShouldAlmostEqual, start[i], 1e-3)
	}
	st = c.Orbit(100, 0, 0)
	test.That(t, st.Position.Sub(start).Len(), test.ShouldBeGreaterThan, float32(0.1))
	test.That(t, st.Mode, test.ShouldEqual, UserControlled)
}

func TestProjectionMatrixFollowsAspect(t *testing.T) {
	p := DefaultProjection(800, 800)
	square := p.Matrix()
	test.That(t, square[0], test.ShouldAlmostEqual, square[5], 1e-6)

	p.Resize(1600, 800)
	wide := p.Matrix()
	test.That(t, wide[0], test.ShouldAlmostEqual, square[0]/2, 1e-6)
	test.That(t, wide[5], test.ShouldAlmostEqual, square[5], 1e-6)
	// Near/far only affect the depth terms.
	test.That(t, wide[10], test.ShouldAlmostEqual, -(p.Far+p.Near)/(p.Far-p.Near), 1e-6)
}
