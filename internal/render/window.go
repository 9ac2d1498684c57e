package render

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"bingo-scene/internal/asset"
	"bingo-scene/internal/camera"
	"bingo-scene/internal/frame"
)

const (
	ballRadius   = 1
	starRadius   = 0.25
	sphereRings  = 24
	sphereSlices = 24
	starRings    = 6
	starSlices   = 6
	// Minimum drag, in pixels, before a press counts as an orbit gesture.
	dragThreshold = 2
)

var (
	ballColour = rl.NewColor(230, 200, 60, 255)
	starColour = rl.White
	lightDir   = [3]float32{0.5, 1, 0.5}
)

// Options configure the window.
type Options struct {
	Width     int
	Height    int
	Title     string
	TargetFPS int
	ShowFPS   bool
	ShowStats bool
	// Font is an optional TTF/OTF file for the overlay.
	Font string
	Fovy float32
}

// Window is the raylib render boundary. It owns the GL context and every GPU resource, so
// all of its methods must run on the goroutine that called Run.
type Window struct {
	opts Options
	log  *zap.Logger
	ctrl *camera.Controller
	proj camera.Projection

	cam     rl.Camera3D
	ballTex *pendingTexture
	sky     background
	overlay overlay

	ready     bool
	lit       litShader
	litOK     bool
	ballMesh  rl.Mesh
	ballMtl   rl.Material
	starMesh  rl.Mesh
	starMtl   rl.Material
	dragging  bool
	dragMoved bool
}

// NewWindow prepares a window. Textures are uploaded once their handles resolve; nil handles
// fall back to flat colours.
func NewWindow(opts Options, ctrl *camera.Controller, ballTex, background *asset.Handle, log *zap.Logger) *Window {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 60
	}
	w := &Window{
		opts:    opts,
		log:     log,
		ctrl:    ctrl,
		proj:    camera.DefaultProjection(opts.Width, opts.Height),
		ballTex: newPendingTexture("ball", ballTex),
		overlay: overlay{showFPS: opts.ShowFPS, showStats: opts.ShowStats},
	}
	if opts.Fovy > 0 {
		w.proj.Fovy = opts.Fovy
	}
	w.sky.tex = newPendingTexture("background", background)
	w.cam.Up = rl.NewVector3(0, 1, 0)
	w.cam.Fovy = w.proj.Fovy
	w.cam.Projection = rl.CameraPerspective
	return w
}

// Run opens the window and calls tick once per display refresh until the window is closed
// or ctx is cancelled. tick is expected to end up in Render.
func (w *Window) Run(ctx context.Context, tick func(context.Context)) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.opts.Width), int32(w.opts.Height), w.opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(w.opts.TargetFPS))
	w.init()
	defer w.unload()

	w.log.Info("window opened",
		zap.Int("width", rl.GetScreenWidth()),
		zap.Int("height", rl.GetScreenHeight()),
		zap.Int("target_fps", w.opts.TargetFPS),
	)
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return
		}
		w.handleInput()
		tick(ctx)
	}
	w.log.Info("window closed")
}

func (w *Window) init() {
	w.ballMesh = rl.GenMeshSphere(ballRadius, sphereRings, sphereSlices)
	w.ballMtl = rl.LoadMaterialDefault()
	w.lit, w.litOK = loadLitShader()
	if w.litOK {
		w.ballMtl.Shader = w.lit.shader
	} else {
		w.log.Warn("lit shader failed to compile, balls drawn unlit")
	}
	w.proj.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	w.starMesh = rl.GenMeshSphere(starRadius, starRings, starSlices)
	w.starMtl = rl.LoadMaterialDefault()
	if m := w.starMtl.GetMap(rl.MapAlbedo); m != nil {
		m.Color = starColour
	}
	if w.opts.Font != "" && !w.overlay.loadFont(w.opts.Font) {
		w.log.Warn("overlay font not loaded, using default", zap.String("font", w.opts.Font))
	}
	w.ready = true
}

func (w *Window) unload() {
	w.sky.unload()
	w.ballTex.unload()
	w.overlay.unload()
	rl.UnloadMesh(&w.ballMesh)
	rl.UnloadMesh(&w.starMesh)
	if w.litOK {
		rl.UnloadShader(w.lit.shader)
	}
	w.ready = false
}

// handleInput turns a left-button drag into orbit control. The first drag hands the camera
// over to the user; later drags and the wheel move the orbit.
func (w *Window) handleInput() {
	if w.ctrl == nil {
		return
	}
	wheel := rl.GetMouseWheelMove()
	var dx, dy float32
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		if !w.dragging {
			w.dragging = true
			w.dragMoved = false
		}
		if !w.dragMoved && mgl32.Abs(d.X)+mgl32.Abs(d.Y) >= dragThreshold {
			w.dragMoved = true
			if w.ctrl.Mode() == camera.Scripted {
				w.ctrl.RequestOrbit()
				w.log.Info("orbit control requested")
			}
		}
		if w.dragMoved {
			dx, dy = d.X, d.Y
		}
	} else {
		w.dragging = false
	}
	if dx != 0 || dy != 0 || wheel != 0 {
		w.ctrl.Orbit(dx, dy, wheel)
	}
}

// Render draws one frame. It implements frame.Renderer.
func (w *Window) Render(ctx context.Context, f *frame.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !w.ready {
		return errNotOpen
	}
	if rl.IsWindowResized() {
		sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
		if w.proj.Resize(sw, sh) {
			w.log.Debug("viewport resized", zap.Int("width", sw), zap.Int("height", sh), zap.Float32("aspect", w.proj.Aspect))
		}
	}
	w.cam.Position = vec3(f.Camera.Position)
	w.cam.Target = vec3(f.Camera.Target)
	w.cam.Fovy = w.proj.Fovy

	textured := w.ballTex.poll(w.log)
	if textured {
		rl.SetMaterialTexture(&w.ballMtl, rl.MapAlbedo, w.ballTex.tex)
	}
	if m := w.ballMtl.GetMap(rl.MapAlbedo); m != nil {
		if textured {
			m.Color = rl.White
		} else {
			m.Color = ballColour
		}
	}
	if w.litOK {
		p := f.Camera.Position
		w.lit.setView([3]float32{p.X(), p.Y(), p.Z()}, lightDir, textured)
	}

	rl.BeginDrawing()
	rl.ClearBackground(spaceColour)
	rl.BeginMode3D(w.cam)
	// BeginMode3D builds its own projection with fixed clip planes; replace it with ours.
	rl.SetMatrixProjection(matrix(w.proj.Matrix()))
	w.sky.draw(w.log, w.cam)
	for i := range f.Points {
		pos := f.Points[i].Transform.Position
		rl.DrawMesh(w.starMesh, w.starMtl, rl.MatrixTranslate(pos.X(), pos.Y(), pos.Z()))
	}
	for i := range f.Bodies {
		tr := f.Bodies[i].Transform
		model := rl.MatrixMultiply(
			rl.MatrixRotateXYZ(vec3(tr.Rotation)),
			rl.MatrixTranslate(tr.Position.X(), tr.Position.Y(), tr.Position.Z()),
		)
		rl.DrawMesh(w.ballMesh, w.ballMtl, model)
	}
	rl.EndMode3D()
	w.overlay.draw(f)
	rl.EndDrawing()
	return nil
}

func matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
