package render

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"bingo-scene/internal/frame"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	// Text is rebuilt every N frames to limit allocations.
	overlayRefresh = 30
)

// overlay draws FPS and simulation counters in the top-right corner. Everything is off by default.
type overlay struct {
	showFPS   bool
	showStats bool
	font      rl.Font // zero texture ID means the raylib default font
	frames    uint32
	lines     []string
	mem       runtime.MemStats
}

func (o *overlay) draw(f *frame.Frame) {
	if !o.showFPS && !o.showStats {
		return
	}
	o.frames++
	if o.lines == nil || o.frames%overlayRefresh == 0 {
		o.lines = o.lines[:0]
		if o.showFPS {
			o.lines = append(o.lines, fmt.Sprintf("FPS: %d", rl.GetFPS()))
		}
		if o.showStats {
			runtime.ReadMemStats(&o.mem)
			o.lines = append(o.lines,
				fmt.Sprintf("Balls: %d (settled %d)", len(f.Bodies), f.Stats.Settled),
				fmt.Sprintf("Stars: %d", len(f.Points)),
				fmt.Sprintf("Camera: %s", f.Context.Mode),
				fmt.Sprintf("Respawns: %d  Dropped: %d", f.Stats.Respawns, f.Stats.DroppedSteps),
				fmt.Sprintf("Mem: %.2f MiB", float64(o.mem.Alloc)/(1024*1024)),
			)
		}
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(overlayPadding)
	for _, text := range o.lines {
		if o.font.Texture.ID != 0 {
			sz := float32(overlayFontSize)
			pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(o.font, text, sz, 1).X-overlayPadding, float32(y))
			rl.DrawTextEx(o.font, text, pos, sz, 1, rl.Green)
		} else {
			w := rl.MeasureText(text, overlayFontSize)
			rl.DrawText(text, screenW-w-overlayPadding, y, overlayFontSize, rl.Green)
		}
		y += overlayLineHeight
	}
}

// loadFont replaces the default font with a TTF/OTF file. Failures keep the default.
func (o *overlay) loadFont(path string) bool {
	if path == "" {
		return false
	}
	f := rl.LoadFontEx(path, overlayFontSize*2, nil)
	if f.Texture.ID == 0 {
		return false
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	o.font = f
	return true
}

func (o *overlay) unload() {
	if o.font.Texture.ID != 0 {
		rl.UnloadFont(o.font)
		o.font = rl.Font{}
	}
}
