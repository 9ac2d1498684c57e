package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"bingo-scene/internal/asset"
)

// pendingTexture uploads a decoded image once its handle is ready. Decoding happens off
// the render thread; the GPU upload must happen on it, after the GL context exists.
type pendingTexture struct {
	name   string
	handle *asset.Handle
	tex    rl.Texture2D
	aspect float32
	state  asset.State
}

func newPendingTexture(name string, h *asset.Handle) *pendingTexture {
	t := &pendingTexture{name: name, handle: h, state: asset.Pending}
	if h == nil {
		t.state = asset.Failed
	}
	return t
}

// poll uploads the texture the first time the handle reports Ready and returns whether a
// valid texture is available. A failed handle leaves the caller on its fallback.
func (t *pendingTexture) poll(log *zap.Logger) bool {
	if t.state != asset.Pending {
		return t.state == asset.Ready
	}
	img, st := t.handle.Poll()
	switch st {
	case asset.Pending:
		return false
	case asset.Failed:
		t.state = asset.Failed
		log.Debug("texture unavailable, using flat colour", zap.String("texture", t.name), zap.Error(t.handle.Err()))
		return false
	}

	b := img.Bounds()
	cimg := rl.NewImageFromImage(img)
	t.tex = rl.LoadTextureFromImage(cimg)
	rl.UnloadImage(cimg)
	if !rl.IsTextureValid(t.tex) {
		t.state = asset.Failed
		log.Warn("texture upload failed, using flat colour", zap.String("texture", t.name))
		return false
	}
	rl.GenTextureMipmaps(&t.tex)
	rl.SetTextureFilter(t.tex, rl.FilterTrilinear)
	t.aspect = float32(b.Dx()) / float32(b.Dy())
	t.state = asset.Ready
	log.Info("texture uploaded", zap.String("texture", t.name), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return true
}

func (t *pendingTexture) unload() {
	if t.state == asset.Ready {
		rl.UnloadTexture(t.tex)
	}
}
