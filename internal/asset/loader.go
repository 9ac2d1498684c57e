package asset

import (
	"context"
	"image"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	// Extra decoders for textures that are not PNG/JPEG.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxSize caps the longest edge of a decoded texture.
const DefaultMaxSize = 2048

// State is the lifecycle of an asynchronously loaded image.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle is the result of one Load. Poll it from the frame loop; it never blocks.
type Handle struct {
	Path string

	mu    sync.Mutex
	state State
	img   image.Image
	err   error
	done  chan struct{}
}

// Poll returns the decoded image once Ready. A Failed handle returns a nil image and the
// caller keeps its fallback.
func (h *Handle) Poll() (image.Image, State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.img, h.state
}

// Err returns the load error of a Failed handle.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Done is closed when the handle leaves Pending.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) finish(img image.Image, err error) {
	h.mu.Lock()
	if err != nil {
		h.state, h.err = Failed, err
	} else {
		h.state, h.img = Ready, img
	}
	h.mu.Unlock()
	close(h.done)
}

// Loader decodes images off the frame goroutine. GPU upload is left to the renderer,
// which must do it on the thread that owns the graphics context.
type Loader struct {
	MaxSize int
	log     *zap.Logger
}

// NewLoader returns a loader that logs failures to log.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{MaxSize: DefaultMaxSize, log: log}
}

// Load starts decoding path in the background and returns immediately. An empty path yields
// a Failed handle so callers fall back without special casing.
func (l *Loader) Load(ctx context.Context, path string) *Handle {
	h := &Handle{Path: path, done: make(chan struct{})}
	if path == "" {
		h.finish(nil, errors.New("no texture configured"))
		return h
	}
	go func() {
		img, err := l.decode(ctx, path)
		if err != nil {
			l.log.Warn("texture unavailable, using flat colour", zap.String("path", path), zap.Error(err))
		} else {
			b := img.Bounds()
			l.log.Debug("texture decoded", zap.String("path", path), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
		}
		h.finish(img, err)
	}()
	return h
}

func (l *Loader) decode(ctx context.Context, path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "texture load cancelled")
	}
	return l.fit(img), nil
}

// fit downsizes img so its longest edge is at most MaxSize, keeping the aspect ratio.
func (l *Loader) fit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if l.MaxSize <= 0 || (w <= l.MaxSize && h <= l.MaxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*l.MaxSize/w)
		w = l.MaxSize
	} else {
		w = max(1, w*l.MaxSize/h)
		h = l.MaxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}
