package config

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"bingo-scene/internal/ambient"
	"bingo-scene/internal/camera"
	"bingo-scene/internal/frame"
	"bingo-scene/internal/physics"
)

// DefaultPath is the scene config file, relative to the process working directory.
const DefaultPath = "config/scene.yaml"

// Config is the scene configuration. Values not present in the file keep their defaults.
type Config struct {
	Balls      int     `yaml:"balls"`
	Stars      int     `yaml:"stars"`
	StarSpread float32 `yaml:"star_spread"`
	// Seed drives every random draw; 0 picks a time-based seed.
	Seed uint64 `yaml:"seed"`

	TickRate         float64       `yaml:"tick_rate"`
	MaxSteps         int           `yaml:"max_steps"`
	Parallel         bool          `yaml:"parallel"`
	OrbitAttachAfter time.Duration `yaml:"orbit_attach_after"`
	StatsInterval    time.Duration `yaml:"stats_interval"`

	BallTexture string `yaml:"ball_texture"`
	Background  string `yaml:"background"`
	MaxTexture  int    `yaml:"max_texture_size"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	Physics Physics `yaml:"physics"`
	Ambient Ambient `yaml:"ambient"`
	Camera  Camera  `yaml:"camera"`
	Window  Window  `yaml:"window"`
}

// Physics holds arena bounds and spawn ranges.
type Physics struct {
	FloorLevel      float32 `yaml:"floor_level"`
	Boundary        float32 `yaml:"boundary"`
	Gravity         float32 `yaml:"gravity"`
	Damping         float32 `yaml:"damping"`
	SettleEpsilon   float32 `yaml:"settle_epsilon"`
	SettleTolerance float32 `yaml:"settle_tolerance"`
	RespawnChance   float32 `yaml:"respawn_chance"`

	SpawnSpread  float32    `yaml:"spawn_spread"`
	SpawnMinY    float32    `yaml:"spawn_min_y"`
	SpawnMaxY    float32    `yaml:"spawn_max_y"`
	SpawnSpeed   [3]float32 `yaml:"spawn_speed,flow"`
	RotationRate float32    `yaml:"rotation_rate"`
	BounceMin    float32    `yaml:"bounce_min"`
	BounceMax    float32    `yaml:"bounce_max"`
}

// Ambient holds the star drift oscillator.
type Ambient struct {
	Frequency float64 `yaml:"frequency"`
	Amplitude float32 `yaml:"amplitude"`
}

// Camera holds the scripted path and the perspective.
type Camera struct {
	AmplitudeX float32    `yaml:"amplitude_x"`
	FrequencyX float64    `yaml:"frequency_x"`
	AmplitudeZ float32    `yaml:"amplitude_z"`
	FrequencyZ float64    `yaml:"frequency_z"`
	Height     float32    `yaml:"height"`
	Distance   float32    `yaml:"distance"`
	Target     [3]float32 `yaml:"target,flow"`
	Fovy       float32    `yaml:"fovy"`
}

// Window holds render boundary preferences.
type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
	ShowFPS   bool   `yaml:"show_fps"`
	ShowStats bool   `yaml:"show_stats"`
	Font      string `yaml:"font"`
}

// Default returns the built-in scene: 15 balls, 200 stars, 60 Hz simulation.
func Default() Config {
	b := physics.DefaultBounds()
	r := physics.DefaultSpawnRanges()
	p := camera.DefaultPath()
	return Config{
		Balls:         15,
		Stars:         200,
		StarSpread:    100,
		TickRate:      60,
		MaxSteps:      5,
		StatsInterval: 10 * time.Second,
		BallTexture:   "assets/textures/ball.jpeg",
		Background:    "assets/skybox/space.jpg",
		MaxTexture:    2048,
		LogLevel:      "info",
		LogFile:       "logs/scene.log",
		Physics: Physics{
			FloorLevel:      b.FloorLevel,
			Boundary:        b.Boundary,
			Gravity:         b.Gravity,
			Damping:         b.Damping,
			SettleEpsilon:   b.SettleEpsilon,
			SettleTolerance: b.SettleTolerance,
			RespawnChance:   b.RespawnChance,
			SpawnSpread:     r.Spread,
			SpawnMinY:       r.MinY,
			SpawnMaxY:       r.MaxY,
			SpawnSpeed:      r.Speed,
			RotationRate:    r.RotationRate,
			BounceMin:       r.BounceMin,
			BounceMax:       r.BounceMax,
		},
		Ambient: Ambient{
			Frequency: ambient.DefaultFrequency,
			Amplitude: ambient.DefaultAmplitude,
		},
		Camera: Camera{
			AmplitudeX: p.AmplitudeX,
			FrequencyX: p.FrequencyX,
			AmplitudeZ: p.AmplitudeZ,
			FrequencyZ: p.FrequencyZ,
			Height:     p.Height,
			Distance:   p.Distance,
			Fovy:       75,
		},
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "bingo scene",
			TargetFPS: 60,
		},
	}
}

// Load reads path, expanding ${VAR} references from the environment, and decodes it over
// Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	buf, err := envsubst.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}

// Overrides are command-line values. Zero values mean "not set" and leave the config alone.
type Overrides struct {
	Balls       int
	Stars       int
	Seed        uint64
	TickRate    float64
	Parallel    bool
	BallTexture string
	Background  string
	LogLevel    string
}

// Apply overlays the non-zero fields of o onto c.
func (c *Config) Apply(o Overrides) error {
	return errors.Wrap(copier.CopyWithOption(c, &o, copier.Option{IgnoreEmpty: true}), "apply overrides")
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	check := func(ok bool, msg string, args ...interface{}) {
		if !ok {
			err = multierr.Append(err, errors.Errorf(msg, args...))
		}
	}
	check(c.Balls >= 0, "balls must be >= 0, got %d", c.Balls)
	check(c.Stars >= 0, "stars must be >= 0, got %d", c.Stars)
	check(c.StarSpread >= 0, "star_spread must be >= 0, got %v", c.StarSpread)
	check(c.TickRate > 0 && c.TickRate <= frame.MaxTickRate, "tick_rate must be in (0,%v], got %v", frame.MaxTickRate, c.TickRate)
	check(c.MaxSteps >= 1, "max_steps must be >= 1, got %d", c.MaxSteps)
	check(c.OrbitAttachAfter >= 0, "orbit_attach_after must be >= 0, got %v", c.OrbitAttachAfter)

	p := c.Physics
	check(p.Gravity < 0, "physics.gravity must be negative, got %v", p.Gravity)
	check(p.Boundary > 0, "physics.boundary must be > 0, got %v", p.Boundary)
	check(p.Damping > 0 && p.Damping <= 1, "physics.damping must be in (0,1], got %v", p.Damping)
	check(p.SettleEpsilon > 0, "physics.settle_epsilon must be > 0, got %v", p.SettleEpsilon)
	check(p.SettleTolerance >= 0, "physics.settle_tolerance must be >= 0, got %v", p.SettleTolerance)
	check(p.RespawnChance >= 0 && p.RespawnChance <= 1, "physics.respawn_chance must be in [0,1], got %v", p.RespawnChance)
	check(p.BounceMin > 0 && p.BounceMin <= 1, "physics.bounce_min must be in (0,1], got %v", p.BounceMin)
	check(p.BounceMax > 0 && p.BounceMax <= 1, "physics.bounce_max must be in (0,1], got %v", p.BounceMax)
	check(p.BounceMin <= p.BounceMax, "physics.bounce_min %v exceeds bounce_max %v", p.BounceMin, p.BounceMax)
	check(p.SpawnMinY <= p.SpawnMaxY, "physics.spawn_min_y %v exceeds spawn_max_y %v", p.SpawnMinY, p.SpawnMaxY)

	check(c.Camera.Fovy > 0 && c.Camera.Fovy < 180, "camera.fovy must be in (0,180), got %v", c.Camera.Fovy)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	return err
}

// Bounds returns the physics arena.
func (c Config) Bounds() physics.Bounds {
	p := c.Physics
	return physics.Bounds{
		FloorLevel:      p.FloorLevel,
		Boundary:        p.Boundary,
		Gravity:         p.Gravity,
		Damping:         p.Damping,
		SettleEpsilon:   p.SettleEpsilon,
		SettleTolerance: p.SettleTolerance,
		RespawnChance:   p.RespawnChance,
	}
}

// SpawnRanges returns the randomized spawn ranges.
func (c Config) SpawnRanges() physics.SpawnRanges {
	p := c.Physics
	return physics.SpawnRanges{
		Spread:       p.SpawnSpread,
		MinY:         p.SpawnMinY,
		MaxY:         p.SpawnMaxY,
		Speed:        mgl32.Vec3(p.SpawnSpeed),
		RotationRate: p.RotationRate,
		BounceMin:    p.BounceMin,
		BounceMax:    p.BounceMax,
	}
}

// Drift returns the ambient drift oscillator.
func (c Config) Drift() ambient.Drift {
	return ambient.Drift{Frequency: c.Ambient.Frequency, Amplitude: c.Ambient.Amplitude}
}

// Path returns the scripted camera path.
func (c Config) Path() camera.Path {
	cc := c.Camera
	return camera.Path{
		AmplitudeX: cc.AmplitudeX,
		FrequencyX: cc.FrequencyX,
		AmplitudeZ: cc.AmplitudeZ,
		FrequencyZ: cc.FrequencyZ,
		Height:     cc.Height,
		Distance:   cc.Distance,
		Target:     mgl32.Vec3(cc.Target),
	}
}

// Projection returns the perspective for the configured window size.
func (c Config) Projection() camera.Projection {
	p := camera.DefaultProjection(c.Window.Width, c.Window.Height)
	p.Fovy = c.Camera.Fovy
	return p
}
