// Package main runs the bingo ball scene.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"bingo-scene/internal/ambient"
	"bingo-scene/internal/asset"
	"bingo-scene/internal/camera"
	"bingo-scene/internal/config"
	"bingo-scene/internal/entity"
	"bingo-scene/internal/env"
	"bingo-scene/internal/frame"
	"bingo-scene/internal/logger"
	"bingo-scene/internal/physics"
	"bingo-scene/internal/render"
)

const (
	flagConfig     = "config"
	flagBalls      = "balls"
	flagStars      = "stars"
	flagSeed       = "seed"
	flagTexture    = "texture"
	flagBackground = "background"
	flagParallel   = "parallel"
	flagDebug      = "debug"
)

func main() {
	app := &cli.App{
		Name:  "scene",
		Usage: "bouncing bingo balls under a drifting star field",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "load configuration from `FILE`",
			},
			&cli.IntFlag{Name: flagBalls, Usage: "number of balls"},
			&cli.IntFlag{Name: flagStars, Usage: "number of background stars"},
			&cli.Uint64Flag{Name: flagSeed, Usage: "random seed, 0 for time-based"},
			&cli.StringFlag{Name: flagTexture, Usage: "ball texture `FILE`"},
			&cli.StringFlag{Name: flagBackground, Usage: "background panorama `FILE`"},
			&cli.BoolFlag{Name: flagParallel, Usage: "run the body and star passes concurrently"},
			&cli.BoolFlag{Name: flagDebug, Usage: "enable debug logging"},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:  "init-config",
				Usage: "write the default configuration to the --config path",
				Action: func(c *cli.Context) error {
					path := c.String(flagConfig)
					if err := config.Save(path, config.Default()); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "scene:", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return cfg, err
	}
	o := config.Overrides{
		Balls:       c.Int(flagBalls),
		Stars:       c.Int(flagStars),
		Seed:        c.Uint64(flagSeed),
		BallTexture: c.String(flagTexture),
		Background:  c.String(flagBackground),
		Parallel:    c.Bool(flagParallel),
	}
	if c.Bool(flagDebug) {
		o.LogLevel = "debug"
	}
	if err := cfg.Apply(o); err != nil {
		return cfg, err
	}
	return cfg, errors.Wrap(cfg.Validate(), "invalid configuration")
}

func run(c *cli.Context) error {
	loaded, err := env.Load(".env")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, closer, err := logger.Stderr(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.Debug("environment loaded", zap.Int("variables", loaded))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := physics.NewSource(cfg.Seed)
	bounds := cfg.Bounds()
	spawner := physics.NewSpawner(bounds, cfg.SpawnRanges(), src)
	store := entity.NewStore(cfg.Balls, cfg.Stars)
	for i := 0; i < cfg.Balls; i++ {
		store.AddBody(spawner.NewBody())
	}
	ambient.Scatter(store, cfg.Stars, cfg.StarSpread, src)
	world := physics.NewWorld(bounds, spawner, src)
	ctrl := camera.NewController(cfg.Path())

	loader := asset.NewLoader(log.Named("asset"))
	loader.MaxSize = cfg.MaxTexture
	win := render.NewWindow(render.Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		TargetFPS: cfg.Window.TargetFPS,
		ShowFPS:   cfg.Window.ShowFPS,
		ShowStats: cfg.Window.ShowStats,
		Font:      cfg.Window.Font,
		Fovy:      cfg.Camera.Fovy,
	}, ctrl, loader.Load(ctx, cfg.BallTexture), loader.Load(ctx, cfg.Background), log.Named("render"))

	sched := frame.New(store, world, ctrl, win,
		frame.WithLogger(log.Named("frame")),
		frame.WithTickRate(cfg.TickRate),
		frame.WithMaxSteps(cfg.MaxSteps),
		frame.WithParallelPasses(cfg.Parallel),
		frame.WithOrbitAttachAfter(cfg.OrbitAttachAfter),
		frame.WithStatsInterval(cfg.StatsInterval),
		frame.WithDrift(cfg.Drift()),
	)
	win.Run(ctx, func(ctx context.Context) {
		sched.Tick(ctx)
	})

	st := sched.Stats()
	log.Info("scene finished",
		zap.Uint64("ticks", st.Ticks),
		zap.Uint64("steps", st.Steps),
		zap.Uint64("respawns", st.Respawns),
		zap.Uint64("render_errors", st.RenderErrors),
	)
	return nil
}
