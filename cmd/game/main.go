// cmd/game/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"go-ball-capture/internal/app"
	"go-ball-capture/internal/assets"
	"go-ball-capture/internal/audio"
	"go-ball-capture/internal/backdrop"
	"go-ball-capture/internal/config"
	"go-ball-capture/internal/logging"
	"go-ball-capture/internal/state"
	"go-ball-capture/internal/term"
	"go-ball-capture/internal/topdown"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	mode       string
	hz         int
	ticks      uint64
	drag       string
	logLevel   string
	logFile    string
	jsonLog    bool
	mute       bool
}

func main() {
	// --- Флаги командной строки ---
	var opts options
	flag.StringVar(&opts.configPath, "config", "configs/scene.yaml", "scene config file (.yaml, .json or .toml), empty for built-in defaults")
	flag.StringVar(&opts.mode, "mode", "window", "frontend: window, ebiten, term or headless")
	flag.IntVar(&opts.hz, "hz", config.TargetFPS, "tick rate for ebiten, term and headless modes")
	flag.Uint64Var(&opts.ticks, "ticks", 0, "headless: stop after this many ticks, 0 runs until interrupted")
	flag.StringVar(&opts.drag, "drag", "", "headless: scripted drag x0,y0,x1,y1 in pixels of a 1280x720 viewport")
	flag.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error; overrides the config")
	flag.StringVar(&opts.logFile, "log-file", "ball-capture.log", "term: log destination")
	flag.BoolVar(&opts.jsonLog, "json-log", false, "headless: JSON log lines")
	flag.BoolVar(&opts.mute, "mute", false, "disable audio cues")
	flag.Parse()

	if err := run(opts); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "ball-capture: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	scene := config.DefaultScene()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		scene = loaded
	}
	level := scene.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}

	var (
		logger *zap.Logger
		err    error
	)
	if opts.mode == "term" {
		logger, err = logging.ToFile(level, opts.logFile)
	} else {
		logger, err = logging.New(level, opts.jsonLog)
	}
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", zap.String("mode", opts.mode), zap.String("config", opts.configPath))
	switch opts.mode {
	case "window":
		return runWindow(scene, opts, logger)
	case "ebiten":
		return runEbiten(ctx, scene, opts, logger)
	case "term":
		return runTerm(ctx, scene, opts, logger)
	case "headless":
		return runHeadless(ctx, scene, opts, logger)
	default:
		return errors.Errorf("unknown mode %q", opts.mode)
	}
}

// loadBackground returns nil when the image is missing; the frontends fall
// back to a solid color.
func loadBackground(path string, logger *zap.Logger) image.Image {
	if path == "" {
		return nil
	}
	img, err := backdrop.Load(path)
	if err != nil {
		logger.Warn("background not loaded", zap.Error(err))
		return nil
	}
	return img
}

func attachAudio(game *app.Game, scene config.Scene, opts options, logger *zap.Logger) func() {
	if opts.mute || !scene.Audio.Enabled {
		return func() {}
	}
	sounds := audio.NewSoundManager(scene.Audio.Volume, logger)
	if err := sounds.Initialize(); err != nil {
		// Без звука игра всё равно работает
		logger.Warn("audio initialization failed", zap.Error(err))
		return func() {}
	}
	game.EventDispatcher.SubscribeAll(sounds)
	return func() {
		game.EventDispatcher.UnsubscribeAll(sounds)
		sounds.Cleanup()
	}
}

func runWindow(scene config.Scene, opts options, logger *zap.Logger) error {
	// --- Инициализация Raylib ---
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(config.ScreenWidth, config.ScreenHeight, "Ball Capture")
	defer rl.CloseWindow()
	rl.SetTargetFPS(config.TargetFPS)

	font := rl.GetFontDefault()
	models := assets.NewModelManager(logger)
	source := app.NewFallbackSource(models, app.ProceduralSource{}, logger)
	game := app.NewGame(scene, source, logger)
	defer attachAudio(game, scene, opts, logger)()

	renderer := state.NewSceneRenderer(game, models, loadBackground(scene.Background, logger))

	sm := state.NewStateMachine()
	sm.SetState(state.NewGameState(sm, game, models, renderer, font, logger))
	defer func() {
		// Пауза тоже умеет очищать: она делегирует игровому состоянию
		if c, ok := sm.Current().(interface{ Cleanup() }); ok {
			c.Cleanup()
		}
	}()

	// --- Главный цикл ---
	for !rl.WindowShouldClose() {
		sm.Update(float64(rl.GetFrameTime()))

		rl.BeginDrawing()
		sm.Draw()
		rl.EndDrawing()
	}
	return nil
}

func runEbiten(ctx context.Context, scene config.Scene, opts options, logger *zap.Logger) error {
	game := app.NewGame(scene, app.ProceduralSource{}, logger)
	defer game.Close()
	defer attachAudio(game, scene, opts, logger)()
	game.Start()

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Ball Capture")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.hz > 0 {
		ebiten.SetTPS(opts.hz)
	}
	return ebiten.RunGame(topdown.NewAppGame(ctx, game, loadBackground(scene.Background, logger), logger))
}

func runTerm(ctx context.Context, scene config.Scene, opts options, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	defer screen.Fini()

	game := app.NewGame(scene, app.ProceduralSource{}, logger)
	defer game.Close()
	defer attachAudio(game, scene, opts, logger)()

	view := term.NewView(screen, game, loadBackground(scene.Background, logger), logger)
	return view.Run(ctx, opts.hz)
}

func runHeadless(ctx context.Context, scene config.Scene, opts options, logger *zap.Logger) error {
	drag, err := app.ParseDrag(opts.drag)
	if err != nil {
		return err
	}

	game := app.NewGame(scene, app.ProceduralSource{}, logger)
	defer game.Close()

	report, err := app.RunHeadless(ctx, game, app.HeadlessConfig{
		Hz:    opts.hz,
		Ticks: opts.ticks,
		Drag:  drag,
	})
	fields := []zap.Field{
		zap.Uint64("ticks", report.Ticks),
		zap.String("phase", string(report.Phase)),
		zap.Duration("game_time", report.GameTime),
	}
	for typ, n := range report.Events {
		fields = append(fields, zap.Int(string(typ), n))
	}
	logger.Info("headless run finished", fields...)
	return err
}
