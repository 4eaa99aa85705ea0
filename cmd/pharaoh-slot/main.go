// Command pharaoh-slot is the terminal slot machine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/pharaoh-slot/audio"
	"github.com/lixenwraith/pharaoh-slot/audio/device"
	"github.com/lixenwraith/pharaoh-slot/config"
	"github.com/lixenwraith/pharaoh-slot/core"
	"github.com/lixenwraith/pharaoh-slot/engine"
	"github.com/lixenwraith/pharaoh-slot/event"
	"github.com/lixenwraith/pharaoh-slot/game"
	"github.com/lixenwraith/pharaoh-slot/logger"
	"github.com/lixenwraith/pharaoh-slot/metrics"
	"github.com/lixenwraith/pharaoh-slot/parameter"
	"github.com/lixenwraith/pharaoh-slot/random"
	"github.com/lixenwraith/pharaoh-slot/render"
	"github.com/lixenwraith/pharaoh-slot/status"
)

func main() {
	// Panic recovery: ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "pharaoh-slot: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load("pharaoh-slot", args)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		App:   "pharaoh-slot",
		Dir:   cfg.LogDir,
		Level: cfg.LogLevel,
		Debug: cfg.Debug,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	core.RegisterCrashLogger(func(r any, stack []byte) {
		log.Error("crash", zap.Any("panic", r), zap.ByteString("stack", stack))
		_ = log.Sync()
	})

	// Initialize terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterCrashTerminal(screen)
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	// Audio is optional; the game runs silent without a device
	var cues audio.Player
	speaker := device.NewSpeaker(log.Named("audio"))
	if err := speaker.Init(); err != nil {
		log.Warn("audio init failed, continuing without audio", zap.Error(err))
		cues = &audio.NullPlayer{}
	} else {
		defer speaker.Close()
		cues = speaker
	}
	cues.SetMuted(cfg.Mute)

	rng, seed := random.NewRand(cfg.Seed)
	log.Info("starting",
		zap.Uint64("seed", seed),
		zap.Int("attempts", cfg.Attempts),
		zap.Int("reels", cfg.Reels),
	)

	queue := event.NewEventQueue()
	reg := status.NewRegistry()
	eng := game.NewEngine(cfg.Game(), rng, cues, queue, reg, log.Named("game"))

	collector := metrics.NewCollector()
	clock := engine.NewPausableClock()

	// Create frame synchronization channel
	frameReady := make(chan struct{}, 1)
	scheduler, updateDone := engine.NewClockScheduler(eng, clock, queue, reg, cfg.TickInterval, frameReady)
	scheduler.RegisterEventHandler(game.NewHandler(eng))
	scheduler.RegisterEventHandler(collector)

	// Signal initial frame ready
	frameReady <- struct{}{}
	scheduler.Start()
	defer scheduler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return collector.Serve(gctx, cfg.MetricsAddr, log.Named("metrics"))
		})
	}

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-gctx.Done():
				return
			}
		}
	})

	renderer := render.NewRenderer(screen)
	loopErr := frameLoop(gctx, loop{
		screen:     screen,
		renderer:   renderer,
		game:       eng,
		queue:      queue,
		scheduler:  scheduler,
		clock:      clock,
		cues:       cues,
		reg:        reg,
		events:     eventChan,
		frameReady: frameReady,
		updateDone: updateDone,
		log:        log,
	})

	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("metrics server", zap.Error(err))
	}
	log.Info("exiting")
	return loopErr
}

type loop struct {
	screen    tcell.Screen
	renderer  *render.Renderer
	game      *game.Engine
	queue     *event.EventQueue
	scheduler *engine.ClockScheduler
	clock     *engine.PausableClock
	cues      audio.Player
	reg       *status.Registry

	events     <-chan tcell.Event
	frameReady chan<- struct{}
	updateDone <-chan struct{}

	log *zap.Logger
}

// frameLoop renders at the frame rate and turns terminal events into game events until quit
func frameLoop(ctx context.Context, l loop) error {
	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-l.events:
			switch actionFor(ev) {
			case actionQuit:
				return nil
			case actionSpin:
				l.queue.Emit(event.EventSpinRequested, nil)
			case actionRestart:
				l.queue.Emit(event.EventRestartRequested, nil)
			case actionClick:
				_, y := ev.(*tcell.EventMouse).Position()
				_, h := l.screen.Size()
				var onEnd bool
				l.game.RunSafe(func() {
					onEnd = render.HitEndScreen(render.Frame{Scene: l.game.Context().Scene}, h, y)
				})
				if onEnd {
					l.queue.Emit(event.EventRestartRequested, nil)
				} else {
					l.queue.Emit(event.EventSpinRequested, nil)
				}
			case actionMute:
				l.cues.SetMuted(!l.cues.Muted())
				l.log.Debug("mute toggled", zap.Bool("muted", l.cues.Muted()))
			case actionPause:
				paused := l.clock.Toggle()
				l.log.Debug("pause toggled", zap.Bool("paused", paused))
			case actionResize:
				l.screen.Sync()
			}
			// Dispatch input events immediately, bypassing the tick wait
			l.scheduler.DispatchEventsImmediately()

		case <-frameTicker.C:
			select {
			case <-l.updateDone:
			default:
			}

			l.game.RunSafe(func() {
				c := l.game.Context()
				l.renderer.Draw(render.Frame{
					Scene:  c.Scene,
					Reels:  c.Reels,
					Status: l.reg.Line(status.KeyAttempts, status.KeySpins, status.KeyWins, status.KeyStatus, status.KeyOutcome),
					Paused: l.clock.IsPaused(),
					Muted:  l.cues.Muted(),
				})
			})
			l.renderer.Show()

			// Signal ready for next update (non-blocking)
			select {
			case l.frameReady <- struct{}{}:
			default:
			}
		}
	}
}
