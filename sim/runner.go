// Package sim plays whole sessions headlessly on the virtual clock to measure outcome rates.
package sim

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/pharaoh-slot/audio"
	"github.com/lixenwraith/pharaoh-slot/game"
	"github.com/lixenwraith/pharaoh-slot/parameter"
	"github.com/lixenwraith/pharaoh-slot/random"
	"github.com/lixenwraith/pharaoh-slot/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options configures a simulation run
type Options struct {
	Sessions int
	Workers  int
	MaxSpins int
	Seed     uint64

	Step    time.Duration // virtual tick
	Timeout time.Duration // virtual cap per session

	Game game.Config
}

// SessionResult is the tally of one simulated session
type SessionResult struct {
	Index     int
	Spins     int
	Wins      int
	Losses    int
	Fatals    int
	Over      bool
	Truncated bool
	Virtual   time.Duration
}

// Report aggregates every session of a run
type Report struct {
	Seed      uint64 `json:"seed"`
	Sessions  int    `json:"sessions"`
	Spins     int    `json:"spins"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	Fatals    int    `json:"fatals"`
	GameOvers int    `json:"game_overs"`
	Truncated int    `json:"truncated"`

	WinRate            float64 `json:"win_rate"`
	MeanSpins          float64 `json:"mean_spins_per_session"`
	MeanSessionSeconds float64 `json:"mean_session_seconds"`

	WallTime string `json:"wall_time"`

	virtual time.Duration
}

func (r *Report) add(res SessionResult) {
	r.Sessions++
	r.Spins += res.Spins
	r.Wins += res.Wins
	r.Losses += res.Losses
	r.Fatals += res.Fatals
	if res.Over {
		r.GameOvers++
	}
	if res.Truncated {
		r.Truncated++
	}
	r.virtual += res.Virtual
}

func (r *Report) finish() {
	if r.Spins > 0 {
		r.WinRate = float64(r.Wins) / float64(r.Spins)
	}
	if r.Sessions > 0 {
		r.MeanSpins = float64(r.Spins) / float64(r.Sessions)
		r.MeanSessionSeconds = (r.virtual / time.Duration(r.Sessions)).Seconds()
	}
}

// WriteReport encodes rep as indented JSON
func WriteReport(w io.Writer, rep *Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Runner executes sessions on a bounded worker pool
type Runner struct {
	opts Options
	log  *zap.Logger
}

// NewRunner fills unset options with defaults
func NewRunner(opts Options, log *zap.Logger) *Runner {
	if opts.Sessions <= 0 {
		opts.Sessions = parameter.DefaultSimSessions
	}
	if opts.Workers <= 0 {
		opts.Workers = parameter.DefaultSimWorkers
	}
	if opts.MaxSpins <= 0 {
		opts.MaxSpins = parameter.DefaultSimMaxSpins
	}
	if opts.Step <= 0 {
		opts.Step = parameter.SimStepInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = parameter.SimSessionTimeout
	}
	if opts.Seed == 0 {
		opts.Seed = random.NewSeed()
	}
	opts.Game.SkipEntrance = true
	return &Runner{opts: opts, log: log}
}

// Seed returns the run's base seed
func (r *Runner) Seed() uint64 {
	return r.opts.Seed
}

// Run plays every session and aggregates the results
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	pool, err := ants.NewPool(r.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	defer pool.Release()

	start := time.Now()
	rep := &Report{Seed: r.opts.Seed}
	results := make(chan SessionResult, r.opts.Workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var wg sync.WaitGroup
		defer func() {
			wg.Wait()
			close(results)
		}()

		for i := 0; i < r.opts.Sessions; i++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				res := r.RunSession(gctx, i)
				select {
				case results <- res:
				case <-gctx.Done():
				}
			}); err != nil {
				wg.Done()
				return fmt.Errorf("submit session %d: %w", i, err)
			}
		}
		return nil
	})

	g.Go(func() error {
		for res := range results {
			rep.add(res)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep.finish()
	rep.WallTime = time.Since(start).Round(time.Millisecond).String()
	r.log.Info("simulation complete",
		zap.Int("sessions", rep.Sessions),
		zap.Int("spins", rep.Spins),
		zap.Float64("win_rate", rep.WinRate),
		zap.String("wall", rep.WallTime),
	)
	return rep, nil
}

// RunSession auto-spins one session until game over, the spin cap, or the virtual timeout
func (r *Runner) RunSession(ctx context.Context, index int) SessionResult {
	quiet := r.log.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel)).With(zap.Int("session", index))
	e := game.NewEngine(r.opts.Game, random.Derive(r.opts.Seed, index), &audio.NullPlayer{}, nil, nil, quiet)
	s := e.Context().Session

	res := SessionResult{Index: index}
	for steps := 0; e.Now() < r.opts.Timeout; steps++ {
		if steps%4096 == 0 && ctx.Err() != nil {
			break
		}
		if s.IsOver() {
			break
		}
		if s.Status() == session.Idle {
			if s.Spins() >= r.opts.MaxSpins {
				break
			}
			e.RequestSpin()
		}
		e.Step(r.opts.Step)
	}

	res.Spins = s.Spins()
	res.Wins = s.Wins()
	res.Losses = s.Losses()
	res.Fatals = s.Fatals()
	res.Over = s.IsOver()
	res.Virtual = e.Now()
	res.Truncated = !res.Over && s.Spins() < r.opts.MaxSpins
	return res
}
