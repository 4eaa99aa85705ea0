// Command slot-sim plays many sessions headlessly and prints an outcome report as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lixenwraith/pharaoh-slot/config"
	"github.com/lixenwraith/pharaoh-slot/logger"
	"github.com/lixenwraith/pharaoh-slot/sim"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "slot-sim: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load("slot-sim", args)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		App:    "slot-sim",
		Dir:    cfg.LogDir,
		Level:  cfg.LogLevel,
		Debug:  cfg.Debug,
		Stderr: true,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := sim.NewRunner(cfg.SimOptions(), log.Named("sim"))
	log.Info("simulating",
		zap.Uint64("seed", runner.Seed()),
		zap.Int("sessions", cfg.Sim.Sessions),
		zap.Int("workers", cfg.Sim.Workers),
	)

	rep, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	if cfg.Sim.Output == "" {
		return sim.WriteReport(stdout, rep)
	}

	f, err := os.Create(cfg.Sim.Output)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := sim.WriteReport(f, rep); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	log.Info("report written", zap.String("path", cfg.Sim.Output))
	return nil
}
