// Package config loads runtime settings.
//
// Precedence, lowest to highest: built-in defaults, YAML file, SLOT_* environment variables,
// command-line flags. The result is validated before use.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pharaoh-slot/constant"
	"github.com/lixenwraith/pharaoh-slot/game"
	"github.com/lixenwraith/pharaoh-slot/parameter"
	"github.com/lixenwraith/pharaoh-slot/sim"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "SLOT_"

// MaxReels bounds the reel count; the renderer narrows columns to fit up to this many
const MaxReels = 5

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// SimConfig holds the headless simulator settings
type SimConfig struct {
	Sessions int    `yaml:"sessions" env:"SESSIONS"`
	Workers  int    `yaml:"workers" env:"WORKERS"`
	MaxSpins int    `yaml:"max_spins" env:"MAX_SPINS"`
	Output   string `yaml:"output" env:"OUTPUT"`
}

// Config is the full runtime configuration
type Config struct {
	Attempts      int           `yaml:"attempts" env:"ATTEMPTS"`
	Reels         int           `yaml:"reels" env:"REELS"`
	Seed          uint64        `yaml:"seed" env:"SEED"`
	TickInterval  time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	SettleTimeout time.Duration `yaml:"settle_timeout" env:"SETTLE_TIMEOUT"`

	Debug    bool   `yaml:"debug" env:"DEBUG"`
	LogDir   string `yaml:"log_dir" env:"LOG_DIR"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Mute        bool   `yaml:"mute" env:"MUTE"`
	MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR"`

	Sim SimConfig `yaml:"sim" envPrefix:"SIM_"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Attempts:      parameter.DefaultAttempts,
		Reels:         constant.ReelCount,
		TickInterval:  parameter.GameUpdateInterval,
		SettleTimeout: parameter.DefaultSettleTimeout,
		LogDir:        "logs",
		Sim: SimConfig{
			Sessions: parameter.DefaultSimSessions,
			Workers:  parameter.DefaultSimWorkers,
			MaxSpins: parameter.DefaultSimMaxSpins,
		},
	}
}

// LoadFile overlays YAML from path onto cfg; keys absent from the file keep their values
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ParseEnv overlays SLOT_* environment variables onto target
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks ranges
func (c *Config) Validate() error {
	switch {
	case c.Attempts < 1:
		return fmt.Errorf("%w: attempts %d, need at least 1", ErrInvalid, c.Attempts)
	case c.Reels < 1 || c.Reels > MaxReels:
		return fmt.Errorf("%w: reels %d, need 1..%d", ErrInvalid, c.Reels, MaxReels)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval %v", ErrInvalid, c.TickInterval)
	case c.SettleTimeout < 0:
		return fmt.Errorf("%w: settle_timeout %v", ErrInvalid, c.SettleTimeout)
	case c.Sim.Sessions < 1:
		return fmt.Errorf("%w: sim.sessions %d", ErrInvalid, c.Sim.Sessions)
	case c.Sim.Workers < 1:
		return fmt.Errorf("%w: sim.workers %d", ErrInvalid, c.Sim.Workers)
	case c.Sim.MaxSpins < 1:
		return fmt.Errorf("%w: sim.max_spins %d", ErrInvalid, c.Sim.MaxSpins)
	}
	return nil
}

// Load parses args and resolves the configuration in precedence order
func Load(name string, args []string) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var f Config
	path := fs.String("config", "", "YAML config file")
	fs.BoolVar(&f.Debug, "debug", false, "write debug logs under the log dir")
	fs.Uint64Var(&f.Seed, "seed", 0, "random seed, 0 for a fresh one")
	fs.IntVar(&f.Attempts, "attempts", 0, "spins per session")
	fs.IntVar(&f.Reels, "reels", 0, "reel count")
	fs.DurationVar(&f.SettleTimeout, "settle-timeout", 0, "grace before a stalled reel is forced to fail, 0 disables")
	fs.BoolVar(&f.Mute, "mute", false, "start muted")
	fs.StringVar(&f.MetricsAddr, "metrics", "", "serve Prometheus metrics on this address")
	fs.IntVar(&f.Sim.Sessions, "sessions", 0, "simulated sessions")
	fs.IntVar(&f.Sim.Workers, "workers", 0, "simulator worker pool size")
	fs.IntVar(&f.Sim.MaxSpins, "max-spins", 0, "spin cap per simulated session")
	fs.StringVar(&f.Sim.Output, "out", "", "simulator report file, stdout if empty")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()
	if *path != "" {
		if err := LoadFile(cfg, *path); err != nil {
			return nil, err
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	// Only flags given on the command line override
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			cfg.Debug = f.Debug
		case "seed":
			cfg.Seed = f.Seed
		case "attempts":
			cfg.Attempts = f.Attempts
		case "reels":
			cfg.Reels = f.Reels
		case "settle-timeout":
			cfg.SettleTimeout = f.SettleTimeout
		case "mute":
			cfg.Mute = f.Mute
		case "metrics":
			cfg.MetricsAddr = f.MetricsAddr
		case "sessions":
			cfg.Sim.Sessions = f.Sim.Sessions
		case "workers":
			cfg.Sim.Workers = f.Sim.Workers
		case "max-spins":
			cfg.Sim.MaxSpins = f.Sim.MaxSpins
		case "out":
			cfg.Sim.Output = f.Sim.Output
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Game maps the runtime settings onto an engine configuration
func (c *Config) Game() game.Config {
	g := game.DefaultConfig()
	g.Attempts = c.Attempts
	g.Reels = c.Reels
	g.SettleTimeout = c.SettleTimeout
	return g
}

// SimOptions maps the runtime settings onto simulator options
func (c *Config) SimOptions() sim.Options {
	return sim.Options{
		Sessions: c.Sim.Sessions,
		Workers:  c.Sim.Workers,
		MaxSpins: c.Sim.MaxSpins,
		Seed:     c.Seed,
		Game:     c.Game(),
	}
}
