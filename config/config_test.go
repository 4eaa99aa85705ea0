package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/pharaoh-slot/parameter"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slot.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Attempts != parameter.DefaultAttempts || cfg.SettleTimeout != parameter.DefaultSettleTimeout {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeYAML(t, `
attempts: 5
reels: 4
settle_timeout: 3s
sim:
  workers: 2
  sessions: 50
`)

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := Load("test", []string{"-config", path})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Attempts != 5 || cfg.Reels != 4 || cfg.SettleTimeout != 3*time.Second {
			t.Errorf("file values not applied: %+v", cfg)
		}
		if cfg.Sim.Workers != 2 || cfg.Sim.MaxSpins != parameter.DefaultSimMaxSpins {
			t.Errorf("nested sim config = %+v", cfg.Sim)
		}
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("SLOT_ATTEMPTS", "7")
		t.Setenv("SLOT_SIM_WORKERS", "6")
		cfg, err := Load("test", []string{"-config", path})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Attempts != 7 || cfg.Sim.Workers != 6 {
			t.Errorf("env not applied: attempts=%d workers=%d", cfg.Attempts, cfg.Sim.Workers)
		}
		if cfg.Reels != 4 {
			t.Errorf("unset env clobbered file value: reels=%d", cfg.Reels)
		}
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("SLOT_ATTEMPTS", "7")
		cfg, err := Load("test", []string{"-config", path, "-attempts", "2", "-seed", "99"})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Attempts != 2 || cfg.Seed != 99 {
			t.Errorf("flags not applied: attempts=%d seed=%d", cfg.Attempts, cfg.Seed)
		}
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		is   error
	}{
		{name: "zero attempts", args: []string{"-attempts", "0"}, is: ErrInvalid},
		{name: "too many reels", args: []string{"-reels", "9"}, is: ErrInvalid},
		{name: "negative settle", args: []string{"-settle-timeout", "-1s"}, is: ErrInvalid},
		{name: "bad env", env: map[string]string{"SLOT_ATTEMPTS": "many"}},
		{name: "missing file", args: []string{"-config", "/nonexistent/slot.yaml"}, is: os.ErrNotExist},
		{name: "unknown flag", args: []string{"-turbo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("test", tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestLoadFileBadYAML(t *testing.T) {
	path := writeYAML(t, "attempts: [1, 2")
	if err := LoadFile(Default(), path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGameMapping(t *testing.T) {
	cfg := Default()
	cfg.Attempts = 7
	cfg.Reels = 4
	cfg.SettleTimeout = 0
	cfg.Seed = 99

	g := cfg.Game()
	if g.Attempts != 7 || g.Reels != 4 || g.SettleTimeout != 0 {
		t.Errorf("game config = %+v", g)
	}
	if g.Timing.BaseDuration == 0 {
		t.Error("reel timing defaults lost")
	}

	o := cfg.SimOptions()
	if o.Seed != 99 || o.Sessions != cfg.Sim.Sessions || o.Game.Reels != 4 {
		t.Errorf("sim options = %+v", o)
	}
}
