package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Delay != 10*time.Second {
		t.Errorf("expected delay 10s, got %v", cfg.Delay)
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Errorf("expected timeout 2.5s, got %v", cfg.Timeout)
	}
	if len(cfg.Windows) != 5 || cfg.Windows[0] != 6*time.Hour {
		t.Errorf("unexpected default windows %v", cfg.Windows)
	}
	if cfg.Rounds != 365*8640 {
		t.Errorf("expected rounds %d, got %d", 365*8640, cfg.Rounds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	cfg := DefaultConfig()
	cfg.Delay = time.Second
	cfg.Cadence = CadenceRound
	cfg.Windows = []time.Duration{3 * time.Second, time.Hour}
	cfg.KeepHistory = true

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Delay != time.Second {
		t.Errorf("expected delay 1s, got %v", loaded.Delay)
	}
	if loaded.Cadence != CadenceRound {
		t.Errorf("expected cadence round, got %q", loaded.Cadence)
	}
	if len(loaded.Windows) != 2 || loaded.Windows[0] != 3*time.Second {
		t.Errorf("expected windows [3s 1h], got %v", loaded.Windows)
	}
	if !loaded.KeepHistory {
		t.Error("expected keep_history to round-trip")
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Delay != 10*time.Second {
		t.Errorf("expected default delay, got %v", cfg.Delay)
	}
}

func TestConfigLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad duration", `delay = "soon"`},
		{"zero delay", `delay = "0s"`},
		{"bad cadence", `cadence = "sometimes"`},
		{"no windows", `windows = []`},
		{"negative window", `windows = ["-1h"]`},
		{"zero dpi", `dpi = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte(tt.body), 0644)
			if _, err := LoadConfig(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestSampleInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Delay = time.Second
	if got := cfg.SampleInterval(); got != time.Second {
		t.Errorf("expected delay 1s, got %v", got)
	}
	cfg.Cadence = CadenceRound
	if got := cfg.SampleInterval(); got != time.Second {
		t.Errorf("per-round cadence: expected 1s, got %v", got)
	}
	cfg.Interval = 3 * time.Second
	if got := cfg.SampleInterval(); got != 3*time.Second {
		t.Errorf("explicit interval: expected 3s, got %v", got)
	}
}

func TestSampleIntervalFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("delay = \"2s\"\nsample_interval = \"6s\"\n"), 0644)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if got := cfg.SampleInterval(); got != 6*time.Second {
		t.Errorf("expected 6s, got %v", got)
	}

	os.WriteFile(path, []byte("sample_interval = \"-1s\"\n"), 0644)
	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for negative interval, got %v", err)
	}
}
