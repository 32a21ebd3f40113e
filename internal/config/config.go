package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Cadence values control where the sampler's delay is applied.
const (
	CadenceProbe = "probe" // after every target probe
	CadenceRound = "round" // once per full pass over the targets
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogDir   string `toml:"log_dir"`
	ChartDir string `toml:"chart_dir"`

	Timeout    time.Duration `toml:"-"`
	TimeoutStr string        `toml:"timeout"`
	Delay      time.Duration `toml:"-"`
	DelayStr   string        `toml:"delay"`
	Cadence    string        `toml:"cadence"`
	Rounds     int           `toml:"rounds"`

	// Interval is the gap the renderer assumes between two lines of one
	// log when turning a window into a line count. Zero means Delay.
	Interval    time.Duration `toml:"-"`
	IntervalStr string        `toml:"sample_interval,omitempty"`

	RenderEvery    time.Duration   `toml:"-"`
	RenderEveryStr string          `toml:"render_every"`
	Windows        []time.Duration `toml:"-"`
	WindowStrs     []string        `toml:"windows"`
	LatencyCeiling float64         `toml:"latency_ceiling"`
	DPI            int             `toml:"dpi"`
	KeepHistory    bool            `toml:"keep_history"`
	Stamp          bool            `toml:"stamp"`

	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:        2500 * time.Millisecond,
		TimeoutStr:     "2.5s",
		Delay:          10 * time.Second,
		DelayStr:       "10s",
		Cadence:        CadenceProbe,
		Rounds:         365 * 8640,
		RenderEvery:    5 * time.Minute,
		RenderEveryStr: "5m0s",
		Windows: []time.Duration{
			6 * time.Hour,
			3 * 24 * time.Hour,
			7 * 24 * time.Hour,
			15 * 24 * time.Hour,
			30 * 24 * time.Hour,
		},
		WindowStrs:     []string{"6h0m0s", "72h0m0s", "168h0m0s", "360h0m0s", "720h0m0s"},
		LatencyCeiling: 400,
		DPI:            300,
		Theme:          "solarized-dark",
		LogLevel:       "info",
	}
}

// LoadConfig reads the settings file at path. A missing file yields the
// defaults; a present one is decoded over them and validated.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseDurations() error {
	fields := []struct {
		name string
		str  string
		dst  *time.Duration
	}{
		{"timeout", c.TimeoutStr, &c.Timeout},
		{"delay", c.DelayStr, &c.Delay},
		{"render_every", c.RenderEveryStr, &c.RenderEvery},
		{"sample_interval", c.IntervalStr, &c.Interval},
	}
	for _, f := range fields {
		if f.str == "" {
			continue
		}
		d, err := time.ParseDuration(f.str)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, f.name, err)
		}
		*f.dst = d
	}

	c.Windows = c.Windows[:0:0]
	for _, s := range c.WindowStrs {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%w: windows: %v", ErrInvalid, err)
		}
		c.Windows = append(c.Windows, d)
	}
	return nil
}

// Validate checks the settings for values the workers cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
	case c.Delay <= 0:
		return fmt.Errorf("%w: delay must be positive", ErrInvalid)
	case c.Cadence != CadenceProbe && c.Cadence != CadenceRound:
		return fmt.Errorf("%w: cadence %q (valid: probe, round)", ErrInvalid, c.Cadence)
	case c.Interval < 0:
		return fmt.Errorf("%w: sample_interval must not be negative", ErrInvalid)
	case c.Rounds < 0:
		return fmt.Errorf("%w: rounds must not be negative", ErrInvalid)
	case c.RenderEvery <= 0:
		return fmt.Errorf("%w: render_every must be positive", ErrInvalid)
	case len(c.Windows) == 0:
		return fmt.Errorf("%w: at least one window is required", ErrInvalid)
	case c.LatencyCeiling <= 0:
		return fmt.Errorf("%w: latency_ceiling must be positive", ErrInvalid)
	case c.DPI <= 0:
		return fmt.Errorf("%w: dpi must be positive", ErrInvalid)
	}
	for _, w := range c.Windows {
		if w <= 0 {
			return fmt.Errorf("%w: window %v must be positive", ErrInvalid, w)
		}
	}
	return nil
}

// SampleInterval is the gap assumed between two lines of the same log:
// sample_interval when set, otherwise the delay.
func (c *Config) SampleInterval() time.Duration {
	if c.Interval > 0 {
		return c.Interval
	}
	return c.Delay
}

func SaveConfig(cfg *Config, path string) error {
	cfg.TimeoutStr = cfg.Timeout.String()
	cfg.DelayStr = cfg.Delay.String()
	cfg.RenderEveryStr = cfg.RenderEvery.String()
	cfg.IntervalStr = ""
	if cfg.Interval > 0 {
		cfg.IntervalStr = cfg.Interval.String()
	}
	cfg.WindowStrs = cfg.WindowStrs[:0:0]
	for _, w := range cfg.Windows {
		cfg.WindowStrs = append(cfg.WindowStrs, w.String())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
