package targets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPort is used for targets that do not set one.
const DefaultPort = 80

// ErrEmpty is returned when a targets file lists no targets.
var ErrEmpty = errors.New("no targets configured")

// Load reads a targets file, choosing TOML or YAML by extension, and
// applies defaults: port 80, label = host, log = "<label>.txt". Relative
// log names are resolved against logDir.
func Load(path, logDir string) ([]Target, error) {
	var list List
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to parse YAML targets: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &list); err != nil {
			return nil, fmt.Errorf("failed to parse TOML targets: %w", err)
		}
	}
	return Normalize(list.Targets, logDir)
}

// Normalize fills defaults and validates a target list in place order.
func Normalize(in []Target, logDir string) ([]Target, error) {
	if len(in) == 0 {
		return nil, ErrEmpty
	}
	out := make([]Target, len(in))
	seen := make(map[string]int, len(in))
	labels := make(map[string]int, len(in))
	for i, t := range in {
		t.Host = strings.TrimSpace(t.Host)
		if t.Host == "" {
			return nil, fmt.Errorf("target %d: host is required", i+1)
		}
		if t.Port == 0 {
			t.Port = DefaultPort
		}
		if t.Port < 1 || t.Port > 65535 {
			return nil, fmt.Errorf("target %s: port %d out of range", t.Host, t.Port)
		}
		if t.Label == "" {
			t.Label = t.Host
		}
		if t.Log == "" {
			t.Log = t.Label + ".txt"
		}
		if !filepath.IsAbs(t.Log) && logDir != "" {
			t.Log = filepath.Join(logDir, t.Log)
		}
		if j, dup := labels[t.Label]; dup {
			return nil, fmt.Errorf("targets %d and %d share label %q", j+1, i+1, t.Label)
		}
		labels[t.Label] = i
		if j, dup := seen[t.Log]; dup {
			return nil, fmt.Errorf("targets %d and %d share log file %s", j+1, i+1, t.Log)
		}
		seen[t.Log] = i
		out[i] = t
	}
	return out, nil
}

// Save writes targets to a TOML file at path.
func Save(list []Target, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(List{Targets: list})
}
