package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "tcpflo"

// GetConfigDir returns the platform-specific config directory.
// Unix: $XDG_CONFIG_HOME/tcpflo or ~/.config/tcpflo
// Windows: %APPDATA%\tcpflo
func GetConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, appName), nil
}

// GetDataDir returns the platform-specific data directory.
// Unix: $XDG_DATA_HOME/tcpflo or ~/.local/share/tcpflo
// Windows: %LOCALAPPDATA%\tcpflo
func GetDataDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(base, appName), nil
}

// GetConfigPath returns the default settings file path.
func GetConfigPath() (string, error) {
	cfgDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "config.toml"), nil
}

// GetTargetsPath returns the default targets file path. A targets.yaml or
// targets.yml in the config dir is preferred over the TOML default when it
// exists.
func GetTargetsPath() (string, error) {
	cfgDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	for _, name := range []string{"targets.yaml", "targets.yml"} {
		p := filepath.Join(cfgDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return filepath.Join(cfgDir, "targets.toml"), nil
}

// ResolveDirs fills LogDir and ChartDir from the data directory when the
// settings file leaves them empty.
func (c *Config) ResolveDirs() error {
	if c.LogDir != "" && c.ChartDir != "" {
		return nil
	}
	dataDir, err := GetDataDir()
	if err != nil {
		return err
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(dataDir, "logs")
	}
	if c.ChartDir == "" {
		c.ChartDir = filepath.Join(dataDir, "charts")
	}
	return nil
}

// EnsureDirs creates the config, log and chart directories.
func (c *Config) EnsureDirs() error {
	cfgDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	for _, dir := range []string{cfgDir, c.LogDir, c.ChartDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
