package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	if filepath.Base(dir) != "tcpflo" {
		t.Errorf("expected dir to end with 'tcpflo', got %q", filepath.Base(dir))
	}
}

func TestGetConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	expected := filepath.Join(tmp, "tcpflo")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestGetTargetsPathPrefersYAML(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	p, err := GetTargetsPath()
	if err != nil {
		t.Fatalf("GetTargetsPath() error: %v", err)
	}
	if filepath.Base(p) != "targets.toml" {
		t.Errorf("expected targets.toml by default, got %q", p)
	}

	os.MkdirAll(filepath.Join(tmp, "tcpflo"), 0755)
	os.WriteFile(filepath.Join(tmp, "tcpflo", "targets.yml"), []byte("targets: []\n"), 0644)
	p, err = GetTargetsPath()
	if err != nil {
		t.Fatalf("GetTargetsPath() error: %v", err)
	}
	if filepath.Base(p) != "targets.yml" {
		t.Errorf("expected targets.yml, got %q", p)
	}
}

func TestResolveDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	cfg := DefaultConfig()
	cfg.ChartDir = "/srv/charts"
	if err := cfg.ResolveDirs(); err != nil {
		t.Fatalf("ResolveDirs() error: %v", err)
	}
	if cfg.LogDir != filepath.Join(tmp, "tcpflo", "logs") {
		t.Errorf("unexpected log dir %q", cfg.LogDir)
	}
	if cfg.ChartDir != "/srv/charts" {
		t.Errorf("expected explicit chart dir to be kept, got %q", cfg.ChartDir)
	}
}
