package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tonhe/tcpflo/internal/config"
	"github.com/tonhe/tcpflo/internal/targets"
	"github.com/tonhe/tcpflo/tui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the settings and targets files",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings and targets file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := configPath()
		if err != nil {
			return err
		}
		tPath, err := targetsPath()
		if err != nil {
			return err
		}
		fmt.Println(cfgPath)
		fmt.Println(tPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := configPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.ResolveDirs(); err != nil {
			return err
		}
		return toml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

var configThemeCmd = &cobra.Command{
	Use:   "theme NAME",
	Short: "Set the viewer theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if styles.GetThemeByName(name) == nil {
			return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ListThemes())
		}
		cfgPath, err := configPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return err
		}
		cfg.Theme = name
		if err := config.SaveConfig(cfg, cfgPath); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Printf("Theme set to %q.\n", name)
		return nil
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default settings file and a sample targets file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := configPath()
		if err != nil {
			return err
		}
		tPath, err := targetsPath()
		if err != nil {
			return err
		}

		if err := writeIfAbsent(cfgPath, func() error {
			return config.SaveConfig(config.DefaultConfig(), cfgPath)
		}); err != nil {
			return err
		}
		return writeIfAbsent(tPath, func() error {
			return targets.Save(sampleTargets, tPath)
		})
	},
}

// sampleTargets seeds a fresh targets file.
var sampleTargets = []targets.Target{
	{Host: "www.google.com", Port: 80, Label: "google"},
	{Host: "www.cloudflare.com", Port: 443, Label: "cloudflare"},
	{Host: "www.github.com", Port: 443, Label: "github"},
}

func writeIfAbsent(path string, write func() error) error {
	if _, err := os.Stat(path); err == nil && !configInitForce {
		fmt.Printf("%s exists, leaving it alone (use --force to overwrite)\n", path)
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	if err := write(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite existing files")
	configCmd.AddCommand(configPathCmd, configShowCmd, configThemeCmd, configInitCmd)
}
