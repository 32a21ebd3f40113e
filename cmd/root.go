package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tonhe/tcpflo/internal/config"
	"github.com/tonhe/tcpflo/internal/targets"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "tcpflo",
	Short: "TCP connect latency monitor",
	Long: `tcpflo probes a fixed list of hosts with TCP connects, appends the
latency of every probe to a per-host log, and periodically renders
rolling-window latency charts from those logs.

Running tcpflo without a subcommand is the same as "tcpflo run".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMonitor,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "settings file (default $XDG_CONFIG_HOME/tcpflo/config.toml)")
	rootCmd.PersistentFlags().String("targets", "", "targets file, .toml or .yaml (default $XDG_CONFIG_HOME/tcpflo/targets.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides log_level)")
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("targets", rootCmd.PersistentFlags().Lookup("targets"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(runCmd, renderCmd, viewCmd, targetsCmd, configCmd, versionCmd)
}

func initConfig() {
	viper.SetEnvPrefix("TCPFLO")
	viper.AutomaticEnv()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tcpflo v" + version)
	},
}

// configPath returns the settings file chosen by flag, env or default.
func configPath() (string, error) {
	if p := viper.GetString("config"); p != "" {
		return p, nil
	}
	return config.GetConfigPath()
}

// targetsPath returns the targets file chosen by flag, env or default.
func targetsPath() (string, error) {
	if p := viper.GetString("targets"); p != "" {
		return p, nil
	}
	return config.GetTargetsPath()
}

// loadSettings loads the settings file and the target list.
func loadSettings() (*config.Config, []targets.Target, error) {
	cfgPath, err := configPath()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", cfgPath, err)
	}
	if err := cfg.ResolveDirs(); err != nil {
		return nil, nil, err
	}

	tPath, err := targetsPath()
	if err != nil {
		return nil, nil, err
	}
	list, err := targets.Load(tPath, cfg.LogDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("no targets file at %s (run 'tcpflo config init' to create one)", tPath)
		}
		return nil, nil, fmt.Errorf("load %s: %w", tPath, err)
	}
	return cfg, list, nil
}

// newLogger builds the stderr logger. The --log-level flag or TCPFLO_LOG_LEVEL
// wins over the settings file.
func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "tcpflo",
	})
	name := viper.GetString("log_level")
	if name == "" {
		name = cfg.LogLevel
	}
	if name == "" {
		return logger
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", name)
		return logger
	}
	logger.SetLevel(level)
	return logger
}
