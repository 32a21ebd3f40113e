package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tonhe/tcpflo/internal/engine"
	"github.com/tonhe/tcpflo/internal/probe"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample targets and render charts until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, list, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr)

	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	runner := engine.NewRunner(
		engine.NewSampler(cfg, list, probe.TCPProber{}, logger),
		engine.NewRenderer(cfg, list, logger),
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	finished := make(chan struct{})
	go func() {
		select {
		case <-sig:
		case <-finished:
			return
		}
		fmt.Println("Caught interrupt, terminating workers")
		cancel()

		// a second signal skips the wait for the workers
		select {
		case <-sig:
			logger.Warn("second interrupt, exiting without waiting for workers")
			os.Exit(130)
		case <-finished:
		}
	}()

	fmt.Printf("Running...... %d targets, %d windows (logs: %s, charts: %s)\n",
		len(list), len(cfg.Windows), cfg.LogDir, cfg.ChartDir)

	outcome := runner.Run(ctx)
	close(finished)

	if outcome == engine.Interrupted {
		fmt.Println("Done")
	} else {
		fmt.Println("Quitting normally")
	}
	return nil
}
