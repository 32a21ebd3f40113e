package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tonhe/tcpflo/internal/engine"
	"github.com/tonhe/tcpflo/internal/stats"
)

var renderSummary bool

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every window chart once from the existing logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, list, err := loadSettings()
		if err != nil {
			return err
		}
		logger := newLogger(cfg, os.Stderr)
		if err := os.MkdirAll(cfg.ChartDir, 0755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}

		r := engine.NewRenderer(cfg, list, logger)
		failed := 0
		for _, res := range r.RenderAll(context.Background()) {
			switch {
			case res.Path != "":
				fmt.Printf("%-8s %s\n", windowLabel(res.Window.Seconds()), res.Path)
			case res.Err != nil:
				fmt.Printf("%-8s %v\n", windowLabel(res.Window.Seconds()), res.Err)
				if len(res.Series) > 0 {
					failed++
				}
			}
			if renderSummary && len(res.Series) > 0 {
				printSummary(res)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d charts failed to render", failed)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderSummary, "summary", false, "print a per-target summary for every window")
}

func windowLabel(secs float64) string {
	return fmt.Sprintf("%.0fs", secs)
}

func printSummary(res engine.WindowResult) {
	fmt.Printf("  %-20s %8s %8s %10s %10s %10s %10s %10s\n",
		"TARGET", "SAMPLES", "LOSS", "AVG", "MIN", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))
	for _, s := range res.Series {
		sum := s.Summary
		fmt.Printf("  %-20s %8d %7s%% %10s %10s %10s %10s %10s\n",
			s.Name, sum.Total, sum.LossString(), sum.AverageString(),
			ms(sum, sum.Min), ms(sum, sum.P50), ms(sum, sum.P95), ms(sum, sum.P99))
	}
	for _, name := range res.Skipped {
		fmt.Printf("  %-20s %8s\n", name, "skipped")
	}
}

func ms(sum stats.Summary, v float64) string {
	if sum.NoData {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
