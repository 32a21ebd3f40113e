package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the configured targets and their logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, list, err := loadSettings()
		if err != nil {
			return err
		}

		fmt.Printf("%-20s %-32s %10s  %s\n", "LABEL", "ADDRESS", "LOG SIZE", "LOG")
		fmt.Println(strings.Repeat("-", 90))
		for _, t := range list {
			size := "-"
			if fi, err := os.Stat(t.Log); err == nil {
				size = humanBytes(fi.Size())
			}
			fmt.Printf("%-20s %-32s %10s  %s\n", t.Label, t.Address(), size, t.Log)
		}
		return nil
	},
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
