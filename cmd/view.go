package cmd

import (
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tonhe/tcpflo/internal/engine"
	"github.com/tonhe/tcpflo/tui"
	"golang.org/x/term"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse per-target latency and loss in the terminal",
	Long: `view reads the same logs the charts are drawn from and shows a live
table of loss rate and latency per target for each window. It never writes
to the logs, so it can run next to "tcpflo run".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("view needs an interactive terminal")
		}
		cfg, list, err := loadSettings()
		if err != nil {
			return err
		}

		// log output would tear the screen
		logger := newLogger(cfg, io.Discard)
		model := tui.NewAppModel(cfg, list, engine.NewRenderer(cfg, list, logger), version)

		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}
