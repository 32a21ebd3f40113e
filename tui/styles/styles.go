package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Table
	TableHeader  lipgloss.Style
	TableRow     lipgloss.Style
	TableRowSel  lipgloss.Style
	TableCellDim lipgloss.Style

	// Status colors
	StatusDown lipgloss.Style
	StatusWarn lipgloss.Style

	// Loss rate thresholds
	LossNone lipgloss.Style // 0%
	LossSome lipgloss.Style // < 5%
	LossHigh lipgloss.Style // >= 5%

	// Sparkline
	SparklineStyle lipgloss.Style

	// Window tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		TableHeader: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		TableRow: lipgloss.NewStyle().
			Foreground(theme.Base05),
		TableRowSel: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base02),
		TableCellDim: lipgloss.NewStyle().
			Foreground(theme.Base03),

		StatusDown: lipgloss.NewStyle().
			Foreground(theme.Base08),
		StatusWarn: lipgloss.NewStyle().
			Foreground(theme.Base0A),

		LossNone: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		LossSome: lipgloss.NewStyle().
			Foreground(theme.Base0A),
		LossHigh: lipgloss.NewStyle().
			Foreground(theme.Base08),

		SparklineStyle: lipgloss.NewStyle().
			Foreground(theme.Base0C),

		TabActive: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base0D).
			Bold(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Padding(0, 1),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
	}
}
