package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/tcpflo/tui/styles"
)

// RenderHeader renders the top header bar with app name, selected window,
// sampler liveness and target count.
func RenderHeader(theme styles.Theme, window string, isLive bool, targetCount, width int, ver string) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(theme.Base01).
		Bold(true).
		Render("tcpflo")

	center := lipgloss.NewStyle().
		Foreground(theme.Base05).
		Background(theme.Base01).
		Render("window " + window)

	status := "STALE"
	statusColor := theme.Base08
	if isLive {
		status = "LIVE"
		statusColor = theme.Base0B
	}
	right := lipgloss.NewStyle().
		Foreground(statusColor).
		Background(theme.Base01).
		Render(status)

	count := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render(fmt.Sprintf("%d targets", targetCount))

	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render("v" + ver)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s  |  %s ", left, center, right, count, versionSeg)

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		Render(content)
}
