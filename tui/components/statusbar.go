package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/tcpflo/tui/styles"
)

// RenderStatusBar renders the two-line footer showing refresh info, how many
// targets have data in the window, and key bindings.
func RenderStatusBar(theme styles.Theme, refresh time.Duration, lastRead time.Time, withData, totalCount, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")

	refreshSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).Render(fmt.Sprintf("refresh: %s", refresh))
	lastStr := "never"
	if !lastRead.IsZero() {
		lastStr = lastRead.Format("15:04:05")
	}
	lastSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).Render(fmt.Sprintf("read: %s", lastStr))

	healthColor := theme.Base0B
	if withData < totalCount {
		healthColor = theme.Base0A
	}
	healthSeg := lipgloss.NewStyle().Foreground(healthColor).Background(bg).
		Render(fmt.Sprintf("%d/%d with data", withData, totalCount))

	topContent := bgStyle.Render(" ") + refreshSeg + sep + lastSeg + sep + healthSeg
	topWidth := lipgloss.Width(topContent)
	if topWidth < width {
		topContent += bgStyle.Render(strings.Repeat(" ", width-topWidth))
	}

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	keys := bgStyle.Render(" ") +
		keyStyle.Render("enter") + descStyle.Render(":detail") + spacer +
		keyStyle.Render("tab") + descStyle.Render(":window") + spacer +
		keyStyle.Render("r") + descStyle.Render(":refresh") + spacer +
		keyStyle.Render("?") + descStyle.Render(":help") + spacer +
		keyStyle.Render("q") + descStyle.Render(":quit")

	keysWidth := lipgloss.Width(keys)
	if keysWidth < width {
		keys += bgStyle.Render(strings.Repeat(" ", width-keysWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left, topContent, keys)
}
