package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/tcpflo/tui/components"
	"github.com/tonhe/tcpflo/tui/keys"
	"github.com/tonhe/tcpflo/tui/styles"
)

// DetailView shows one target's window statistics on top and its latency
// chart below.
type DetailView struct {
	theme   styles.Theme
	sty     *styles.Styles
	row     TargetRow
	hasRow  bool
	window  string
	ceiling float64
	width   int
	height  int
}

// NewDetailView creates a new DetailView. Chart values above ceiling ms are
// clipped.
func NewDetailView(theme styles.Theme, ceiling float64) DetailView {
	return DetailView{
		theme:   theme,
		sty:     styles.NewStyles(theme),
		ceiling: ceiling,
	}
}

// SetRow updates the target shown and the label of its window.
func (v *DetailView) SetRow(row TargetRow, window string) {
	v.row = row
	v.hasRow = true
	v.window = window
}

// SetSize updates the available dimensions for the view.
func (v *DetailView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Update handles key messages for the detail view. The third return value
// indicates whether the user wants to go back (Esc pressed).
func (v DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Escape):
			return v, nil, true
		}
	}
	return v, nil, false
}

// View renders the info panel and the chart.
func (v DetailView) View() string {
	if !v.hasRow {
		msg := lipgloss.NewStyle().
			Foreground(v.theme.Base04).
			Render("No target selected")
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
	}

	info := v.renderInfoPanel()
	infoHeight := lipgloss.Height(info)

	chartHeight := v.height - infoHeight - 2
	if chartHeight < 6 {
		chartHeight = 6
	}
	chartWidth := v.width - 2
	if chartWidth < 20 {
		chartWidth = 20
	}

	title := fmt.Sprintf("%s latency, last %s", v.row.Target.Label, v.window)
	plot := components.RenderChart(latencies(v.row.Series), chartWidth, chartHeight, title, v.ceiling)
	plotStyled := lipgloss.NewStyle().
		Foreground(v.theme.Base0C).
		PaddingLeft(1).
		Render(plot)

	return lipgloss.JoinVertical(lipgloss.Left, info, "", plotStyled, v.renderHelp())
}

func (v DetailView) renderInfoPanel() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base04).
		Width(14)
	valueStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base05)
	highlightStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0D).
		Bold(true)

	line := func(label, value string) string {
		return fmt.Sprintf("  %s%s", labelStyle.Render(label), value)
	}

	t := v.row.Target
	rows := []string{
		"",
		line("Target:", highlightStyle.Render(t.Label)),
		line("Address:", valueStyle.Render(t.Address())),
		line("Log:", valueStyle.Render(t.Log)),
	}

	if v.row.Series == nil {
		rows = append(rows, line("Window:", v.sty.StatusWarn.Render("no log data")))
		return strings.Join(rows, "\n")
	}

	sum := v.row.Series.Summary
	lossStyle := v.sty.LossNone
	switch {
	case sum.LossRate >= 5:
		lossStyle = v.sty.LossHigh
	case sum.LossRate > 0:
		lossStyle = v.sty.LossSome
	}

	spread := "-"
	if !sum.NoData {
		spread = fmt.Sprintf("min %s  p50 %s  p95 %s  p99 %s  max %s",
			components.FormatMs(sum.Min), components.FormatMs(sum.P50),
			components.FormatMs(sum.P95), components.FormatMs(sum.P99),
			components.FormatMs(sum.Max))
	}

	last := "-"
	if !sum.Last.Time.IsZero() {
		if sum.Last.Failed {
			last = v.sty.StatusDown.Render("failed") + valueStyle.Render(" at "+sum.Last.Time.Format("2006-01-02 15:04:05"))
		} else {
			last = valueStyle.Render(fmt.Sprintf("%s at %s", components.FormatMs(sum.Last.Latency), sum.Last.Time.Format("2006-01-02 15:04:05")))
		}
	}

	rows = append(rows,
		line("Samples:", valueStyle.Render(fmt.Sprintf("%d (%d failed)", sum.Total, sum.Failed))),
		line("Loss:", lossStyle.Render(sum.LossString()+"%")),
		line("Average:", valueStyle.Render(sum.AverageString()+" ms")),
		line("Spread:", valueStyle.Render(spread)),
		line("Last:", last),
	)
	return strings.Join(rows, "\n")
}

func (v DetailView) renderHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(v.theme.Base04)
	keyStyle := lipgloss.NewStyle().Foreground(v.theme.Base0D).Bold(true)
	return helpStyle.Render(fmt.Sprintf("  %s to go back, %s to change window", keyStyle.Render("[esc]"), keyStyle.Render("[tab]")))
}
