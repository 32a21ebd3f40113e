package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/tcpflo/tui/components"
	"github.com/tonhe/tcpflo/tui/keys"
	"github.com/tonhe/tcpflo/tui/styles"
)

// Column width constants (minimum widths).
const (
	colTarget   = 16
	colAddress  = 24
	colSamples  = 9
	colLoss     = 9
	colAvg      = 10
	colP95      = 10
	colLast     = 10
	colSparkMin = 12
)

// OverviewView is the main table: one row per target with its loss rate,
// latency figures and a trend for the selected window.
type OverviewView struct {
	theme  styles.Theme
	sty    *styles.Styles
	rows   []TargetRow
	cursor int
	width  int
	height int
	offset int // scroll offset for vertical scrolling
}

// NewOverviewView creates a new OverviewView with the given theme.
func NewOverviewView(theme styles.Theme) OverviewView {
	return OverviewView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Update handles key messages for cursor navigation.
func (v OverviewView) Update(msg tea.Msg) (OverviewView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if v.cursor > 0 {
				v.cursor--
				v.ensureVisible()
			}
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if v.cursor < len(v.rows)-1 {
				v.cursor++
				v.ensureVisible()
			}
		}
	}
	return v, nil
}

// SetRows replaces the table contents and clamps the cursor.
func (v *OverviewView) SetRows(rows []TargetRow) {
	v.rows = rows
	if v.cursor >= len(rows) && len(rows) > 0 {
		v.cursor = len(rows) - 1
	}
}

// Selected returns the row under the cursor.
func (v OverviewView) Selected() (TargetRow, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return TargetRow{}, false
	}
	return v.rows[v.cursor], true
}

// SetSize updates the available dimensions for the view.
func (v *OverviewView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the overview table.
func (v OverviewView) View() string {
	if len(v.rows) == 0 {
		return v.renderEmpty()
	}
	return v.renderTable()
}

func (v *OverviewView) ensureVisible() {
	visible := v.height - 1
	if visible < 1 {
		visible = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// sparkWidth is whatever the fixed columns leave over.
func (v OverviewView) sparkWidth() int {
	fixed := colTarget + colAddress + colSamples + colLoss + colAvg + colP95 + colLast
	spark := v.width - fixed
	if spark < colSparkMin {
		spark = colSparkMin
	}
	return spark
}

func (v OverviewView) renderTable() string {
	wSpark := v.sparkWidth()
	h := v.sty.TableHeader

	lines := []string{fmt.Sprintf("%s%s%s%s%s%s%s%s",
		h.Render(padRight("Target", colTarget)),
		h.Render(padRight("Address", colAddress)),
		h.Render(padLeft("Samples", colSamples)),
		h.Render(padLeft("Loss", colLoss)),
		h.Render(padLeft("Avg ms", colAvg)),
		h.Render(padLeft("p95", colP95)),
		h.Render(padLeft("Last", colLast)),
		h.Render(padRight(" Trend", wSpark)),
	)}

	visible := v.height - 1
	if visible < 1 {
		visible = 1
	}
	end := v.offset + visible
	if end > len(v.rows) {
		end = len(v.rows)
	}
	for i := v.offset; i < end; i++ {
		lines = append(lines, v.renderRow(v.rows[i], wSpark, i == v.cursor))
	}
	return strings.Join(lines, "\n")
}

func (v OverviewView) renderRow(row TargetRow, wSpark int, selected bool) string {
	rowStyle := v.sty.TableRow
	dim := v.sty.TableCellDim
	if selected {
		rowStyle = v.sty.TableRowSel
		dim = dim.Background(v.theme.Base02)
	}
	sel := func(st lipgloss.Style) lipgloss.Style {
		if selected {
			return st.Background(v.theme.Base02)
		}
		return st
	}

	label := rowStyle.Render(padRight(truncate(row.Target.Label, colTarget-1), colTarget))
	addr := rowStyle.Render(padRight(truncate(row.Target.Address(), colAddress-1), colAddress))

	if row.Series == nil {
		rest := colSamples + colLoss + colAvg + colP95 + colLast + wSpark
		return label + addr + dim.Render(padRight("  no log", rest))
	}

	sum := row.Series.Summary
	samples := rowStyle.Render(padLeft(fmt.Sprintf("%d", sum.Total), colSamples))

	var lossStyle lipgloss.Style
	switch {
	case math.IsNaN(sum.LossRate):
		lossStyle = v.sty.TableCellDim
	case sum.LossRate == 0:
		lossStyle = v.sty.LossNone
	case sum.LossRate < 5:
		lossStyle = v.sty.LossSome
	default:
		lossStyle = v.sty.LossHigh
	}
	loss := sel(lossStyle).Render(padLeft(sum.LossString()+"%", colLoss))

	avgStyle := rowStyle
	if sum.NoData {
		avgStyle = dim
	}
	avg := avgStyle.Render(padLeft(sum.AverageString(), colAvg))

	p95Text := "-"
	if !sum.NoData {
		p95Text = components.FormatMs(sum.P95)
	}
	p95 := rowStyle.Render(padLeft(p95Text, colP95))

	var last string
	if sum.Last.Failed {
		last = sel(v.sty.StatusDown).Render(padLeft("fail", colLast))
	} else {
		last = rowStyle.Render(padLeft(components.FormatMs(sum.Last.Latency), colLast))
	}

	spark := sel(v.sty.SparklineStyle).Render(" " + components.Sparkline(latencies(row.Series), wSpark-1))

	return label + addr + samples + loss + avg + p95 + last + spark
}

func (v OverviewView) renderEmpty() string {
	msgStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base04).
		Align(lipgloss.Center)

	msg := lipgloss.JoinVertical(lipgloss.Center,
		"",
		msgStyle.Render("No targets configured"),
		"",
		msgStyle.Render("Run 'tcpflo config init' to create a targets file"),
		"",
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
}

// padRight pads s with spaces on the right to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads s with spaces on the left to the given width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncate shortens s to maxLen characters, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
