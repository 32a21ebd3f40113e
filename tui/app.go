package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/tcpflo/internal/chart"
	"github.com/tonhe/tcpflo/internal/config"
	"github.com/tonhe/tcpflo/internal/engine"
	"github.com/tonhe/tcpflo/internal/targets"
	"github.com/tonhe/tcpflo/tui/components"
	"github.com/tonhe/tcpflo/tui/keys"
	"github.com/tonhe/tcpflo/tui/styles"
	"github.com/tonhe/tcpflo/tui/views"
)

// AppState represents the current screen of the viewer.
type AppState int

const (
	StateOverview AppState = iota
	StateDetail
)

// TickMsg triggers a periodic re-read of the logs.
type TickMsg struct{}

// SnapshotMsg carries freshly read series for one window.
type SnapshotMsg struct {
	Window time.Duration
	Series []chart.Series
	At     time.Time
}

// AppModel is the root Bubble Tea model. It only reads the logs, through
// the renderer's collector, so it can run next to a sampler.
type AppModel struct {
	state     AppState
	theme     styles.Theme
	config    *config.Config
	renderer  *engine.Renderer
	targets   []targets.Target
	windowIdx int
	refresh   time.Duration
	rows      []views.TargetRow
	lastRead  time.Time
	overview  views.OverviewView
	detail    views.DetailView
	help      views.HelpView
	width     int
	height    int
	version   string
}

// NewAppModel creates the viewer for the given targets.
func NewAppModel(cfg *config.Config, list []targets.Target, r *engine.Renderer, version string) AppModel {
	theme := styles.DefaultTheme
	if t := styles.GetThemeByName(cfg.Theme); t != nil {
		theme = *t
	}
	refresh := cfg.Delay
	if refresh < time.Second {
		refresh = time.Second
	}
	return AppModel{
		state:    StateOverview,
		theme:    theme,
		config:   cfg,
		renderer: r,
		targets:  list,
		refresh:  refresh,
		overview: views.NewOverviewView(theme),
		detail:   views.NewDetailView(theme, cfg.LatencyCeiling),
		help:     views.NewHelpView(theme),
		version:  version,
	}
}

// Init reads the logs once and starts the tick loop.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.collectCmd(), tickCmd(m.refresh))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// collectCmd reads the tails for the selected window off the UI goroutine.
func (m AppModel) collectCmd() tea.Cmd {
	w := m.window()
	if w == 0 {
		return nil
	}
	r := m.renderer
	return func() tea.Msg {
		series, _ := r.Collect(w)
		return SnapshotMsg{Window: w, Series: series, At: time.Now()}
	}
}

func (m AppModel) window() time.Duration {
	windows := m.renderer.Windows()
	if len(windows) == 0 {
		return 0
	}
	return windows[m.windowIdx%len(windows)]
}

func (m AppModel) shiftWindow(delta int) (AppModel, tea.Cmd) {
	n := len(m.renderer.Windows())
	if n == 0 {
		return m, nil
	}
	m.windowIdx = (m.windowIdx + delta + n) % n
	return m, m.collectCmd()
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Body height = total - 1 (header) - 1 (tabs) - 2 (status bar lines)
		m.overview.SetSize(msg.Width, msg.Height-4)
		m.detail.SetSize(msg.Width, msg.Height-4)
		m.help.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case TickMsg:
		return m, tea.Batch(m.collectCmd(), tickCmd(m.refresh))

	case SnapshotMsg:
		if msg.Window != m.window() {
			return m, nil
		}
		m.rows = views.BuildRows(m.targets, msg.Series)
		m.lastRead = msg.At
		m.overview.SetRows(m.rows)
		if m.state == StateDetail {
			if row, ok := m.overview.Selected(); ok {
				m.detail.SetRow(row, views.FormatWindow(m.window()))
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.DefaultKeyMap.Help):
			m.help.Toggle()
			return m, nil
		}
		if m.help.IsVisible() {
			if key.Matches(msg, keys.DefaultKeyMap.Escape) {
				m.help.Toggle()
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Tab), key.Matches(msg, keys.DefaultKeyMap.Right):
			return m.shiftWindow(1)
		case key.Matches(msg, keys.DefaultKeyMap.Left):
			return m.shiftWindow(-1)
		case key.Matches(msg, keys.DefaultKeyMap.Refresh):
			return m, m.collectCmd()
		}

		switch m.state {
		case StateOverview:
			if key.Matches(msg, keys.DefaultKeyMap.Enter) {
				if row, ok := m.overview.Selected(); ok {
					m.detail.SetRow(row, views.FormatWindow(m.window()))
					m.state = StateDetail
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		case StateDetail:
			var cmd tea.Cmd
			var back bool
			m.detail, cmd, back = m.detail.Update(msg)
			if back {
				m.state = StateOverview
			}
			return m, cmd
		}
	}
	return m, nil
}

// live reports whether any log gained a line recently enough to believe a
// sampler is still writing.
func (m AppModel) live() bool {
	var newest time.Time
	for _, r := range m.rows {
		if r.Series != nil && r.Series.Summary.Last.Time.After(newest) {
			newest = r.Series.Summary.Last.Time
		}
	}
	if newest.IsZero() {
		return false
	}
	// with per-probe cadence a log gains one line per full round
	rounds := time.Duration(len(m.targets))
	if rounds < 1 {
		rounds = 1
	}
	return time.Since(newest) < 3*rounds*m.config.SampleInterval()
}

// View renders the full application UI by composing header, tabs, body and
// status bar.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := components.RenderHeader(
		m.theme,
		views.FormatWindow(m.window()),
		m.live(),
		len(m.targets),
		m.width,
		m.version,
	)

	var body string
	switch {
	case m.help.IsVisible():
		body = m.help.View()
	case m.state == StateDetail:
		body = m.detail.View()
	default:
		body = m.overview.View()
	}

	withData := 0
	for _, r := range m.rows {
		if r.HasData() {
			withData++
		}
	}
	statusBar := components.RenderStatusBar(m.theme, m.refresh, m.lastRead, withData, len(m.targets), m.width)

	bodyHeight := m.height - 1 - 1 - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderTabs(), bodyStyle.Render(body), statusBar)
}

func (m AppModel) renderTabs() string {
	sty := styles.NewStyles(m.theme)
	windows := m.renderer.Windows()
	parts := make([]string, 0, len(windows))
	for i, w := range windows {
		st := sty.TabInactive
		if i == m.windowIdx%len(windows) {
			st = sty.TabActive
		}
		parts = append(parts, st.Render(views.FormatWindow(w)))
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Background(m.theme.Base00).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}
