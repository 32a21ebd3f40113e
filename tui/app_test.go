package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/tonhe/tcpflo/internal/chart"
	"github.com/tonhe/tcpflo/internal/config"
	"github.com/tonhe/tcpflo/internal/engine"
	"github.com/tonhe/tcpflo/internal/samplelog"
	"github.com/tonhe/tcpflo/internal/stats"
	"github.com/tonhe/tcpflo/internal/targets"
)

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Windows = []time.Duration{time.Hour, 24 * time.Hour}
	list := []targets.Target{
		{Host: "a.example", Port: 80, Label: "a", Log: filepath.Join(t.TempDir(), "a.txt")},
	}
	r := engine.NewRenderer(cfg, list, log.New(io.Discard))
	m := NewAppModel(cfg, list, r, "test")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(AppModel)
}

func snapshot(w time.Duration) SnapshotMsg {
	samples := []samplelog.Sample{samplelog.Measured(time.Now(), 12.5)}
	return SnapshotMsg{
		Window: w,
		Series: []chart.Series{{Name: "a", Label: "a", Samples: samples, Summary: stats.Summarize(samples)}},
		At:     time.Now(),
	}
}

func TestTabCyclesWindows(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(AppModel)
	if m.window() != 24*time.Hour {
		t.Errorf("expected window 24h, got %v", m.window())
	}
	if cmd == nil {
		t.Error("expected a collect command after switching windows")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := next.(AppModel).window(); got != time.Hour {
		t.Errorf("expected window to wrap to 1h, got %v", got)
	}
}

func TestStaleSnapshotIgnored(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(snapshot(24 * time.Hour))
	if rows := next.(AppModel).rows; rows != nil {
		t.Errorf("expected snapshot for another window to be ignored, got %d rows", len(rows))
	}
}

func TestEnterOpensDetail(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(snapshot(time.Hour))
	m = next.(AppModel)
	if len(m.rows) != 1 || !m.rows[0].HasData() {
		t.Fatalf("expected one row with data, got %+v", m.rows)
	}
	if !m.live() {
		t.Error("expected a fresh sample to count as live")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(AppModel)
	if m.state != StateDetail {
		t.Fatalf("expected detail state, got %d", m.state)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if got := next.(AppModel).state; got != StateOverview {
		t.Errorf("expected overview state after esc, got %d", got)
	}
}

func TestViewRendersWithoutData(t *testing.T) {
	m := newTestModel(t)
	if out := m.View(); out == "" || out == "Loading..." {
		t.Errorf("expected a rendered screen, got %q", out)
	}
}
