package engine

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tonhe/tcpflo/internal/chart"
	"github.com/tonhe/tcpflo/internal/config"
	"github.com/tonhe/tcpflo/internal/samplelog"
	"github.com/tonhe/tcpflo/internal/stats"
	"github.com/tonhe/tcpflo/internal/targets"
)

// WindowResult reports what one window render produced.
type WindowResult struct {
	Window  time.Duration
	Path    string         // empty when no chart was written
	Series  []chart.Series // logs that contributed a series
	Skipped []string       // labels of logs that were missing, unreadable or empty
	Err     error
}

// Renderer periodically turns the tail of every log into one chart per
// window. It only ever reads the logs.
type Renderer struct {
	mu          sync.RWMutex
	targets     []targets.Target
	logs        []samplelog.Log
	windows     []time.Duration
	interval    time.Duration
	every       time.Duration
	ceiling     float64
	dpi         int
	chartDir    string
	keepHistory bool
	stamp       bool
	logger      *log.Logger
	now         func() time.Time
	info        RendererInfo
}

// NewRenderer creates a Renderer. Windows become line counts through
// cfg.SampleInterval.
func NewRenderer(cfg *config.Config, list []targets.Target, logger *log.Logger) *Renderer {
	logs := make([]samplelog.Log, len(list))
	for i, t := range list {
		logs[i] = samplelog.Log{Path: t.Log}
	}
	return &Renderer{
		targets:     list,
		logs:        logs,
		windows:     cfg.Windows,
		interval:    cfg.SampleInterval(),
		every:       cfg.RenderEvery,
		ceiling:     cfg.LatencyCeiling,
		dpi:         cfg.DPI,
		chartDir:    cfg.ChartDir,
		keepHistory: cfg.KeepHistory,
		stamp:       cfg.Stamp,
		logger:      logger.With("worker", "renderer"),
		now:         time.Now,
	}
}

// Run renders every cadence tick until ctx is cancelled. When done is
// closed it renders one last time and returns.
func (r *Renderer) Run(ctx context.Context, done <-chan struct{}) {
	r.setState(WorkerRunning)
	defer r.setState(WorkerStopped)

	if err := os.MkdirAll(r.chartDir, 0755); err != nil {
		r.logger.Error("create chart dir", "dir", r.chartDir, "err", err)
	}

	ticker := time.NewTicker(r.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			r.RenderAll(ctx)
			return
		case <-ticker.C:
			r.RenderAll(ctx)
		}
	}
}

// RenderAll renders one chart per window. It stops early if ctx is
// cancelled between windows.
func (r *Renderer) RenderAll(ctx context.Context) []WindowResult {
	results := make([]WindowResult, 0, len(r.windows))
	at := r.now()
	charts, errs := 0, 0
	for _, w := range r.windows {
		if ctx.Err() != nil {
			break
		}
		res := r.RenderWindow(w, at)
		switch {
		case res.Err == nil:
			charts++
		case errors.Is(res.Err, chart.ErrNoSeries):
			r.logger.Warn("no data for window, chart not written", "window", w)
		default:
			errs++
			r.logger.Error("render window", "window", w, "err", res.Err)
		}
		results = append(results, res)
	}

	r.mu.Lock()
	r.info.Cycles++
	r.info.Charts += charts
	r.info.Errors += errs
	r.info.LastRender = at
	r.mu.Unlock()
	return results
}

// RenderWindow collects every log's tail for window w and writes the chart.
func (r *Renderer) RenderWindow(w time.Duration, at time.Time) WindowResult {
	series, skipped := r.Collect(w)
	res := WindowResult{Window: w, Series: series, Skipped: skipped}

	plot := chart.Plot{
		Window:  w,
		Ceiling: r.ceiling,
		DPI:     r.dpi,
		Series:  series,
	}
	if r.stamp {
		plot.StampAt = at
	}

	path, err := chart.WriteFile(r.chartDir, chart.FileName(w, at, r.keepHistory), plot)
	if err != nil {
		res.Err = err
		return res
	}
	res.Path = path
	r.logger.Debug("chart written", "window", w, "path", path, "series", len(series))
	return res
}

// Collect reads the tail of every log for window w. Logs that are missing,
// unreadable or empty are skipped and reported by label; the others yield a
// series with its summary.
func (r *Renderer) Collect(w time.Duration) ([]chart.Series, []string) {
	n := stats.LinesForWindow(w, r.interval)
	var series []chart.Series
	var skipped []string
	for i, l := range r.logs {
		label := r.targets[i].Label
		tail, err := l.ReadTail(n)
		if err != nil {
			if os.IsNotExist(err) {
				r.logger.Warn("log missing, skipping", "target", label, "path", l.Path)
			} else {
				r.logger.Error("read log", "target", label, "path", l.Path, "err", err)
			}
			skipped = append(skipped, label)
			continue
		}
		if tail.Skipped > 0 {
			r.logger.Debug("ignored unparsable lines", "target", label, "count", tail.Skipped)
		}
		if len(tail.Samples) == 0 {
			r.logger.Warn("log empty, skipping", "target", label, "path", l.Path)
			skipped = append(skipped, label)
			continue
		}
		series = append(series, chart.Series{
			Name:    l.Name(),
			Label:   label,
			Samples: tail.Samples,
			Summary: stats.Summarize(tail.Samples),
		})
	}
	return series, skipped
}

// Windows returns the configured windows.
func (r *Renderer) Windows() []time.Duration {
	return r.windows
}

// Info returns a snapshot of renderer progress.
func (r *Renderer) Info() RendererInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.info
}

func (r *Renderer) setState(state WorkerState) {
	r.mu.Lock()
	r.info.State = state
	r.mu.Unlock()
}
