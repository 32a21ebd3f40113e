package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/tonhe/tcpflo/internal/samplelog"
	"github.com/tonhe/tcpflo/internal/stats"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Figure size in inches; pixel size is this times the configured DPI.
const (
	figureWidthIn  = 6.4
	figureHeightIn = 4.8
)

// Axis labels and tick format for every chart.
const (
	xAxisName  = "Server Time in mm-dd-HH-MM"
	yAxisName  = "Latency in ms"
	tickFormat = "01-02, 15:04"
	historyFmt = "2006-01-02-15-04-05"
)

// lineAlpha matches a 0.7 opacity stroke.
const lineAlpha = 178

// ErrNoSeries is returned when a window has no log with data to plot.
var ErrNoSeries = errors.New("no series to plot")

// Series is one log's contribution to a window chart.
type Series struct {
	Name    string // log name, shown in the legend
	Label   string // label of the target the log belongs to
	Samples []samplelog.Sample
	Summary stats.Summary
}

// Plot describes one chart image.
type Plot struct {
	Window  time.Duration
	Ceiling float64 // y-axis maximum in ms; higher values are drawn at the ceiling
	DPI     int
	Series  []Series
	StampAt time.Time // zero means no timestamp overlay
}

// Legend formats the legend entry for one log.
func Legend(name string, s stats.Summary) string {
	avg := s.AverageString()
	if !s.NoData {
		avg += "ms"
	}
	loss := s.LossString()
	if s.Total > 0 {
		loss += "%"
	}
	return fmt.Sprintf("ISP: %s||Average Latency: %s||Loss Packet Rate: %s", name, avg, loss)
}

// FileName returns the output name for a window. With history set the name
// carries the render time so earlier images are kept.
func FileName(window time.Duration, at time.Time, history bool) string {
	secs := int64(math.Round(window.Seconds()))
	if history {
		return fmt.Sprintf("stat-%d-%s.png", secs, at.Format(historyFmt))
	}
	return fmt.Sprintf("stat-%d.png", secs)
}

// Render draws plot as a PNG into w.
func Render(w io.Writer, plot Plot) error {
	if len(plot.Series) == 0 {
		return ErrNoSeries
	}
	dpi := plot.DPI
	if dpi <= 0 {
		dpi = 100
	}

	series := make([]gochart.Series, 0, len(plot.Series))
	for i, s := range plot.Series {
		if len(s.Samples) == 0 {
			continue
		}
		xs, ys := points(s.Samples, plot.Ceiling)
		series = append(series, gochart.TimeSeries{
			Name:    Legend(s.Name, s.Summary),
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: 1,
				StrokeColor: gochart.GetDefaultColor(i).WithAlpha(lineAlpha),
			},
		})
	}
	if len(series) == 0 {
		return ErrNoSeries
	}

	ch := gochart.Chart{
		Title:  fmt.Sprintf("TCP Latency Stat Last %d Seconds", int64(math.Round(plot.Window.Seconds()))),
		Width:  int(figureWidthIn * float64(dpi)),
		Height: int(figureHeightIn * float64(dpi)),
		DPI:    float64(dpi),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           xAxisName,
			ValueFormatter: gochart.TimeValueFormatterWithFormat(tickFormat),
		},
		YAxis: gochart.YAxis{
			Name:  yAxisName,
			Range: &gochart.ContinuousRange{Min: 0, Max: plot.Ceiling},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.LegendLeft(&ch)}

	if plot.StampAt.IsZero() {
		return ch.Render(gochart.PNG, w)
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return err
	}
	return stamp(&buf, w, "generated "+plot.StampAt.Format("2006-01-02 15:04:05"))
}

// WriteFile renders plot into dir/name. The image is written to a temp file
// first and renamed into place so readers never see a partial PNG.
func WriteFile(dir, name string, plot Plot) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, plot); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, ".stat-*.png")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

// points converts samples into chart coordinates. Values above ceiling are
// drawn at the ceiling. A series whose samples all share one timestamp is
// padded with a flat segment since go-chart needs a non-zero x range.
func points(samples []samplelog.Sample, ceiling float64) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(samples)+1)
	ys := make([]float64, 0, len(samples)+1)
	for _, s := range samples {
		v := s.Value()
		if ceiling > 0 && v > ceiling {
			v = ceiling
		}
		xs = append(xs, s.Time)
		ys = append(ys, v)
	}
	if len(xs) > 0 && xs[len(xs)-1].Equal(xs[0]) {
		last := len(xs) - 1
		xs = append(xs, xs[last].Add(time.Second))
		ys = append(ys, ys[last])
	}
	return xs, ys
}
