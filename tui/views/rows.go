package views

import (
	"fmt"
	"time"

	"github.com/tonhe/tcpflo/internal/chart"
	"github.com/tonhe/tcpflo/internal/targets"
)

// TargetRow pairs a target with its series for the selected window.
type TargetRow struct {
	Target targets.Target
	Series *chart.Series // nil when the log was missing, unreadable or empty
}

// HasData reports whether the row has at least one successful sample.
func (r TargetRow) HasData() bool {
	return r.Series != nil && !r.Series.Summary.NoData
}

// BuildRows lines series up with the target list by label. Series come back
// in list order with skipped logs left out, so one forward pass is enough.
func BuildRows(list []targets.Target, series []chart.Series) []TargetRow {
	rows := make([]TargetRow, len(list))
	next := 0
	for i, t := range list {
		rows[i].Target = t
		if next < len(series) && series[next].Label == t.Label {
			s := series[next]
			rows[i].Series = &s
			next++
		}
	}
	return rows
}

// FormatWindow renders a window length the way people say it: 6h, 3d, 90m.
func FormatWindow(d time.Duration) string {
	switch {
	case d >= 24*time.Hour && d%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d >= time.Minute && d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	default:
		return fmt.Sprintf("%gs", d.Seconds())
	}
}

// latencies returns each sample's logged value, failures as 0.
func latencies(s *chart.Series) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Value()
	}
	return out
}
