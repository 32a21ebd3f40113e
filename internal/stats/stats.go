package stats

import (
	"math"
	"strconv"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/tonhe/tcpflo/internal/samplelog"
)

// Histogram range in microseconds: 1µs to 60s, 3 significant figures.
const (
	histMin    = 1
	histMax    = 60_000_000
	histSigFig = 3
)

// NoData is shown in place of a statistic that has no samples to work from.
const NoData = "no data"

// LinesForWindow converts a window length into the number of trailing log
// lines to read, assuming one line per interval. The result is
// window/interval rounded half to even and never less than 1.
func LinesForWindow(window, interval time.Duration) int {
	if interval <= 0 {
		return 1
	}
	n := int(math.RoundToEven(float64(window) / float64(interval)))
	if n < 1 {
		n = 1
	}
	return n
}

// Summary holds the statistics for one log over one window. Failed samples
// count toward the loss rate but are excluded from the average.
type Summary struct {
	Total    int     // samples selected
	Failed   int     // samples carrying the failure sentinel
	LossRate float64 // percent, rounded to 2 decimals; NaN when Total == 0
	Average  float64 // ms, rounded to 2 decimals; NaN when NoData
	NoData   bool    // true when no sample in the window succeeded
	Min      float64
	Max      float64
	P50      float64
	P95      float64
	P99      float64
	Last     samplelog.Sample
}

// Summarize computes loss rate, average and spread over samples.
func Summarize(samples []samplelog.Sample) Summary {
	s := Summary{
		Total:    len(samples),
		LossRate: math.NaN(),
		Average:  math.NaN(),
		Min:      math.NaN(),
		Max:      math.NaN(),
		P50:      math.NaN(),
		P95:      math.NaN(),
		P99:      math.NaN(),
		NoData:   true,
	}
	if len(samples) == 0 {
		return s
	}
	s.Last = samples[len(samples)-1]

	hist := hdrhistogram.New(histMin, histMax, histSigFig)
	var sum float64
	for _, sample := range samples {
		if sample.Failed {
			s.Failed++
			continue
		}
		sum += sample.Latency
		if math.IsNaN(s.Min) || sample.Latency < s.Min {
			s.Min = sample.Latency
		}
		if math.IsNaN(s.Max) || sample.Latency > s.Max {
			s.Max = sample.Latency
		}
		// toMicros clamps into the histogram range, so RecordValue cannot fail
		_ = hist.RecordValue(toMicros(sample.Latency))
	}

	s.LossRate = Round2(100 * float64(s.Failed) / float64(s.Total))

	measured := s.Total - s.Failed
	if measured == 0 {
		return s
	}
	s.NoData = false
	s.Average = Round2(sum / float64(measured))
	s.P50 = fromMicros(hist.ValueAtQuantile(50))
	s.P95 = fromMicros(hist.ValueAtQuantile(95))
	s.P99 = fromMicros(hist.ValueAtQuantile(99))
	return s
}

// AverageString formats the average as "12.34" or NoData.
func (s Summary) AverageString() string {
	if s.NoData {
		return NoData
	}
	return strconv.FormatFloat(s.Average, 'f', 2, 64)
}

// LossString formats the loss rate as "12.34" or NoData for an empty window.
func (s Summary) LossString() string {
	if s.Total == 0 {
		return NoData
	}
	return strconv.FormatFloat(s.LossRate, 'f', 2, 64)
}

// Round2 rounds x to two decimal places, ties to even.
func Round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

func toMicros(ms float64) int64 {
	us := int64(math.Round(ms * 1000))
	if us < histMin {
		us = histMin
	}
	if us > histMax {
		us = histMax
	}
	return us
}

func fromMicros(us int64) float64 {
	return float64(us) / 1000
}
