package stats

import (
	"math"
	"testing"
	"time"

	"github.com/tonhe/tcpflo/internal/samplelog"
)

func samples(values ...float64) []samplelog.Sample {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	out := make([]samplelog.Sample, len(values))
	for i, v := range values {
		ts := base.Add(time.Duration(i) * time.Second)
		if v == 0 {
			out[i] = samplelog.Failure(ts)
		} else {
			out[i] = samplelog.Measured(ts, v)
		}
	}
	return out
}

func TestLinesForWindow(t *testing.T) {
	tests := []struct {
		window   time.Duration
		interval time.Duration
		expected int
	}{
		{3 * time.Second, time.Second, 3},
		{6 * time.Hour, 10 * time.Second, 2160},
		{25 * time.Second, 10 * time.Second, 2}, // ties go to even
		{35 * time.Second, 10 * time.Second, 4},
		{time.Second, 10 * time.Second, 1},
		{time.Minute, 0, 1},
	}
	for _, tt := range tests {
		got := LinesForWindow(tt.window, tt.interval)
		if got != tt.expected {
			t.Errorf("LinesForWindow(%v, %v) = %d, want %d", tt.window, tt.interval, got, tt.expected)
		}
	}
}

func TestSummarizeMixed(t *testing.T) {
	s := Summarize(samples(10, 0, 20))
	if s.Total != 3 || s.Failed != 1 {
		t.Fatalf("expected 3 total / 1 failed, got %d / %d", s.Total, s.Failed)
	}
	if s.LossRate != 33.33 {
		t.Errorf("expected loss rate 33.33, got %f", s.LossRate)
	}
	if s.Average != 15 {
		t.Errorf("expected average 15, got %f", s.Average)
	}
	if s.NoData {
		t.Error("expected NoData=false")
	}
	if s.Min != 10 || s.Max != 20 {
		t.Errorf("expected min/max 10/20, got %f/%f", s.Min, s.Max)
	}
	if s.AverageString() != "15.00" {
		t.Errorf("expected '15.00', got %q", s.AverageString())
	}
	if s.LossString() != "33.33" {
		t.Errorf("expected '33.33', got %q", s.LossString())
	}
}

func TestSummarizeRounding(t *testing.T) {
	s := Summarize(samples(1.111, 1.112, 1.114))
	if s.Average != 1.11 {
		t.Errorf("expected average 1.11, got %f", s.Average)
	}
	if s.LossRate != 0 {
		t.Errorf("expected loss rate 0, got %f", s.LossRate)
	}
	if s.LossString() != "0.00" {
		t.Errorf("expected '0.00', got %q", s.LossString())
	}
}

func TestSummarizeAllFailed(t *testing.T) {
	s := Summarize(samples(0, 0, 0))
	if s.LossRate != 100 {
		t.Errorf("expected loss rate 100, got %f", s.LossRate)
	}
	if !s.NoData {
		t.Error("expected NoData=true when every sample failed")
	}
	if !math.IsNaN(s.Average) {
		t.Errorf("expected NaN average, got %f", s.Average)
	}
	if s.AverageString() != NoData {
		t.Errorf("expected %q, got %q", NoData, s.AverageString())
	}
	if s.LossString() != "100.00" {
		t.Errorf("expected '100.00', got %q", s.LossString())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || !s.NoData {
		t.Errorf("expected empty no-data summary, got %+v", s)
	}
	if s.LossString() != NoData {
		t.Errorf("expected %q, got %q", NoData, s.LossString())
	}
}

func TestSummarizePercentiles(t *testing.T) {
	values := make([]float64, 0, 100)
	for i := 1; i <= 100; i++ {
		values = append(values, float64(i))
	}
	s := Summarize(samples(values...))
	if math.Abs(s.P50-50) > 0.5 {
		t.Errorf("expected p50 ~50, got %f", s.P50)
	}
	if math.Abs(s.P99-99) > 0.5 {
		t.Errorf("expected p99 ~99, got %f", s.P99)
	}
	if s.Last.Latency != 100 {
		t.Errorf("expected last sample 100, got %f", s.Last.Latency)
	}
}

func TestRound2TiesToEven(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0.125, 0.12},
		{0.375, 0.38},
		{33.333, 33.33},
		{2.5, 2.5},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.expected {
			t.Errorf("Round2(%v): expected %v, got %v", tt.in, tt.expected, got)
		}
	}
}

func TestSummarizeLossTieRoundsToEven(t *testing.T) {
	values := make([]float64, 800)
	for i := range values {
		values[i] = 10
	}
	values[0] = 0
	s := Summarize(samples(values...))
	if s.LossString() != "0.12" {
		t.Errorf("expected loss '0.12' for 1 of 800, got %q", s.LossString())
	}
}

func TestSummarizeClampsOutOfRange(t *testing.T) {
	s := Summarize(samples(0.0001, 120000))
	if s.Max != 120000 {
		t.Errorf("expected raw max 120000, got %f", s.Max)
	}
	if math.Abs(s.P99-60000) > 100 {
		t.Errorf("expected p99 clamped near 60000, got %f", s.P99)
	}
	if s.Min != 0.0001 {
		t.Errorf("expected raw min 0.0001, got %f", s.Min)
	}
}
