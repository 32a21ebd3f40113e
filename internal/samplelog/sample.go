package samplelog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the timestamp format written to every log line. It matches
// the "YYYY-MM-DD HH:MM:SS.ffffff" form used by existing logs.
const TimeLayout = "2006-01-02 15:04:05.000000"

// parseLayouts are tried in order when reading a timestamp back.
var parseLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// minMeasured is the smallest latency written for a successful probe, so a
// very fast connect is never confused with the failure sentinel.
const minMeasured = 0.001

// ErrMalformed is returned for log lines that cannot be parsed.
var ErrMalformed = errors.New("malformed sample line")

// Sample is one probe result. A failed probe is stored in the log as a
// latency of 0 and read back with Failed set.
type Sample struct {
	Time    time.Time
	Latency float64 // milliseconds, zero when Failed
	Failed  bool
}

// Measured returns a successful sample.
func Measured(t time.Time, ms float64) Sample {
	return Sample{Time: t, Latency: ms}
}

// Failure returns a sample for a timed-out or refused probe.
func Failure(t time.Time) Sample {
	return Sample{Time: t, Failed: true}
}

// Value returns the latency as plotted: the measured value or 0 on failure.
func (s Sample) Value() float64 {
	if s.Failed {
		return 0
	}
	return s.Latency
}

// FormatLine encodes s as "<timestamp>,<latency>\n".
func FormatLine(s Sample) string {
	latency := "0"
	if !s.Failed {
		ms := s.Latency
		if ms < minMeasured {
			ms = minMeasured
		}
		latency = strconv.FormatFloat(ms, 'f', 3, 64)
	}
	return s.Time.Format(TimeLayout) + "," + latency + "\n"
}

// ParseLine decodes one log line. Timestamps carry no zone and are read in
// local time.
func ParseLine(line string) (Sample, error) {
	line = strings.TrimSpace(line)
	ts, val, ok := strings.Cut(line, ",")
	if !ok {
		return Sample{}, fmt.Errorf("%w: %q", ErrMalformed, line)
	}

	t, err := parseTime(strings.TrimSpace(ts))
	if err != nil {
		return Sample{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformed, ts)
	}

	ms, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) || ms < 0 {
		return Sample{}, fmt.Errorf("%w: bad latency %q", ErrMalformed, val)
	}
	if ms == 0 {
		return Failure(t), nil
	}
	return Measured(t, ms), nil
}

func parseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range parseLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
