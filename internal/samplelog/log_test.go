package samplelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendKeepsCallOrder(t *testing.T) {
	log := Log{Path: filepath.Join(t.TempDir(), "Host A.txt")}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	const n = 7
	for i := 0; i < n; i++ {
		s := Measured(base.Add(time.Duration(i)*time.Second), float64(10+i))
		if i == 3 {
			s = Failure(base.Add(time.Duration(i) * time.Second))
		}
		if err := log.Append(s); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	data, err := os.ReadFile(log.Path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != n {
		t.Fatalf("expected %d lines, got %d", n, len(lines))
	}
	for i, line := range lines {
		s, err := ParseLine(line)
		if err != nil {
			t.Fatalf("line %d: ParseLine() error: %v", i, err)
		}
		if !s.Time.Equal(base.Add(time.Duration(i) * time.Second)) {
			t.Errorf("line %d out of order: %v", i, s.Time)
		}
		if i == 3 && !s.Failed {
			t.Errorf("line 3: expected failed sample")
		}
		if i != 3 && s.Latency != float64(10+i) {
			t.Errorf("line %d: expected latency %d, got %f", i, 10+i, s.Latency)
		}
	}
}

func TestLogName(t *testing.T) {
	log := Log{Path: "/var/lib/tcpflo/logs/Ch-Telecom Guangzhou.txt"}
	if log.Name() != "Ch-Telecom Guangzhou" {
		t.Errorf("expected 'Ch-Telecom Guangzhou', got %q", log.Name())
	}
}

func TestReadTailSelectsLastLines(t *testing.T) {
	input := "2024-01-01 00:00:01,1\n" +
		"2024-01-01 00:00:02,2\n" +
		"2024-01-01 00:00:03,3\n" +
		"2024-01-01 00:00:04,0\n" +
		"2024-01-01 00:00:05,5\n"

	tail, err := ReadTail(strings.NewReader(input), 3)
	if err != nil {
		t.Fatalf("ReadTail() error: %v", err)
	}
	if len(tail.Samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(tail.Samples))
	}
	if tail.Samples[0].Latency != 3 {
		t.Errorf("expected first selected latency 3, got %f", tail.Samples[0].Latency)
	}
	if !tail.Samples[1].Failed {
		t.Error("expected second selected sample to be a failure")
	}
}

func TestReadTailShortLog(t *testing.T) {
	input := "2024-01-01 00:00:01,1\n2024-01-01 00:00:02,2\n"
	tail, err := ReadTail(strings.NewReader(input), 100)
	if err != nil {
		t.Fatalf("ReadTail() error: %v", err)
	}
	if len(tail.Samples) != 2 || tail.Lines != 2 {
		t.Errorf("expected all 2 lines selected, got %d samples from %d lines", len(tail.Samples), tail.Lines)
	}
}

func TestReadTailTornLastLine(t *testing.T) {
	input := "2024-01-01 00:00:01,1\n2024-01-01 00:00:02,2\n2024-01-01 00:0"
	tail, err := ReadTail(strings.NewReader(input), 3)
	if err != nil {
		t.Fatalf("ReadTail() error: %v", err)
	}
	if tail.Skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", tail.Skipped)
	}
	if len(tail.Samples) != 2 {
		t.Errorf("expected 2 samples, got %d", len(tail.Samples))
	}
}

func TestReadTailMissingFile(t *testing.T) {
	log := Log{Path: filepath.Join(t.TempDir(), "missing.txt")}
	if _, err := log.ReadTail(5); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
