package components

import "testing"

func TestSparkline(t *testing.T) {
	data := []float64{0, 25, 50, 75, 100, 50, 25, 0}
	result := Sparkline(data, 8)
	if len([]rune(result)) != 8 {
		t.Errorf("expected 8 chars, got %d", len([]rune(result)))
	}
}

func TestSparklineEmpty(t *testing.T) {
	result := Sparkline(nil, 8)
	if result != "        " {
		t.Errorf("expected 8 spaces for empty data, got %q", result)
	}
}

func TestSparklineSingleValue(t *testing.T) {
	result := Sparkline([]float64{50}, 4)
	if len([]rune(result)) != 4 {
		t.Errorf("expected 4 chars, got %d", len([]rune(result)))
	}
}

func TestSparklineLongData(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}
	result := Sparkline(data, 10)
	if len([]rune(result)) != 10 {
		t.Errorf("expected 10 chars, got %d", len([]rune(result)))
	}
}

func TestDownsampleKeepsPeaks(t *testing.T) {
	data := []float64{1, 9, 1, 1, 1, 1, 7, 1}
	got := Downsample(data, 4)
	want := []float64{9, 1, 1, 7}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		ms       float64
		expected string
	}{
		{0, "0"},
		{3.14159, "3.1ms"},
		{250, "250ms"},
		{1500, "1.5s"},
		{25_000, "25s"},
	}
	for _, tt := range tests {
		got := FormatMs(tt.ms)
		if got != tt.expected {
			t.Errorf("FormatMs(%f) = %q, want %q", tt.ms, got, tt.expected)
		}
	}
}
