package components

import (
	"strings"
	"testing"
)

func TestRenderChartDimensions(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50}
	out := RenderChart(data, 30, 8, "latency", 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "latency") {
		t.Errorf("expected title on first line, got %q", lines[0])
	}
	for i, l := range lines[1:] {
		if n := len([]rune(l)); n != 30 {
			t.Errorf("row %d: expected 30 runes, got %d", i, n)
		}
	}
}

func TestRenderChartEmpty(t *testing.T) {
	out := RenderChart(nil, 20, 5, "empty", 0)
	if strings.ContainsRune(out, chartBlocks[8]) {
		t.Error("expected no filled blocks for empty data")
	}
}

func TestRenderChartCeilingClips(t *testing.T) {
	out := RenderChart([]float64{5, 5000}, 20, 5, "clip", 100)
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[1], "100ms") {
		t.Errorf("expected top label at ceiling, got %q", lines[1])
	}
}
