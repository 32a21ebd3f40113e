package components

import (
	"fmt"
	"strings"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func Sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(data) > width {
		data = Downsample(data, width)
	}
	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	var sb strings.Builder
	padding := width - len(data)
	for i := 0; i < padding; i++ {
		sb.WriteRune(' ')
	}
	spread := max - min
	for _, v := range data {
		if spread == 0 {
			sb.WriteRune(blocks[3])
		} else {
			normalized := (v - min) / spread
			idx := int(normalized * float64(len(blocks)-1))
			if idx >= len(blocks) {
				idx = len(blocks) - 1
			}
			sb.WriteRune(blocks[idx])
		}
	}
	return sb.String()
}

// Downsample reduces data to at most width points, keeping the peak of
// each bucket so spikes stay visible.
func Downsample(data []float64, width int) []float64 {
	if width <= 0 {
		return nil
	}
	if len(data) <= width {
		return data
	}
	out := make([]float64, width)
	for i := range out {
		lo := i * len(data) / width
		hi := (i + 1) * len(data) / width
		peak := data[lo]
		for _, v := range data[lo:hi] {
			if v > peak {
				peak = v
			}
		}
		out[i] = peak
	}
	return out
}

// FormatMs renders a latency in milliseconds compactly.
func FormatMs(ms float64) string {
	switch {
	case ms <= 0:
		return "0"
	case ms >= 10_000:
		return fmt.Sprintf("%.0fs", ms/1000)
	case ms >= 1000:
		return fmt.Sprintf("%.1fs", ms/1000)
	case ms >= 100:
		return fmt.Sprintf("%.0fms", ms)
	default:
		return fmt.Sprintf("%.1fms", ms)
	}
}
