package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/metrics"
)

const (
	complexityMinSize = 10
	complexityMaxSize = 100
)

// ComplexitySeries is one theoretical growth curve.
type ComplexitySeries struct {
	Label  string
	Color  asciigraph.AnsiColor
	Values []float64
}

// ComplexityCurves returns operation estimates for array sizes 10 through
// 100: n² for the quadratic sorts and scaled n·log₂n for the others.
func ComplexityCurves() []ComplexitySeries {
	count := complexityMaxSize - complexityMinSize + 1
	n2 := make([]float64, count)
	nlogn := make([]float64, count)
	quick := make([]float64, count)
	heap := make([]float64, count)

	for i := range count {
		x := float64(complexityMinSize + i)
		nl := math.Round(x * math.Log2(math.Max(2, x)))
		n2[i] = x * x
		nlogn[i] = nl
		quick[i] = math.Round(nl * 0.9)
		heap[i] = math.Round(nl * 1.05)
	}

	return []ComplexitySeries{
		{Label: "O(n²) bubble/selection/insertion", Color: asciigraph.Red, Values: n2},
		{Label: "O(n log n) merge", Color: asciigraph.Cyan, Values: nlogn},
		{Label: "O(n log n) quick", Color: asciigraph.Blue, Values: quick},
		{Label: "O(n log n) heap", Color: asciigraph.Purple, Values: heap},
	}
}

// ComplexityChart plots ComplexityCurves.
func ComplexityChart(width, height int) string {
	curves := ComplexityCurves()
	data := make([][]float64, len(curves))
	colors := make([]asciigraph.AnsiColor, len(curves))
	legends := make([]string, len(curves))
	for i, c := range curves {
		data[i] = c.Values
		colors[i] = c.Color
		legends[i] = c.Label
	}

	return asciigraph.PlotMany(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(fmt.Sprintf("operations vs n (%d..%d)", complexityMinSize, complexityMaxSize)))
}

// MeasuredChart plots comparisons against array size from a sweep.
func MeasuredChart(label string, comparisons []float64, width, height int) string {
	if len(comparisons) == 0 {
		return ""
	}
	return asciigraph.Plot(comparisons,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(0),
		asciigraph.Caption(label))
}

// TraceChart plots the counters of a recorded run over its samples.
func TraceChart(samples []metrics.Sample, width, height int, caption string) string {
	if len(samples) < 2 {
		return ""
	}
	comparisons := make([]float64, len(samples))
	swaps := make([]float64, len(samples))
	for i, s := range samples {
		comparisons[i] = float64(s.Comparisons)
		swaps[i] = float64(s.Swaps)
	}
	return asciigraph.PlotMany([][]float64{comparisons, swaps},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends("comparisons", "swaps"),
		asciigraph.Caption(caption))
}

// PerformanceChart shows the counts and elapsed time of the last run as
// horizontal bars scaled to the largest value.
func PerformanceChart(stats engine.Stats, elapsed time.Duration, width int, theme Theme) string {
	ms := float64(elapsed.Microseconds()) / 1000
	rows := []struct {
		label string
		value float64
		text  string
		color lipgloss.Color
	}{
		{"Comparisons", float64(stats.Comparisons), fmt.Sprintf("%d", stats.Comparisons), theme.Sorted},
		{"Swaps", float64(stats.Swaps), fmt.Sprintf("%d", stats.Swaps), theme.Swap},
		{"Time (ms)", ms, fmt.Sprintf("%.1f", ms), theme.Compare},
	}

	peak := 0.0
	for _, r := range rows {
		peak = math.Max(peak, r.value)
	}

	label := lipgloss.NewStyle().Foreground(theme.Muted).Width(12)
	barWidth := max(width-24, 4)
	lines := make([]string, len(rows))
	for i, r := range rows {
		frac := 0.0
		if peak > 0 {
			frac = r.value / peak
		}
		lines[i] = label.Render(r.label) + Gauge(frac, barWidth, r.color, theme.Border) + " " + r.text
	}
	return strings.Join(lines, "\n")
}
