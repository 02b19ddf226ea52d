package metrics

import "github.com/san-kum/sortviz/internal/engine"

// Metric summarizes a run from its counter reports.
type Metric interface {
	engine.StatsReporter
	Name() string
	Value() float64
	Reset()
}

// SwapRatio is swaps per comparison at the end of a run.
type SwapRatio struct {
	name string
	last engine.Stats
}

func NewSwapRatio() *SwapRatio {
	return &SwapRatio{name: "swap_ratio"}
}

func (m *SwapRatio) Name() string { return m.name }

func (m *SwapRatio) ReportStats(s engine.Stats) { m.last = s }

func (m *SwapRatio) Value() float64 {
	if m.last.Comparisons == 0 {
		return 0
	}
	return float64(m.last.Swaps) / float64(m.last.Comparisons)
}

func (m *SwapRatio) Reset() { m.last = engine.Stats{} }

// AccessDensity is array accesses per element.
type AccessDensity struct {
	name string
	size int
	last engine.Stats
}

func NewAccessDensity(size int) *AccessDensity {
	return &AccessDensity{name: "access_density", size: size}
}

func (m *AccessDensity) Name() string { return m.name }

func (m *AccessDensity) ReportStats(s engine.Stats) { m.last = s }

func (m *AccessDensity) Value() float64 {
	if m.size == 0 {
		return 0
	}
	return float64(m.last.Accesses) / float64(m.size)
}

func (m *AccessDensity) Reset() { m.last = engine.Stats{} }

// Collect reads every metric into a name-keyed map.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
