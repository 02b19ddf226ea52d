package engine

// Stats is a snapshot of the instrumentation counters.
type Stats struct {
	Comparisons int64 `json:"comparisons" yaml:"comparisons"`
	Swaps       int64 `json:"swaps" yaml:"swaps"`
	Accesses    int64 `json:"accesses" yaml:"accesses"`
}

// StatsReporter receives a snapshot after every counter change.
type StatsReporter interface {
	ReportStats(s Stats)
}

// StatsReporterFunc adapts a function to StatsReporter.
type StatsReporterFunc func(Stats)

func (f StatsReporterFunc) ReportStats(s Stats) { f(s) }

// Counters tallies the operations of one run. Swaps and shifts both count
// toward Swaps; a shift is a movement rather than a pairwise exchange but is
// shown the same way.
type Counters struct {
	stats     Stats
	reporters []StatsReporter
}

func NewCounters(reporters ...StatsReporter) *Counters {
	c := &Counters{reporters: make([]StatsReporter, 0, len(reporters))}
	for _, r := range reporters {
		if r != nil {
			c.reporters = append(c.reporters, r)
		}
	}
	return c
}

// AddReporter registers another observer.
func (c *Counters) AddReporter(r StatsReporter) {
	if r != nil {
		c.reporters = append(c.reporters, r)
	}
}

func (c *Counters) Reset() {
	c.stats = Stats{}
	c.notify()
}

func (c *Counters) RecordCompare() {
	c.stats.Comparisons++
	c.notify()
}

// RecordSwap counts one swap, which touches two elements.
func (c *Counters) RecordSwap() {
	c.stats.Swaps++
	c.stats.Accesses += 2
	c.notify()
}

// RecordMove counts a movement toward Swaps without touching Accesses.
func (c *Counters) RecordMove() {
	c.stats.Swaps++
	c.notify()
}

func (c *Counters) RecordAccess(n int) {
	if n <= 0 {
		return
	}
	c.stats.Accesses += int64(n)
	c.notify()
}

func (c *Counters) Snapshot() Stats { return c.stats }

func (c *Counters) notify() {
	for _, r := range c.reporters {
		r.ReportStats(c.stats)
	}
}
