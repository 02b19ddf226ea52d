package metrics

import (
	"sync"

	"github.com/san-kum/sortviz/internal/engine"
)

const DefaultCapacity = 4096

// Sample is the counter state after the Index-th report of a run.
type Sample struct {
	Index int64 `json:"index" yaml:"index"`
	engine.Stats
}

// Recorder keeps a trace of counter snapshots. Once capacity is reached it
// drops every other sample and halves its sampling rate, so a trace always
// spans the whole run. The latest report is always the final sample; the
// strided samples use at most capacity-1 slots to leave room for it.
type Recorder struct {
	mu       sync.Mutex
	capacity int
	stride   int64
	seen     int64
	samples  []Sample
	last     Sample
}

func NewRecorder(capacity int) *Recorder {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		capacity: capacity,
		stride:   1,
		samples:  make([]Sample, 0, capacity),
	}
}

func (r *Recorder) Name() string { return "trace" }

func (r *Recorder) ReportStats(s engine.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.seen
	r.seen++
	r.last = Sample{Index: idx, Stats: s}
	if idx%r.stride != 0 {
		return
	}
	if len(r.samples) == r.capacity-1 {
		r.decimate()
		if idx%r.stride != 0 {
			return
		}
	}
	r.samples = append(r.samples, Sample{Index: idx, Stats: s})
}

func (r *Recorder) decimate() {
	kept := r.samples[:0]
	for i, s := range r.samples {
		if i%2 == 0 {
			kept = append(kept, s)
		}
	}
	r.samples = kept
	r.stride *= 2
}

// Samples returns a copy of the trace.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, len(r.samples), len(r.samples)+1)
	copy(out, r.samples)
	if r.trailing() {
		out = append(out, r.last)
	}
	return out
}

// trailing reports whether the latest report fell between strided samples.
func (r *Recorder) trailing() bool {
	if r.seen == 0 {
		return false
	}
	return len(r.samples) == 0 || r.last.Index > r.samples[len(r.samples)-1].Index
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.trailing() {
		return len(r.samples) + 1
	}
	return len(r.samples)
}

// Series extracts comparisons, swaps and accesses as float columns for
// plotting.
func (r *Recorder) Series() (comparisons, swaps, accesses []float64) {
	samples := r.Samples()
	comparisons = make([]float64, len(samples))
	swaps = make([]float64, len(samples))
	accesses = make([]float64, len(samples))
	for i, s := range samples {
		comparisons[i] = float64(s.Comparisons)
		swaps[i] = float64(s.Swaps)
		accesses[i] = float64(s.Accesses)
	}
	return comparisons, swaps, accesses
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = r.samples[:0]
	r.last = Sample{}
	r.stride = 1
	r.seen = 0
}
