package engine

import (
	"context"
	"slices"
)

// RenderSink draws the array with a highlight. Values is a copy the sink may
// keep.
type RenderSink interface {
	Render(values []int, h Highlight)
}

// RenderFunc adapts a function to RenderSink.
type RenderFunc func(values []int, h Highlight)

func (f RenderFunc) Render(values []int, h Highlight) { f(values, h) }

type discardSink struct{}

func (discardSink) Render([]int, Highlight) {}

// Run is the context of a single run: the working array and everything the
// algorithm reports to. It is used by exactly one goroutine.
type Run struct {
	ctx      context.Context
	values   []int
	counters *Counters
	token    *Token
	sched    *Scheduler
	sink     RenderSink
	steps    int
}

// NewRun sorts values in place. Nil collaborators get inert defaults: fresh
// counters, a fresh token, an instant scheduler and a sink that drops frames.
func NewRun(ctx context.Context, values []int, counters *Counters, token *Token, sched *Scheduler, sink RenderSink) *Run {
	if ctx == nil {
		ctx = context.Background()
	}
	if counters == nil {
		counters = NewCounters()
	}
	if token == nil {
		token = &Token{}
	}
	if sched == nil {
		sched = NewScheduler(DefaultPacing(), nil, WithSleep(Instant))
	}
	if sink == nil {
		sink = discardSink{}
	}
	return &Run{
		ctx:      ctx,
		values:   values,
		counters: counters,
		token:    token,
		sched:    sched,
		sink:     sink,
	}
}

// Values returns the working array itself.
func (r *Run) Values() []int { return r.values }

func (r *Run) Counters() *Counters { return r.counters }

// Steps counts suspend points taken so far.
func (r *Run) Steps() int { return r.steps }

// Stopped reports whether the token is set or the host context ended.
func (r *Run) Stopped() bool {
	return r.token.IsStopRequested() || r.ctx.Err() != nil
}

func (r *Run) emit(h Highlight) {
	r.sink.Render(slices.Clone(r.values), h)
}

// step is the suspend point shared by every algorithm. It returns false when
// the procedure must unwind.
func (r *Run) step(h Highlight) bool {
	r.emit(h)
	r.steps++
	if err := r.sched.Suspend(r.ctx); err != nil {
		return false
	}
	return !r.Stopped()
}

func (r *Run) swap(i, j int) {
	r.values[i], r.values[j] = r.values[j], r.values[i]
	r.counters.RecordSwap()
}
