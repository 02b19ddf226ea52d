// Package controller owns the lifecycle of sorting runs: one run at a time,
// on its own goroutine, stoppable at the next step boundary.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/engine"
)

type State int

const (
	Idle State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result summarizes a finished run. A stopped run has Completed false and a
// nil Err.
type Result struct {
	Algorithm engine.Algorithm
	Size      int
	Stats     engine.Stats
	Steps     int
	Elapsed   time.Duration
	Completed bool
	Final     []int
	Err       error
}

type Controller struct {
	mu     sync.Mutex
	state  State
	algo   engine.Algorithm
	values []int
	token  engine.Token
	done   chan struct{}
	last   *Result

	pacing       engine.Pacing
	initialSpeed int
	speed        *engine.Speed
	sleep        engine.SleepFunc
	sink         engine.RenderSink
	reporters    []engine.StatsReporter
	onFinish     func(Result)
	logger       *slog.Logger
}

func New(algo engine.Algorithm, values []int, opts ...Option) (*Controller, error) {
	if !algo.Valid() {
		return nil, fmt.Errorf("%w: %d", engine.ErrUnknownAlgorithm, uint8(algo))
	}
	c := &Controller{
		algo:         algo,
		values:       slices.Clone(values),
		pacing:       engine.DefaultPacing(),
		initialSpeed: engine.DefaultSpeedMax / 2,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.pacing.Validate(); err != nil {
		return nil, err
	}
	c.speed = engine.NewSpeed(c.pacing, c.initialSpeed)
	return c, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Algorithm() engine.Algorithm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.algo
}

// SetAlgorithm changes the selection for the next run.
func (c *Controller) SetAlgorithm(algo engine.Algorithm) error {
	if !algo.Valid() {
		return fmt.Errorf("%w: %d", engine.ErrUnknownAlgorithm, uint8(algo))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return ErrRunInProgress
	}
	c.algo = algo
	return nil
}

// Values returns a copy of the array as of the last finished run or
// regeneration.
func (c *Controller) Values() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.values)
}

// Speed is live: changes apply at the next step of a running sort.
func (c *Controller) Speed() *engine.Speed { return c.speed }

func (c *Controller) Pacing() engine.Pacing { return c.pacing }

// LastResult returns the most recent run result.
func (c *Controller) LastResult() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Result{}, false
	}
	return *c.last, true
}

// Start launches the selected algorithm on the current array. ctx bounds the
// run; its cancellation stops the run like Stop does. A run that panics leaves
// the array as it was before Start.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return ErrRunInProgress
	}

	c.token.Reset()
	counters := engine.NewCounters(c.reporters...)
	counters.Reset()

	sched := engine.NewScheduler(c.pacing, c.speed, engine.WithSleep(c.sleep))
	work := slices.Clone(c.values)
	run := engine.NewRun(ctx, work, counters, &c.token, sched, c.sink)

	done := make(chan struct{})
	c.done = done
	c.state = Running

	algo := c.algo
	c.logger.Debug("run started", "algorithm", algo, "size", len(work), "speed", c.speed.Value())

	go c.execute(run, algo, slices.Clone(c.values), time.Now(), done)
	return nil
}

func (c *Controller) execute(run *engine.Run, algo engine.Algorithm, before []int, start time.Time, done chan struct{}) {
	res := Result{Algorithm: algo, Size: len(run.Values())}

	defer func() {
		if p := recover(); p != nil {
			res.Completed = false
			res.Err = &RunError{
				Algorithm: algo,
				Step:      run.Steps(),
				Cause:     p,
				Wrapped:   ErrAbnormalTermination,
			}
			c.logger.Error("run terminated abnormally", "algorithm", algo, "step", run.Steps(), "panic", p)
		}
		res.Elapsed = time.Since(start)
		res.Stats = run.Counters().Snapshot()
		res.Steps = run.Steps()
		res.Final = slices.Clone(run.Values())
		c.finish(res, before, done)
	}()

	res.Completed, res.Err = engine.Execute(run, algo)
}

// finish installs the run's array, or before when the run ended abnormally.
// A panic can interrupt a procedure while an element is held outside the
// array, so Final is kept on the result for diagnostics only.
func (c *Controller) finish(res Result, before []int, done chan struct{}) {
	for _, r := range c.reporters {
		r.ReportStats(res.Stats)
	}

	c.mu.Lock()
	if res.Err != nil {
		c.values = before
	} else {
		c.values = slices.Clone(res.Final)
	}
	c.last = &res
	c.state = Idle
	cb := c.onFinish
	c.mu.Unlock()

	c.logger.Info("run finished",
		"algorithm", res.Algorithm,
		"completed", res.Completed,
		"comparisons", res.Stats.Comparisons,
		"swaps", res.Stats.Swaps,
		"elapsed", res.Elapsed)

	if cb != nil {
		cb(res)
	}
	close(done)
}

// Stop asks a running sort to end at its next step boundary. It does not
// wait; use Wait for that.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Running {
		return
	}
	c.token.RequestStop()
	c.state = Stopping
}

// Wait blocks until no run is active or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Regenerate stops any run in flight, waits for it to unwind and installs
// values as the new array.
func (c *Controller) Regenerate(ctx context.Context, values []int) error {
	c.Stop()
	if err := c.Wait(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return ErrRunInProgress
	}
	c.values = slices.Clone(values)
	return nil
}

// Run starts a sort and blocks until it finishes.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	if err := c.Start(ctx); err != nil {
		return Result{}, err
	}
	if err := c.Wait(context.WithoutCancel(ctx)); err != nil {
		return Result{}, err
	}
	res, _ := c.LastResult()
	return res, res.Err
}
