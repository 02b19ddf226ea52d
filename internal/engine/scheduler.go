package engine

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

const (
	DefaultSpeedMin = 1
	DefaultSpeedMax = 100
	DefaultDelayMin = 20 * time.Millisecond
	DefaultDelayMax = 700 * time.Millisecond
)

// Pacing bounds the speed parameter and the delays it maps to.
type Pacing struct {
	SpeedMin int
	SpeedMax int
	DelayMin time.Duration
	DelayMax time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		SpeedMin: DefaultSpeedMin,
		SpeedMax: DefaultSpeedMax,
		DelayMin: DefaultDelayMin,
		DelayMax: DefaultDelayMax,
	}
}

func (p Pacing) Validate() error {
	if p.SpeedMin < 0 || p.SpeedMax <= 0 || p.SpeedMin > p.SpeedMax {
		return fmt.Errorf("%w: speed range [%d, %d]", ErrInvalidPacing, p.SpeedMin, p.SpeedMax)
	}
	if p.DelayMin < 0 || p.DelayMax < p.DelayMin {
		return fmt.Errorf("%w: delay range [%v, %v]", ErrInvalidPacing, p.DelayMin, p.DelayMax)
	}
	return nil
}

// ClampSpeed pins v into [SpeedMin, SpeedMax].
func (p Pacing) ClampSpeed(v int) int {
	if v < p.SpeedMin {
		return p.SpeedMin
	}
	if v > p.SpeedMax {
		return p.SpeedMax
	}
	return v
}

// DelayFor maps a speed to a step delay. Higher speed means a shorter delay;
// the result is rounded to whole milliseconds and kept within the delay bounds.
func (p Pacing) DelayFor(speed int) time.Duration {
	speed = p.ClampSpeed(speed)
	span := float64(p.DelayMax - p.DelayMin)
	d := float64(p.DelayMax) - float64(speed)/float64(p.SpeedMax)*span
	out := time.Duration(math.Round(d/float64(time.Millisecond))) * time.Millisecond
	if out < p.DelayMin {
		return p.DelayMin
	}
	if out > p.DelayMax {
		return p.DelayMax
	}
	return out
}

// SpeedSource is consulted on every suspend, never cached.
type SpeedSource interface {
	Value() int
}

// Speed is the live speed parameter. It may be changed while a run is in
// flight; the next suspend picks the new value up.
type Speed struct {
	v      atomic.Int64
	pacing Pacing
}

func NewSpeed(p Pacing, initial int) *Speed {
	s := &Speed{pacing: p}
	s.Set(initial)
	return s
}

func (s *Speed) Value() int { return int(s.v.Load()) }

// Set stores v clamped to the pacing range and returns the stored value.
func (s *Speed) Set(v int) int {
	v = s.pacing.ClampSpeed(v)
	s.v.Store(int64(v))
	return v
}

// Add shifts the speed by delta, clamped.
func (s *Speed) Add(delta int) int {
	return s.Set(s.Value() + delta)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits on a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Instant never waits. Headless runs and tests use it.
func Instant(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

type Option func(*Scheduler)

// WithSleep replaces the timer-based wait.
func WithSleep(fn SleepFunc) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// Scheduler is the single place the engine yields. It does not look at the
// cancellation token; callers check it after Suspend returns.
type Scheduler struct {
	pacing Pacing
	speed  SpeedSource
	sleep  SleepFunc
}

func NewScheduler(p Pacing, speed SpeedSource, opts ...Option) *Scheduler {
	if speed == nil {
		speed = NewSpeed(p, p.SpeedMax)
	}
	s := &Scheduler{pacing: p, speed: speed, sleep: Sleep}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Pacing() Pacing { return s.pacing }

func (s *Scheduler) DelayFor(speed int) time.Duration { return s.pacing.DelayFor(speed) }

// Suspend waits for the delay of the current speed. A non-nil error means the
// host context ended.
func (s *Scheduler) Suspend(ctx context.Context) error {
	return s.sleep(ctx, s.DelayFor(s.speed.Value()))
}
