package controller

import (
	"log/slog"

	"github.com/san-kum/sortviz/internal/engine"
)

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPacing replaces the default speed and delay bounds. The speed is
// re-clamped to the new range.
func WithPacing(p engine.Pacing) Option {
	return func(c *Controller) {
		c.pacing = p
	}
}

// WithSpeed sets the initial speed.
func WithSpeed(v int) Option {
	return func(c *Controller) {
		c.initialSpeed = v
	}
}

// WithSleep replaces the scheduler's wait. engine.Instant runs without pacing.
func WithSleep(fn engine.SleepFunc) Option {
	return func(c *Controller) {
		c.sleep = fn
	}
}

// WithSink sets where frames are drawn.
func WithSink(s engine.RenderSink) Option {
	return func(c *Controller) {
		c.sink = s
	}
}

// WithReporter adds a stats observer. Reporters are called on the run
// goroutine.
func WithReporter(r engine.StatsReporter) Option {
	return func(c *Controller) {
		if r != nil {
			c.reporters = append(c.reporters, r)
		}
	}
}

// WithOnFinish registers a callback that receives every run result before
// Wait returns.
func WithOnFinish(fn func(Result)) Option {
	return func(c *Controller) {
		c.onFinish = fn
	}
}
