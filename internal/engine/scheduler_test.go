package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPacing_DelayFor(t *testing.T) {
	p := DefaultPacing()
	tests := []struct {
		speed int
		want  time.Duration
	}{
		{1, 693 * time.Millisecond},
		{50, 360 * time.Millisecond},
		{100, 20 * time.Millisecond},
		{0, 693 * time.Millisecond},
		{-5, 693 * time.Millisecond},
		{250, 20 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := p.DelayFor(tt.speed); got != tt.want {
			t.Errorf("DelayFor(%d) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestPacing_DelayDecreasesWithSpeed(t *testing.T) {
	p := DefaultPacing()
	prev := p.DelayFor(p.SpeedMin)
	for s := p.SpeedMin + 1; s <= p.SpeedMax; s++ {
		d := p.DelayFor(s)
		if d > prev {
			t.Fatalf("delay grew from %v to %v at speed %d", prev, d, s)
		}
		if d < p.DelayMin || d > p.DelayMax {
			t.Fatalf("delay %v outside [%v, %v]", d, p.DelayMin, p.DelayMax)
		}
		prev = d
	}
}

func TestPacing_Validate(t *testing.T) {
	tests := []struct {
		name  string
		p     Pacing
		valid bool
	}{
		{"default", DefaultPacing(), true},
		{"inverted speed", Pacing{SpeedMin: 10, SpeedMax: 5, DelayMax: time.Second}, false},
		{"zero speed max", Pacing{SpeedMin: 0, SpeedMax: 0, DelayMax: time.Second}, false},
		{"inverted delay", Pacing{SpeedMin: 1, SpeedMax: 10, DelayMin: time.Second, DelayMax: time.Millisecond}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, valid %v", err, tt.valid)
			}
			if err != nil && !errors.Is(err, ErrInvalidPacing) {
				t.Errorf("expected ErrInvalidPacing, got %v", err)
			}
		})
	}
}

func TestSpeed_Clamps(t *testing.T) {
	s := NewSpeed(DefaultPacing(), 500)
	if s.Value() != 100 {
		t.Errorf("expected 100, got %d", s.Value())
	}
	if got := s.Add(-150); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := s.Set(42); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestScheduler_ReadsSpeedEverySuspend(t *testing.T) {
	p := DefaultPacing()
	speed := NewSpeed(p, 1)
	var delays []time.Duration
	sched := NewScheduler(p, speed, WithSleep(func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}))

	// Speed changes from inside the run take effect on the next suspend.
	sink := RenderFunc(func([]int, Highlight) {
		if len(delays) == 1 {
			speed.Set(100)
		}
	})
	run := NewRun(context.Background(), []int{3, 2, 1}, nil, nil, sched, sink)
	if _, err := Execute(run, Bubble); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if len(delays) < 2 {
		t.Fatalf("expected at least 2 suspends, got %d", len(delays))
	}
	if delays[0] != p.DelayFor(1) {
		t.Errorf("first delay = %v, want %v", delays[0], p.DelayFor(1))
	}
	if delays[1] != p.DelayFor(100) {
		t.Errorf("second delay = %v, want %v", delays[1], p.DelayFor(100))
	}
}

func TestSleep_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep did not return promptly")
	}
}

func TestSleep_Waits(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 5*time.Millisecond); err != nil {
		t.Fatalf("sleep failed: %v", err)
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Error("Sleep returned early")
	}
}
