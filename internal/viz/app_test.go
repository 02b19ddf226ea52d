package viz

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/storage"
)

func newTestApp(t *testing.T, sleep engine.SleepFunc, store *storage.Store) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Size = 10
	cfg.Seed = 7
	app, err := NewApp(context.Background(), Options{Config: cfg, Store: store, Sleep: sleep})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(func() {
		app.ctrl.Stop()
		_ = app.ctrl.Wait(context.Background())
	})
	return app
}

func press(a *App, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

func waitIdle(t *testing.T, a *App) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for a.running {
		if time.Now().After(deadline) {
			t.Fatal("run did not finish")
		}
		a.Update(TickMsg(time.Now()))
		time.Sleep(time.Millisecond)
	}
}

func TestAppRunsToCompletion(t *testing.T) {
	store := storage.New(t.TempDir())
	a := newTestApp(t, engine.Instant, store)

	press(a, "enter")
	if !a.running {
		t.Fatal("enter should start a run")
	}
	waitIdle(t, a)

	if a.last == nil || !a.last.Completed {
		t.Fatalf("expected completed result, got %+v", a.last)
	}
	if !slices.IsSorted(a.frame.Values) {
		t.Errorf("final frame not sorted: %v", a.frame.Values)
	}
	if a.frame.Stats.Comparisons == 0 {
		t.Error("stats not delivered")
	}
	if a.runID == "" {
		t.Fatal("run was not saved")
	}
	rec, err := store.Load(a.runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Stats != a.last.Stats {
		t.Errorf("saved stats %+v, want %+v", rec.Stats, a.last.Stats)
	}
	if _, ok := rec.Metrics["swap_ratio"]; !ok {
		t.Error("metrics not saved")
	}
}

func TestAppKeysWhileIdle(t *testing.T) {
	a := newTestApp(t, engine.Instant, nil)

	press(a, "tab")
	if a.ctrl.Algorithm() != engine.Selection {
		t.Errorf("tab selected %v", a.ctrl.Algorithm())
	}

	press(a, "+")
	if got := a.ctrl.Speed().Value(); got != config.DefaultSpeed+speedStep {
		t.Errorf("speed = %d", got)
	}
	press(a, "-")
	press(a, "-")
	if got := a.ctrl.Speed().Value(); got != config.DefaultSpeed-speedStep {
		t.Errorf("speed = %d", got)
	}

	lang := a.lang
	press(a, "l")
	if a.lang == lang {
		t.Error("l should change the snippet language")
	}

	press(a, "c")
	if !a.showChart {
		t.Error("c should toggle the chart")
	}
}

func TestAppResize(t *testing.T) {
	a := newTestApp(t, engine.Instant, nil)

	cmd := press(a, "[")
	if cmd == nil {
		t.Fatal("[ should regenerate")
	}
	a.Update(cmd())
	if a.size != 5 || len(a.frame.Values) != 5 {
		t.Errorf("size = %d, frame = %v", a.size, a.frame.Values)
	}
	if got := a.ctrl.Values(); len(got) != 5 {
		t.Errorf("controller holds %v", got)
	}
}

func TestAppLocksSelectionWhileRunning(t *testing.T) {
	slow := func(ctx context.Context, _ time.Duration) error {
		return engine.Sleep(ctx, time.Millisecond)
	}
	a := newTestApp(t, slow, nil)

	press(a, "enter")
	press(a, "tab")
	if a.ctrl.Algorithm() != engine.Bubble {
		t.Error("algorithm changed during a run")
	}
	if cmd := press(a, "]"); cmd != nil {
		t.Error("resize allowed during a run")
	}

	press(a, "x")
	waitIdle(t, a)
	if a.last == nil || a.last.Completed {
		t.Fatalf("expected an aborted run, got %+v", a.last)
	}
	if a.status != "stopped" {
		t.Errorf("status = %q", a.status)
	}
}

func TestAppView(t *testing.T) {
	a := newTestApp(t, engine.Instant, nil)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	view := a.View()
	for _, s := range []string{"Statistics", "Bubble Sort", "Performance", "no run yet"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q", s)
		}
	}

	press(a, "c")
	if !strings.Contains(a.View(), "Complexity") {
		t.Error("chart toggle not rendered")
	}
}
