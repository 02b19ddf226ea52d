package viz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/controller"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/storage"
)

const (
	frameRate  = time.Second / 30
	speedStep  = 5
	sizeStep   = 5
	sideWidth  = 38
	minWidth   = 60
	minHeight  = 24
	codeHeight = 18
)

type TickMsg time.Time

type regeneratedMsg struct {
	values []int
	seed   int64
	err    error
}

// Options configure the interactive app. Sleep replaces the paced sleep
// and is only set by tests.
type Options struct {
	Config *config.Config
	Store  *storage.Store
	Logger *slog.Logger
	Sleep  engine.SleepFunc
}

// App is the bubbletea model of the visualizer. The sort runs on the
// controller's goroutine; the app reads its progress through a Bridge on
// every tick.
type App struct {
	ctx    context.Context
	ctrl   *controller.Controller
	bridge *Bridge
	trace  *metrics.Recorder
	store  *storage.Store
	logger *slog.Logger
	rng    *rand.Rand

	size  int
	shape arrays.Shape
	seed  int64
	lang  catalog.Language

	theme  Theme
	styles Styles
	help   help.Model

	frame   Frame
	running bool
	started time.Time
	elapsed time.Duration
	last    *controller.Result
	runID   string
	status  string
	err     error

	showChart bool
	compact   bool
	ticks     int
	width     int
	height    int
}

func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	values, err := arrays.Generate(cfg.Size, cfg.Shape, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	a := &App{
		ctx:    ctx,
		bridge: NewBridge(),
		trace:  metrics.NewRecorder(metrics.DefaultCapacity),
		store:  opts.Store,
		logger: logger.With("component", "viz"),
		rng:    rand.New(rand.NewSource(seed + 1)),
		size:   cfg.Size,
		shape:  cfg.Shape,
		seed:   seed,
		lang:   cfg.Language,
		theme:  GetTheme(cfg.Theme),
		help:   help.New(),
		status: "ready",
		width:  100,
		height: 40,
	}
	a.styles = NewStyles(a.theme)

	ctrlOpts := []controller.Option{
		controller.WithLogger(logger),
		controller.WithPacing(cfg.Pacing.Engine()),
		controller.WithSpeed(cfg.Speed),
		controller.WithSink(a.bridge),
		controller.WithReporter(a.bridge),
		controller.WithReporter(a.trace),
		controller.WithOnFinish(a.bridge.Finish),
	}
	if opts.Sleep != nil {
		ctrlOpts = append(ctrlOpts, controller.WithSleep(opts.Sleep))
	}
	a.ctrl, err = controller.New(cfg.Algorithm, values, ctrlOpts...)
	if err != nil {
		return nil, err
	}
	a.bridge.Show(values)
	a.frame = a.bridge.Peek()
	return a, nil
}

// Run starts the app in the alternate screen and blocks until the user
// quits. A run still in flight is stopped before returning.
func Run(ctx context.Context, opts Options) error {
	app, err := NewApp(ctx, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	app.ctrl.Stop()
	if werr := app.ctrl.Wait(context.Background()); err == nil {
		err = werr
	}
	return err
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *App) Init() tea.Cmd {
	return tick()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
	case TickMsg:
		a.poll()
		return a, tick()
	case regeneratedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.seed = msg.seed
		a.size = len(msg.values)
		a.bridge.Show(msg.values)
		a.frame = a.bridge.Peek()
		a.elapsed = 0
		a.status = "new array"
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		a.ctrl.Stop()
		return tea.Quit
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, keys.Start):
		a.start()
	case key.Matches(msg, keys.Stop):
		if a.running {
			a.ctrl.Stop()
			a.status = "stopping"
		}
	case key.Matches(msg, keys.Regenerate):
		return a.regenerate(a.size, a.shape)
	case key.Matches(msg, keys.NextAlgo):
		a.selectAlgorithm(a.ctrl.Algorithm().Next())
	case key.Matches(msg, keys.PrevAlgo):
		a.selectAlgorithm(a.ctrl.Algorithm().Prev())
	case key.Matches(msg, keys.Smaller):
		return a.resize(-sizeStep)
	case key.Matches(msg, keys.Larger):
		return a.resize(sizeStep)
	case key.Matches(msg, keys.Shape):
		if a.busy() {
			return nil
		}
		a.shape = a.shape.Next()
		return a.regenerate(a.size, a.shape)
	case key.Matches(msg, keys.Faster):
		a.ctrl.Speed().Add(speedStep)
	case key.Matches(msg, keys.Slower):
		a.ctrl.Speed().Add(-speedStep)
	case key.Matches(msg, keys.Language):
		a.lang = a.lang.Next()
	case key.Matches(msg, keys.Theme):
		a.theme = a.theme.Next()
		a.styles = NewStyles(a.theme)
	case key.Matches(msg, keys.Chart):
		a.showChart = !a.showChart
	case key.Matches(msg, keys.View):
		a.compact = !a.compact
	}
	return nil
}

func (a *App) busy() bool {
	if a.running {
		a.status = "stop the run first"
		return true
	}
	return false
}

func (a *App) start() {
	if a.busy() {
		return
	}
	a.trace.Reset()
	if err := a.ctrl.Start(a.ctx); err != nil {
		a.err = err
		return
	}
	a.running = true
	a.started = time.Now()
	a.err = nil
	a.runID = ""
	a.status = "sorting"
}

func (a *App) selectAlgorithm(algo engine.Algorithm) {
	if a.busy() {
		return
	}
	if err := a.ctrl.SetAlgorithm(algo); err != nil {
		a.err = err
		return
	}
	a.status = algo.String() + " selected"
}

func (a *App) resize(delta int) tea.Cmd {
	if a.busy() {
		return nil
	}
	size := arrays.ClampSize(a.size + delta)
	if size == a.size {
		return nil
	}
	return a.regenerate(size, a.shape)
}

// regenerate builds the new array off the UI goroutine, since stopping a
// run waits for its current pause to end.
func (a *App) regenerate(size int, shape arrays.Shape) tea.Cmd {
	seed := a.rng.Int63()
	ctx, ctrl := a.ctx, a.ctrl
	if a.running {
		a.status = "stopping"
	}
	return func() tea.Msg {
		values, err := arrays.Generate(size, shape, rand.New(rand.NewSource(seed)))
		if err == nil {
			err = ctrl.Regenerate(ctx, values)
		}
		return regeneratedMsg{values: values, seed: seed, err: err}
	}
}

func (a *App) poll() {
	frame, res := a.bridge.Poll()
	a.frame = frame
	a.ticks++
	if a.running {
		a.elapsed = time.Since(a.started)
	}
	if res != nil {
		a.finish(*res)
	}
}

func (a *App) finish(res controller.Result) {
	a.running = false
	a.last = &res
	a.elapsed = res.Elapsed
	switch {
	case res.Err != nil:
		a.err = res.Err
		a.status = "failed"
	case res.Completed:
		a.status = "sorted"
	default:
		a.status = "stopped"
	}
	if a.store == nil {
		return
	}

	rec := storage.NewRecord(res, a.shape.String(), a.seed, a.ctrl.Speed().Value())
	swaps, density := metrics.NewSwapRatio(), metrics.NewAccessDensity(res.Size)
	swaps.ReportStats(res.Stats)
	density.ReportStats(res.Stats)
	rec.Metrics = metrics.Collect(swaps, density)
	id, err := a.store.Save(rec, a.trace.Samples())
	if err != nil {
		a.logger.Error("save run", "error", err)
		a.err = err
		return
	}
	a.runID = id
	a.logger.Info("run saved", "id", id)
}

func (a *App) View() string {
	width := max(a.width, minWidth)
	height := max(a.height, minHeight)
	mainWidth := width - sideWidth - 4
	barHeight := max(height-codeHeight-8, 6)

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		GradientText("SORTVIZ", a.theme.Accent, a.theme.Swap),
		"  ",
		a.styles.Title.Render(catalog.Lookup(a.ctrl.Algorithm()).Title),
		"  ",
		a.statusLine(),
	)

	layout := DefaultBarLayout(mainWidth-4, barHeight)
	var bars string
	if a.compact || !layout.Fits(len(a.frame.Values)) {
		bars = RenderCompact(a.frame.Values, layout, a.theme)
	} else {
		bars = RenderBars(a.frame.Values, a.frame.Highlight, layout, a.theme)
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		a.styles.Panel.Width(mainWidth).Render(bars),
		a.styles.Panel.Width(sideWidth).Render(a.statsView()),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		a.styles.Panel.Width(mainWidth).Render(a.codeView()),
		a.styles.Panel.Width(sideWidth).Render(a.chartView()),
	)

	parts := []string{header, top, bottom}
	if a.err != nil {
		parts = append(parts, a.styles.Error.Render("error: "+a.err.Error()))
	}
	parts = append(parts, a.help.View(keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) statusLine() string {
	switch a.ctrl.State() {
	case controller.Running:
		return a.styles.Running.Render(AnimatedSpinner(a.ticks) + " " + a.status)
	case controller.Stopping:
		return a.styles.Stopping.Render(AnimatedSpinner(a.ticks) + " stopping")
	}
	return a.styles.Idle.Render(a.status)
}

func (a *App) row(label, value string) string {
	return a.styles.Label.Render(label) + a.styles.Value.Render(value)
}

func (a *App) statsView() string {
	info := catalog.Lookup(a.ctrl.Algorithm())
	speed := a.ctrl.Speed().Value()
	pacing := a.ctrl.Pacing()
	stats := a.frame.Stats

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Statistics") + "\n")
	b.WriteString(a.row("Algorithm", info.Title) + "\n")
	b.WriteString(a.row("Size", fmt.Sprintf("%d", len(a.frame.Values))) + "\n")
	b.WriteString(a.row("Shape", a.shape.String()) + "\n")
	b.WriteString(a.row("Speed", fmt.Sprintf("%d (%v)", speed, pacing.DelayFor(speed))) + "\n")
	b.WriteString(Gauge(float64(speed)/float64(pacing.SpeedMax), sideWidth-4, a.theme.Accent, a.theme.Border) + "\n")
	b.WriteString(a.row("Comparisons", fmt.Sprintf("%d", stats.Comparisons)) + "\n")
	b.WriteString(a.row("Swaps", fmt.Sprintf("%d", stats.Swaps)) + "\n")
	b.WriteString(a.row("Accesses", fmt.Sprintf("%d", stats.Accesses)) + "\n")
	b.WriteString(a.row("Elapsed", a.elapsed.Round(time.Millisecond).String()) + "\n")
	if comparisons, _, _ := a.trace.Series(); len(comparisons) > 1 {
		b.WriteString(a.styles.Subtle.Render(Sparkline(comparisons, sideWidth-4)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(a.row("Time", info.Time) + "\n")
	b.WriteString(a.row("Space", info.Space) + "\n")
	b.WriteString(a.row("Stable", info.StableLabel()) + "\n")
	if a.runID != "" {
		b.WriteString(a.styles.Subtle.Render("saved "+a.runID) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) codeView() string {
	algo := a.ctrl.Algorithm()
	title := a.styles.Title.Render(fmt.Sprintf("%s in %s", catalog.Lookup(algo).Title, a.lang))
	src, err := catalog.Snippet(algo, a.lang)
	if err != nil {
		src = err.Error()
	}
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	if len(lines) > codeHeight {
		lines = append(lines[:codeHeight-1], "...")
	}
	return title + "\n" + a.styles.Code.Render(strings.Join(lines, "\n"))
}

func (a *App) chartView() string {
	if a.showChart {
		return a.styles.Title.Render("Complexity") + "\n" + ComplexityChart(sideWidth-12, codeHeight-6)
	}
	out := a.styles.Title.Render("Performance") + "\n"
	if a.last == nil {
		return out + a.styles.ChartCaption.Render("no run yet")
	}
	return out + PerformanceChart(a.last.Stats, a.last.Elapsed, sideWidth-4, a.theme)
}
