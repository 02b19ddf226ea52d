package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/controller"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/storage"
)

// Scenario is a scripted batch of headless runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one run of a scenario. Zero size means the default size;
// zero seed means a time-based seed.
type ScenarioRun struct {
	Algorithm engine.Algorithm `yaml:"algorithm"`
	Size      int              `yaml:"size"`
	Shape     arrays.Shape     `yaml:"shape"`
	Seed      int64            `yaml:"seed"`
	Save      bool             `yaml:"save"`
}

// Outcome pairs a scenario run with what it produced. RunID is set when the
// run was saved.
type Outcome struct {
	Run    ScenarioRun
	Result controller.Result
	RunID  string
}

type Options struct {
	Store  *storage.Store
	Logger *slog.Logger
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse scenario: %w", err)
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("automation: scenario %q has no runs", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes every run in order without pacing. It stops at the
// first failure and returns the outcomes so far.
func RunScenario(ctx context.Context, scenario *Scenario, opts Options) ([]Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	outcomes := make([]Outcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Runs), "algorithm", run.Algorithm)

		size := run.Size
		if size == 0 {
			size = arrays.DefaultSize
		}
		seed := run.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		rec := metrics.NewRecorder(metrics.DefaultCapacity)
		res, err := runOnce(ctx, run.Algorithm, size, run.Shape, seed, logger, rec)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		out := Outcome{Run: run, Result: res}
		if run.Save && opts.Store != nil {
			record := storage.NewRecord(res, run.Shape.String(), seed, 0)
			record.Metrics = metrics.Collect(swapRatio(res.Stats), densityOf(res))
			id, err := opts.Store.Save(record, rec.Samples())
			if err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
			out.RunID = id
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

func runOnce(ctx context.Context, algo engine.Algorithm, size int, shape arrays.Shape, seed int64, logger *slog.Logger, reporters ...engine.StatsReporter) (controller.Result, error) {
	values, err := arrays.Generate(size, shape, rand.New(rand.NewSource(seed)))
	if err != nil {
		return controller.Result{}, err
	}

	opts := []controller.Option{
		controller.WithSleep(engine.Instant),
		controller.WithLogger(logger),
	}
	for _, r := range reporters {
		opts = append(opts, controller.WithReporter(r))
	}

	ctrl, err := controller.New(algo, values, opts...)
	if err != nil {
		return controller.Result{}, err
	}
	return ctrl.Run(ctx)
}

func swapRatio(s engine.Stats) metrics.Metric {
	m := metrics.NewSwapRatio()
	m.ReportStats(s)
	return m
}

func densityOf(res controller.Result) metrics.Metric {
	m := metrics.NewAccessDensity(res.Size)
	m.ReportStats(res.Stats)
	return m
}

// SizeSweep measures one algorithm over evenly spaced array sizes.
type SizeSweep struct {
	Algorithm engine.Algorithm
	Shape     arrays.Shape
	MinSize   int
	MaxSize   int
	NumSteps  int
	Seed      int64
}

type SweepResult struct {
	Size  int
	Stats engine.Stats
}

// RunSweep sorts one array per size, each seeded from the sweep seed.
func RunSweep(ctx context.Context, sweep *SizeSweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 2 || sweep.MinSize < 1 || sweep.MaxSize < sweep.MinSize {
		return nil, fmt.Errorf("automation: invalid sweep %d..%d in %d steps", sweep.MinSize, sweep.MaxSize, sweep.NumSteps)
	}
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	step := float64(sweep.MaxSize-sweep.MinSize) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		size := sweep.MinSize + int(float64(i)*step+0.5)
		res, err := runOnce(ctx, sweep.Algorithm, size, sweep.Shape, sweep.Seed+int64(i), logger)
		if err != nil {
			return results, err
		}
		if !res.Completed {
			return results, ctx.Err()
		}
		results = append(results, SweepResult{Size: size, Stats: res.Stats})
		logger.Debug("sweep", "algorithm", sweep.Algorithm, "size", size, "comparisons", res.Stats.Comparisons)
	}

	return results, nil
}

// TrialsConfig repeats one algorithm on freshly generated arrays.
type TrialsConfig struct {
	Algorithm engine.Algorithm
	Size      int
	Shape     arrays.Shape
	NumTrials int
	Seed      int64
}

type TrialsResult struct {
	Algorithm engine.Algorithm
	Trials    int
	Mean      engine.Stats
	Min       engine.Stats
	Max       engine.Stats
	Elapsed   time.Duration
}

// RunTrials reports the mean and per-counter extremes over the trials.
func RunTrials(ctx context.Context, cfg *TrialsConfig, logger *slog.Logger) (*TrialsResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("automation: need at least one trial, got %d", cfg.NumTrials)
	}
	if logger == nil {
		logger = slog.Default()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	out := &TrialsResult{Algorithm: cfg.Algorithm}
	var sum engine.Stats
	for trial := 0; trial < cfg.NumTrials; trial++ {
		res, err := runOnce(ctx, cfg.Algorithm, cfg.Size, cfg.Shape, rng.Int63(), logger)
		if err != nil {
			return nil, err
		}
		if !res.Completed {
			return nil, ctx.Err()
		}

		s := res.Stats
		if trial == 0 {
			out.Min, out.Max = s, s
		}
		out.Min = engine.Stats{
			Comparisons: min(out.Min.Comparisons, s.Comparisons),
			Swaps:       min(out.Min.Swaps, s.Swaps),
			Accesses:    min(out.Min.Accesses, s.Accesses),
		}
		out.Max = engine.Stats{
			Comparisons: max(out.Max.Comparisons, s.Comparisons),
			Swaps:       max(out.Max.Swaps, s.Swaps),
			Accesses:    max(out.Max.Accesses, s.Accesses),
		}
		sum.Comparisons += s.Comparisons
		sum.Swaps += s.Swaps
		sum.Accesses += s.Accesses
		out.Elapsed += res.Elapsed
		out.Trials++
	}

	n := int64(out.Trials)
	out.Mean = engine.Stats{
		Comparisons: sum.Comparisons / n,
		Swaps:       sum.Swaps / n,
		Accesses:    sum.Accesses / n,
	}
	return out, nil
}

// RunBench runs the same trials for every algorithm, one goroutine per
// algorithm. With a non-zero seed every algorithm sorts the same arrays.
func RunBench(ctx context.Context, algos []engine.Algorithm, cfg TrialsConfig, logger *slog.Logger) ([]*TrialsResult, error) {
	results := make([]*TrialsResult, len(algos))
	errs := make([]error, len(algos))

	var wg sync.WaitGroup
	for i, algo := range algos {
		wg.Add(1)
		go func(idx int, algo engine.Algorithm) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Algorithm = algo
			results[idx], errs[idx] = RunTrials(ctx, &cfgCopy, logger)
		}(i, algo)
	}

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
