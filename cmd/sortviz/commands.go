package main

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/automation"
	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/controller"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
)

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	algo, err := algorithmArg(args, cfg.Algorithm)
	if err != nil {
		return err
	}

	if preset != "" {
		p := config.GetPreset(algo, preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(algo))
		}
		p.DataDir, p.LogLevel, p.Pacing = cfg.DataDir, cfg.LogLevel, cfg.Pacing
		cfg = p
	}

	// Flags override the file and the preset only when given.
	cfg.Algorithm = algo
	if cmd.Flags().Changed("size") {
		cfg.Size = size
	}
	if cmd.Flags().Changed("shape") {
		if cfg.Shape, err = arrays.ParseShape(shape); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.LogLevel)
	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	values, err := arrays.Generate(cfg.Size, cfg.Shape, rand.New(rand.NewSource(runSeed)))
	if err != nil {
		return err
	}

	trace := metrics.NewRecorder(metrics.DefaultCapacity)
	opts := []controller.Option{
		controller.WithLogger(logger),
		controller.WithPacing(cfg.Pacing.Engine()),
		controller.WithSpeed(cfg.Speed),
		controller.WithReporter(trace),
	}
	if instant {
		opts = append(opts, controller.WithSleep(engine.Instant))
	} else {
		opts = append(opts, controller.WithSink(engine.RenderFunc(printProgress)))
	}
	ctrl, err := controller.New(algo, values, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("sorting %d %s values with %s...\n", cfg.Size, cfg.Shape, catalog.Lookup(algo).Title)
	res, err := ctrl.Run(cmd.Context())
	if !instant {
		fmt.Println()
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", algo, err)
	}

	status := "sorted"
	if !res.Completed {
		status = "stopped"
	}
	fmt.Printf("%s in %v\n", status, res.Elapsed.Round(time.Microsecond))
	fmt.Printf("result: %v\n", res.Final)
	fmt.Printf("comparisons: %d\n", res.Stats.Comparisons)
	fmt.Printf("swaps: %d\n", res.Stats.Swaps)
	fmt.Printf("accesses: %d\n", res.Stats.Accesses)

	if svgFile != "" {
		var h engine.Highlight
		if res.Completed {
			h = engine.SortedFrom{Index: 0}
		}
		if err := writeFile(svgFile, export.BarsToSVG(res.Final, h, export.DefaultSVGOptions())); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgFile)
	}

	if noSave {
		return nil
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	rec := storage.NewRecord(res, cfg.Shape.String(), runSeed, ctrl.Speed().Value())
	rec.Metrics = metrics.Collect(collectRatios(res)...)
	runID, err := st.Save(rec, trace.Samples())
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, val := range rec.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}
	return nil
}

func printProgress(values []int, _ engine.Highlight) {
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	fmt.Printf("\r%s", viz.Sparkline(data, len(data)))
}

func collectRatios(res controller.Result) []metrics.Metric {
	swaps := metrics.NewSwapRatio()
	density := metrics.NewAccessDensity(res.Size)
	for _, m := range []metrics.Metric{swaps, density} {
		m.ReportStats(res.Stats)
	}
	return []metrics.Metric{swaps, density}
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tSHAPE\tCMP\tSWAPS\tDONE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%d\t%v\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Shape,
			run.Stats.Comparisons,
			run.Stats.Swaps,
			run.Completed,
		)
	}
	return w.Flush()
}

// resolveRun loads the named run, or the newest one when no id is given.
func resolveRun(st *storage.Store, args []string) (*storage.RunRecord, error) {
	if len(args) == 0 {
		return st.Latest()
	}
	return st.Load(args[0])
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	samples, err := st.LoadTrace(meta.ID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("algorithm: %s\n", meta.Algorithm)
	fmt.Printf("samples: %d\n\n", len(samples))
	fmt.Println(viz.TraceChart(samples, 70, 15, "counters over steps"))

	if svgFile != "" {
		if err := writeFile(svgFile, export.TraceToSVG(samples, 800, 300, "#4ade80")); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgFile)
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return storage.New(cfg.DataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return storage.New(cfg.DataDir).ExportCSV(os.Stdout, args[0])
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("size") {
		cfg.Size = size
	}
	benchShape, err := arrays.ParseShape(shape)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	fmt.Printf("%d arrays of %d %s values per algorithm\n\n", trials, cfg.Size, benchShape)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	results, err := automation.RunBench(cmd.Context(), engine.Algorithms(), automation.TrialsConfig{
		Size:      cfg.Size,
		Shape:     benchShape,
		NumTrials: trials,
		Seed:      seed,
	}, logger)
	if err != nil {
		return fmt.Errorf("bench: %w", err)
	}

	fmt.Fprintln(w, "ALGORITHM\tCMP\tSWAPS\tACCESSES\tMIN CMP\tMAX CMP\tTIME\t")
	for _, res := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%v\t\n",
			res.Algorithm,
			res.Mean.Comparisons,
			res.Mean.Swaps,
			res.Mean.Accesses,
			res.Min.Comparisons,
			res.Max.Comparisons,
			(res.Elapsed / time.Duration(res.Trials)).Round(time.Microsecond),
		)
	}
	return w.Flush()
}

func plotComplexity(cmd *cobra.Command, args []string) error {
	if !measured {
		fmt.Println(viz.ComplexityChart(70, 20))
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	algo, err := algorithmArg(args, cfg.Algorithm)
	if err != nil {
		return err
	}
	sweepShape, err := arrays.ParseShape(shape)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.SizeSweep{
		Algorithm: algo,
		Shape:     sweepShape,
		MinSize:   10,
		MaxSize:   arrays.MaxSize,
		NumSteps:  10,
		Seed:      seed,
	}, newLogger(os.Stderr, cfg.LogLevel))
	if err != nil {
		return err
	}

	comparisons := make([]float64, len(results))
	for i, r := range results {
		comparisons[i] = float64(r.Stats.Comparisons)
	}
	fmt.Println(viz.MeasuredChart(fmt.Sprintf("%s comparisons, n = 10..%d", algo, arrays.MaxSize), comparisons, 70, 15))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSIZE\tCMP\tSWAPS")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\n", r.Size, r.Stats.Comparisons, r.Stats.Swaps)
	}
	return w.Flush()
}

func showInfo(cmd *cobra.Command, args []string) error {
	infos := catalog.All()
	if len(args) > 0 {
		algo, err := engine.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}
		info := catalog.Lookup(algo)
		fmt.Println(info.Title)
		fmt.Printf("  time:   %s\n", info.Time)
		fmt.Printf("  space:  %s\n", info.Space)
		fmt.Printf("  stable: %s\n", info.StableLabel())
		fmt.Printf("\n%s\n", info.Summary)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tTIME\tSPACE\tSTABLE")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Title, info.Time, info.Space, info.StableLabel())
	}
	return w.Flush()
}

func showCode(cmd *cobra.Command, args []string) error {
	algo, err := engine.ParseAlgorithm(args[0])
	if err != nil {
		return err
	}
	language, err := catalog.ParseLanguage(lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v, showing %s\n", err, language)
	}
	src, err := catalog.Snippet(algo, language)
	if err != nil {
		return err
	}
	fmt.Printf("// %s in %s\n\n%s\n", catalog.Lookup(algo).Title, language, src)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	algos := engine.Algorithms()
	if len(args) > 0 {
		algo, err := engine.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}
		algos = []engine.Algorithm{algo}
	}

	for _, algo := range algos {
		names := config.ListPresets(algo)
		if len(names) == 0 {
			fmt.Printf("no presets for %s\n", algo)
			continue
		}
		fmt.Printf("presets for %s:\n", algo)
		for _, name := range names {
			p := config.Presets[algo][name]
			fmt.Printf("  %-12s size=%d shape=%s speed=%d\n", name, p.Size, p.Shape, p.Speed)
		}
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	outcomes, err := automation.RunScenario(cmd.Context(), scenario, automation.Options{
		Store:  st,
		Logger: newLogger(os.Stderr, cfg.LogLevel),
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nALGORITHM\tSIZE\tSHAPE\tCMP\tSWAPS\tTIME\tRUN")
	for _, o := range outcomes {
		runID := o.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%v\t%s\n",
			o.Result.Algorithm,
			o.Result.Size,
			o.Run.Shape,
			o.Result.Stats.Comparisons,
			o.Result.Stats.Swaps,
			o.Result.Elapsed.Round(time.Microsecond),
			runID,
		)
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}
