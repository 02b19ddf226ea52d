package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string

	size     int
	shape    string
	seed     int64
	speed    int
	instant  bool
	preset   string
	noSave   bool
	lang     string
	trials   int
	measured bool
	svgFile  string
)

// main wires the commands; with no subcommand it opens the terminal UI.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sortviz",
		Short:         "sorting algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLevel, "log level (debug, info, warn, error)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal visualizer",
		RunE:  runTUI,
	}

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "sort one array headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSort,
	}
	runCmd.Flags().IntVar(&size, "size", 0, "array size")
	runCmd.Flags().StringVar(&shape, "shape", "random", "array shape")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	runCmd.Flags().IntVar(&speed, "speed", config.DefaultSpeed, "animation speed")
	runCmd.Flags().BoolVar(&instant, "instant", false, "skip the step delay")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the run")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the final array as an SVG file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the counters of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the comparison trace as an SVG file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare all algorithms on the same arrays",
		RunE:  benchAlgorithms,
	}
	benchCmd.Flags().IntVar(&size, "size", 0, "array size")
	benchCmd.Flags().StringVar(&shape, "shape", "random", "array shape")
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	benchCmd.Flags().IntVar(&trials, "trials", 5, "arrays per algorithm")

	complexityCmd := &cobra.Command{
		Use:   "complexity [algorithm]",
		Short: "plot theoretical growth, or measured comparisons",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotComplexity,
	}
	complexityCmd.Flags().BoolVar(&measured, "measured", false, "sort arrays of growing size and plot comparisons")
	complexityCmd.Flags().StringVar(&shape, "shape", "random", "array shape")
	complexityCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	infoCmd := &cobra.Command{
		Use:   "info [algorithm]",
		Short: "show algorithm complexity and stability",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showInfo,
	}

	codeCmd := &cobra.Command{
		Use:   "code [algorithm]",
		Short: "print an implementation",
		Args:  cobra.ExactArgs(1),
		RunE:  showCode,
	}
	codeCmd.Flags().StringVar(&lang, "lang", "js", "language (js, python, java, c++, c, go)")

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the sorts listed in a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(tuiCmd, runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, benchCmd,
		complexityCmd, infoCmd, codeCmd, presetsCmd, scenarioCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads --config when given, otherwise the defaults, and then
// applies the persistent flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

// algorithmArg parses args[0], falling back to the configured algorithm.
func algorithmArg(args []string, fallback engine.Algorithm) (engine.Algorithm, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	return engine.ParseAlgorithm(args[0])
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "sortviz.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.LogLevel)
	logger.Info("session start", "time", time.Now().Format(time.RFC3339), "algorithm", cfg.Algorithm)

	return viz.Run(cmd.Context(), viz.Options{Config: cfg, Store: st, Logger: logger})
}
