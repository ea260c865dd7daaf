package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/own"
	"github.com/gogpu/own/config"
	"github.com/gogpu/own/engine"
	"github.com/gogpu/own/ownmetrics"
)

const (
	cliName        = "waypoints"
	cliDescription = "a headless shape that walks a square, owned by explicit handles"
)

var errLeaked = errors.New("ownership handles leaked")

type runFlags struct {
	ConfigFile  string
	Frames      int
	OutputDir   string
	FPS         int
	NoPace      bool
	MetricsFile string
	LogLevel    string
}

func newRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           cliName,
		Short:         cliDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(newRunCommand())
	return root
}

func newRunCommand() *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the demo for a number of frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "YAML config file")
	cmd.Flags().IntVar(&flags.Frames, "frames", 0, "frames to render, 0 runs until interrupted (overrides the config file)")
	cmd.Flags().StringVarP(&flags.OutputDir, "out", "o", "", "directory for PNG frames")
	cmd.Flags().IntVar(&flags.FPS, "fps", 0, "simulation rate")
	cmd.Flags().BoolVar(&flags.NoPace, "no-pace", false, "do not throttle frames to real time")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics", "", "write Prometheus metrics to this file at exit")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "warn", "debug, info, warn or error")
	return cmd
}

func loadConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(flags.ConfigFile); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = flags.Frames
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = flags.OutputDir
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = flags.FPS
	}
	if flags.NoPace {
		cfg.Pace = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cmd *cobra.Command, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	own.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})))
	return nil
}

func run(cmd *cobra.Command, flags *runFlags) error {
	if err := setupLogger(cmd, flags.LogLevel); err != nil {
		return err
	}
	defer own.SetLogger(nil)

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector, err := ownmetrics.Install(reg)
	if err != nil {
		return err
	}
	defer ownmetrics.Uninstall()

	var sink engine.FrameSink = engine.DiscardSink{}
	if cfg.OutputDir != "" {
		sink = engine.PNGSink{Dir: cfg.OutputDir}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	stats, runErr := engine.NewApp(cfg, sink).Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	leaks := collector.Leaks()
	for k, n := range leaks {
		own.Logger().Warn("waypoints: leaked handles", "handle", k, "live", n)
	}
	printSummary(cmd.OutOrStdout(), stats, leaks)

	if flags.MetricsFile != "" {
		if err := writeMetrics(flags.MetricsFile, reg); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	if len(leaks) > 0 {
		return fmt.Errorf("%w: %d types", errLeaked, len(leaks))
	}
	return nil
}

func printSummary(w io.Writer, stats engine.Stats, leaks map[string]int) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "frames rendered:   %d\n", stats.Frames)
	p.Fprintf(w, "waypoints reached: %d\n", stats.WaypointsReached)
	p.Fprintf(w, "laps completed:    %d\n", stats.Laps)

	live := 0
	keys := make([]string, 0, len(leaks))
	for k, n := range leaks {
		live += n
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p.Fprintf(w, "live handles:      %d\n", live)
	for _, k := range keys {
		p.Fprintf(w, "  leaked %s: %d\n", k, leaks[k])
	}
}

func writeMetrics(filename string, g prometheus.Gatherer) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := ownmetrics.WriteText(f, g); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
