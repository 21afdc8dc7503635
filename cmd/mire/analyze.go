package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/mirelabs/mire/internal/output"
	"github.com/mirelabs/mire/internal/progress"
	"github.com/mirelabs/mire/internal/report"
	"github.com/mirelabs/mire/pkg/analyzer"
	"github.com/mirelabs/mire/pkg/config"
	"github.com/mirelabs/mire/pkg/scanner"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"an"},
		Usage:     "Score the files under a path",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Worker goroutines (default: min(4, cores))",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Per-file analysis budget in seconds (0 disables)",
			},
			&cli.StringSliceFlag{
				Name:  "weight",
				Usage: "Metric weight override, metric=value (repeatable)",
			},
			&cli.IntFlag{
				Name:  "max-files",
				Usage: "Cap the number of files analyzed (0 means no cap)",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Worst files to show in the report",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	target := "."
	if c.Args().Len() > 0 {
		target = c.Args().First()
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := applyFlags(c, cfg); err != nil {
		return err
	}

	units, truncated, err := scanner.New(cfg).Units(target, cfg.Analysis.MaxFiles)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", target, err)
	}
	if len(units) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	format := output.ParseFormat(c.String("format"))
	var bar *progress.Bar
	if format == output.FormatText && c.String("output") == "" {
		bar = progress.NewBar("Analyzing...", len(units))
		tracker := analyzer.NewTracker(func(_, _ int, _ string) { bar.Tick() })
		ctx = analyzer.WithTracker(ctx, tracker)
	}

	verdict := analyzer.New(cfg).AnalyzeUnits(ctx, units)
	if bar != nil {
		bar.FinishSuccess()
	}
	if truncated > 0 {
		verdict.Diagnostics = append(verdict.Diagnostics,
			fmt.Sprintf("file cap reached, %d files not analyzed", truncated))
	}

	formatter, err := output.NewFormatter(format, c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(report.New(verdict, cfg.Output.TopFiles))
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

// applyFlags layers command-line overrides onto the loaded config.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("workers") {
		cfg.Analysis.Workers = c.Int("workers")
	}
	if c.IsSet("timeout") {
		cfg.Analysis.TimeoutSecs = c.Int("timeout")
	}
	if c.IsSet("max-files") {
		cfg.Analysis.MaxFiles = c.Int("max-files")
	}
	if c.IsSet("top") {
		cfg.Output.TopFiles = c.Int("top")
	}
	if c.IsSet("verbose") {
		cfg.Output.Verbose = c.Bool("verbose")
	}

	for _, pair := range c.StringSlice("weight") {
		id, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid weight %q, expected metric=value", pair)
		}
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil || w < 0 {
			return fmt.Errorf("invalid weight value %q for metric %s", raw, id)
		}
		if cfg.Weights == nil {
			cfg.Weights = make(map[string]float64)
		}
		cfg.Weights[id] = w
	}
	return nil
}
