package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/app"
	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/interfaces/export"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	logger := logging.NewConsole(cfg.LogLevel, os.Stderr)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Error("export failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

type options struct {
	outDir  string
	limit   int
	persist bool
}

func parseFlags(args []string, cfg config.Config, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := options{}
	fs.StringVar(&opts.outDir, "out", ".", "directory the CSV files are written to")
	fs.IntVar(&opts.limit, "limit", cfg.FeedPlayerLimit, "score only the first N players (0 = all)")
	fs.BoolVar(&opts.persist, "persist", true, "store the run in Postgres when DB_ENABLED=true")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.limit < 0 {
		return options{}, fmt.Errorf("-limit must be >= 0")
	}
	return opts, nil
}

func run(ctx context.Context, cfg config.Config, args []string, logger *logging.Logger) error {
	opts, err := parseFlags(args, cfg, os.Stderr)
	if err != nil {
		return err
	}
	cfg.FeedPlayerLimit = opts.limit

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	started := time.Now()
	points := application.Points()
	report, err := points.Report(ctx)
	if err != nil {
		return err
	}
	logger.Info("points scored",
		"players", report.PlayerCount,
		"weeks", len(report.Weekly),
		"rule_table", report.RuleTable,
		"elapsed", time.Since(started).String(),
	)

	seasonPath := filepath.Join(opts.outDir, export.SeasonFileName)
	if err := writeFile(seasonPath, func(w io.Writer) error {
		return export.WriteCSV(w, report.Season, report.Codes)
	}); err != nil {
		return err
	}
	logger.Info("csv written", "path", seasonPath, "records", len(report.Season))

	weeklyPath := filepath.Join(opts.outDir, export.WeeklyFileName)
	if err := writeFile(weeklyPath, func(w io.Writer) error {
		return export.WriteWeeklyCSV(w, report.Weekly, report.Codes)
	}); err != nil {
		return err
	}
	logger.Info("csv written", "path", weeklyPath, "weeks", len(report.Weekly))

	if !opts.persist || !application.Persistent() {
		logger.Info("run not persisted", "persist_flag", opts.persist, "db_enabled", application.Persistent())
		return nil
	}

	run, err := points.Export(ctx)
	if err != nil {
		return err
	}
	logger.Info("run persisted", "run_id", run.ID, "records", run.RecordCount())
	return nil
}

// writeFile renders into a temp file next to path and renames it into place.
func writeFile(path string, render func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := render(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
