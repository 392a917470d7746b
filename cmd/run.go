package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pable/csround/internal/config"
	"github.com/pable/csround/internal/logging"
	"github.com/pable/csround/internal/metrics"
	"github.com/pable/csround/internal/model"
	"github.com/pable/csround/internal/parser"
	"github.com/pable/csround/internal/pipeline"
	"github.com/pable/csround/internal/report"
	"github.com/pable/csround/internal/scan"
	"github.com/pable/csround/internal/storage"
)

// session is what every analysis command needs once flags are parsed.
type session struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	metrics *metrics.Metrics
	env     pipeline.Env
}

// globalFlags maps config keys to the persistent flags overriding them.
var globalFlags = map[string]string{
	"input.demo_root":     "demo-root",
	"output.dir":          "out-dir",
	"output.chart":        "chart",
	"output.min_rounds":   "min-rounds",
	"output.metrics_file": "metrics-file",
	"storage.db_path":     "db",
	"logging.level":       "log-level",
}

// newSession loads and validates the configuration. extra binds
// command-specific flags to config keys the same way.
func newSession(cmd *cobra.Command, extra map[string]string) (*session, error) {
	flags := make(map[string]*pflag.Flag, len(globalFlags)+len(extra))
	for key, name := range globalFlags {
		flags[key] = cmd.Flags().Lookup(name)
	}
	for key, name := range extra {
		flags[key] = cmd.Flags().Lookup(name)
	}

	cfg, err := config.Load(cfgFile, flags)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	names := cfg.Normalizer()
	for _, c := range names.Conflicts() {
		log.Warnw("alias claimed by more than one player, first one wins",
			"spelling", c.Spelling, "players", c.Canonicals)
	}

	return &session{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
		env:     pipeline.Env{Names: names, Teams: cfg.TeamTable()},
	}, nil
}

func (s *session) load(d scan.Demo) (*model.Replay, error) {
	return parser.ParseReplay(d.Path, parser.Options{
		SnapshotWindow: s.cfg.Analysis.SnapshotWindow,
		Event:          d.Event,
	})
}

// analyze runs pipes over every demo under the configured root and writes
// their outputs. Nothing is written when the run is interrupted.
func (s *session) analyze(cmd *cobra.Command, pipes ...pipeline.Pipeline) error {
	defer s.log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := s.cfg.Input.DemoRoot
	demos, err := scan.Demos(root)
	if err != nil {
		return fmt.Errorf("scan demos: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Found %d demos under %s\n", len(demos), root)
	if len(demos) == 0 {
		s.log.Warnw("no demos found, writing empty reports", "root", root)
	}

	started := time.Now()
	runner := &pipeline.Runner{Load: s.load, Log: s.log, Metrics: s.metrics}
	res, err := runner.Run(ctx, demos, pipes)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted, no output written")
		}
		return err
	}

	var db *storage.DB
	if s.cfg.Storage.DBPath != "" {
		if db, err = storage.Open(s.cfg.Storage.DBPath); err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
	}

	for _, p := range pipes {
		if err := s.emit(p, res, started, db); err != nil {
			return err
		}
	}

	if path := s.cfg.Output.MetricsFile; path != "" {
		if err := s.metrics.WriteTextfile(path); err != nil {
			return err
		}
		s.log.Debugw("metrics written", "path", path)
	}
	return nil
}

// emit writes one pipeline's CSV, summary, chart and history row.
func (s *session) emit(p pipeline.Pipeline, res pipeline.Result, started time.Time, db *storage.DB) error {
	tbl := p.Report()
	path, err := report.WriteCSV(s.cfg.Output.Dir, tbl)
	if err != nil {
		return err
	}

	cHeader.Fprintf(os.Stdout, "\n=== %s ===\n", p.Name())
	report.PrintRunStats(os.Stdout, report.RunStats{
		Pipeline:    p.Name(),
		DemosFound:  res.DemosFound,
		DemosFailed: res.DemosFailed,
		KnifeRounds: res.KnifeRounds,
		Skipped:     res.Skipped[p.Name()],
		Players:     countPlayers(tbl),
		CSVPath:     path,
	})
	if sm, ok := p.(pipeline.Summarizer); ok {
		sm.Summary(os.Stdout)
	}

	if ch, ok := p.(pipeline.Charter); ok && s.cfg.Output.Chart {
		chartPath, err := report.SaveChart(s.cfg.Output.Dir, ch.Chart(s.cfg.Output.MinRounds))
		switch {
		case errors.Is(err, report.ErrInsufficientSample):
			s.log.Infow("chart skipped", "pipeline", p.Name(), "reason", err, "min_rounds", s.cfg.Output.MinRounds)
		case err != nil:
			return err
		default:
			fmt.Fprintf(os.Stdout, "  chart saved to %s\n", chartPath)
		}
	}

	if pl, ok := p.(pipeline.Plotter); ok && s.cfg.Output.Chart {
		for _, sc := range pl.Plots() {
			plotPath, err := report.SaveScatter(s.cfg.Output.Dir, sc)
			switch {
			case errors.Is(err, report.ErrInsufficientSample):
				s.log.Infow("plot skipped", "pipeline", p.Name(), "reason", err)
			case err != nil:
				return err
			default:
				fmt.Fprintf(os.Stdout, "  plot saved to %s\n", plotPath)
			}
		}
	}

	if db != nil {
		id, err := db.SaveRun(storage.Run{
			Pipeline:    p.Name(),
			StartedAt:   started,
			DemoRoot:    s.cfg.Input.DemoRoot,
			DemosFound:  res.DemosFound,
			DemosFailed: res.DemosFailed,
			KnifeRounds: res.KnifeRounds,
			CSVPath:     path,
		}, tbl)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		cMuted.Fprintf(os.Stdout, "  run %s stored\n", id)
	}
	return nil
}

// openHistory opens the run-history database named by --db or the config.
func openHistory(cmd *cobra.Command) (*storage.DB, error) {
	cfg, err := config.Load(cfgFile, map[string]*pflag.Flag{
		"storage.db_path": cmd.Flags().Lookup("db"),
	})
	if err != nil {
		return nil, err
	}
	if cfg.Storage.DBPath == "" {
		return nil, errors.New("no run-history database configured: pass --db or set storage.db_path")
	}
	db, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func countPlayers(tbl report.Table) int {
	seen := make(map[string]bool)
	col := tbl.Column("Player")
	if col < 0 {
		return 0
	}
	for _, row := range tbl.Rows {
		seen[row[col]] = true
	}
	return len(seen)
}
