package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pfrederiksen/fifa-stats/internal/config"
	"github.com/pfrederiksen/fifa-stats/internal/fifa"
	"github.com/pfrederiksen/fifa-stats/internal/logger"
	"github.com/pfrederiksen/fifa-stats/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options are the persistent flags shared by every command.
type options struct {
	dataDir    string
	format     string
	league     string
	week       string
	maxRetries uint64
	rpm        int
	verbose    bool
	progress   bool
}

// app carries what the commands need once flags and config are resolved.
type app struct {
	opts *options

	cfg     *config.Config
	format  storage.Format
	log     *logger.Logger
	metrics *logger.Metrics
	site    *fifa.Site

	out    io.Writer
	errOut io.Writer
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{opts: &options{}}

	cmd := &cobra.Command{
		Use:   "fifa-stats",
		Short: "Export per-season football player statistics",
		Long: `A CLI tool that walks a league's teams, rosters and player careers on
sofifa.com and exports one record per player and season as CSV or JSON lines.

Settings are read from FIFA_* environment variables (or a .env file) and can be
overridden with flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.dataDir, "data-dir", ".", "Directory for exported files (env: FIFA_DATA_DIR)")
	flags.StringVar(&a.opts.format, "format", "csv", "Export format: csv or json")
	flags.StringVar(&a.opts.league, "league", fifa.DefaultLeague, "League identifier (env: FIFA_LEAGUE)")
	flags.StringVar(&a.opts.week, "week", fifa.DefaultWeek, "Rating update within the season (env: FIFA_WEEK)")
	flags.Uint64Var(&a.opts.maxRetries, "max-retries", 0, "Give up after this many rate-limited retries, 0 for no limit (env: FIFA_MAX_RETRIES)")
	flags.IntVar(&a.opts.rpm, "rpm", 0, "Maximum requests per minute, 0 for no pacing (env: FIFA_REQUESTS_PER_MINUTE)")
	flags.BoolVar(&a.opts.verbose, "verbose", false, "Enable debug logging")
	flags.BoolVar(&a.opts.progress, "progress", false, "Show progress bars on stderr")

	cmd.AddCommand(
		newSeasonCmd(a),
		newPlayersCmd(a),
		newTeamsCmd(a),
	)

	return cmd
}

// setup resolves config, lets explicit flags win over it, and builds the site.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.opts.dataDir
	}
	if flags.Changed("league") {
		cfg.League = a.opts.league
	}
	if flags.Changed("week") {
		cfg.Week = a.opts.week
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries = a.opts.maxRetries
	}
	if flags.Changed("rpm") {
		cfg.RequestsPerMinute = a.opts.rpm
	}
	if a.opts.verbose {
		cfg.LogLevel = logger.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	format, err := storage.ParseFormat(a.opts.format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.format = format
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()
	a.log = logger.New(cfg.LogLevel, a.errOut)
	a.metrics = logger.NewMetrics()
	a.site = cfg.Site(cfg.Client(a.log, a.metrics), a.log)

	a.log.Debug("Settings resolved", logger.Fields{
		"base_url":    cfg.BaseURL,
		"league":      cfg.League,
		"week":        cfg.Week,
		"data_dir":    cfg.DataDir,
		"format":      string(format),
		"max_retries": cfg.MaxRetries,
		"rpm":         cfg.RequestsPerMinute,
	})
	return nil
}

// export writes records to <base>.<format> and reports where they went.
func (a *app) export(base string, records []*fifa.SeasonRecord) error {
	fields := logger.Fields{"data_dir": a.cfg.DataDir, "export": base}

	store, err := storage.New(a.cfg.DataDir)
	if err != nil {
		return a.fail("Export failed", fields, fmt.Errorf("initializing storage: %w", err))
	}

	path, err := store.SaveRecords(base, a.format, records)
	if err != nil {
		return a.fail("Export failed", fields, fmt.Errorf("saving records: %w", err))
	}

	a.metrics.SetGauge("export.records", float64(len(records)))
	a.log.Info("Export written", logger.Fields{
		"path":     path,
		"records":  len(records),
		"requests": a.metrics.Counter("fetch.requests"),
		"metrics":  a.metrics.GetSnapshot(),
	})
	fmt.Fprintf(a.out, "Wrote %d records to %s\n", len(records), path)
	return nil
}

// fail logs err at ERROR level and returns it unchanged.
func (a *app) fail(message string, fields logger.Fields, err error) error {
	a.log.Error(message, fields, err)
	return err
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
