package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/saturn/pkg/audit"
	"mercator-hq/saturn/pkg/cli"
	"mercator-hq/saturn/pkg/config"
	"mercator-hq/saturn/pkg/deployments"
	"mercator-hq/saturn/pkg/deployments/api"
	"mercator-hq/saturn/pkg/metrics"
	"mercator-hq/saturn/pkg/retention"
	"mercator-hq/saturn/pkg/telemetry/logging"
)

var pruneFlags struct {
	environment       string
	keep              int
	excludeID         int64
	excludeMostRecent bool
	dryRun            bool
	concurrency       int
	format            string
	yes               bool
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete deployments beyond the retention window",
	Long: `Prune deletes the deployments of an environment that fall outside the
retention window.

A run lists every deployment of the configured environment, keeps the
most recent ones according to the keep count, sets aside at most one
excluded deployment, and deletes the rest. Individual deletion failures
are reported in the run summary and never abort the batch.

The command exits non-zero only when the configuration is invalid or the
environment cannot be listed. Partial deletion failures leave the exit
code at zero; consult the report or the audit trail for per-deployment
outcomes.

Examples:
  # Keep the 10 most recent deployments of the configured environment
  saturn prune

  # Keep the 5 most recent deployments of production
  saturn prune --environment production --keep 5

  # Pin the most recent deployment outside the keep window
  saturn prune --exclude-most-recent

  # Report what would be deleted without deleting anything
  saturn prune --dry-run

  # Machine-readable report, no confirmation prompt
  saturn prune --format json --yes`,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().StringVarP(&pruneFlags.environment, "environment", "e", "", "environment to prune (overrides config)")
	pruneCmd.Flags().IntVar(&pruneFlags.keep, "keep", -1, "number of most recent deployments to keep, 0 is legal (-1 uses config)")
	pruneCmd.Flags().Int64Var(&pruneFlags.excludeID, "exclude-id", -1, "deployment ID to set aside before the keep window (-1 uses config)")
	pruneCmd.Flags().BoolVar(&pruneFlags.excludeMostRecent, "exclude-most-recent", false, "set aside the most recent deployment before the keep window")
	pruneCmd.Flags().BoolVar(&pruneFlags.dryRun, "dry-run", false, "report what would be deleted without deleting anything")
	pruneCmd.Flags().IntVar(&pruneFlags.concurrency, "concurrency", 0, "number of deletions in flight at once (0 uses config)")
	pruneCmd.Flags().StringVarP(&pruneFlags.format, "format", "f", "text", "output format (text, json)")
	pruneCmd.Flags().BoolVarP(&pruneFlags.yes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	// Load without validating; flags may still fill required fields.
	cfg, err := config.ReadConfig(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	applyPruneFlags(cfg)
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}
	config.SetConfig(cfg)

	format, err := cli.ParseOutputFormat(pruneFlags.format)
	if err != nil {
		return cli.NewConfigError("format", err.Error())
	}

	logCfg := logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	}
	if verbose {
		logCfg.Level = "debug"
	}
	if _, err := logging.Init(logCfg); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Token:     cfg.API.Token,
		Timeout:   cfg.API.Timeout,
		PageSize:  cfg.API.PageSize,
		UserAgent: "saturn/" + Version,
	})
	if err != nil {
		return cli.NewConfigError("api", err.Error())
	}
	defer client.Close()

	ctx := cli.SetupSignalHandler()

	result, err := executePrune(ctx, cfg, client, format)
	if err != nil {
		// Only a listing failure reaches here; nothing has been deleted.
		return cli.NewCommandError("prune", err)
	}

	recordRun(cfg, result)

	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return cli.NewCommandError("prune", fmt.Errorf("failed to render report: %w", err))
	}
	return nil
}

// applyPruneFlags overlays command-line values onto the loaded config.
// Sentinel defaults (-1, 0, empty) mean the flag was not given and the
// config value stands. Boolean flags only switch behavior on.
func applyPruneFlags(cfg *config.Config) {
	if pruneFlags.environment != "" {
		cfg.Prune.Environment = pruneFlags.environment
	}
	if pruneFlags.keep >= 0 {
		keep := pruneFlags.keep
		cfg.Prune.KeepCount = &keep
	}
	if pruneFlags.excludeID >= 0 {
		id := pruneFlags.excludeID
		cfg.Prune.ExcludeID = &id
	}
	if pruneFlags.excludeMostRecent {
		cfg.Prune.ExcludeMostRecent = true
	}
	if pruneFlags.dryRun {
		cfg.Prune.DryRun = true
	}
	if pruneFlags.concurrency > 0 {
		cfg.Prune.Concurrency = pruneFlags.concurrency
	}
}

// executePrune runs one retention pass against the repository. The
// confirmation prompt is attached only for interactive text runs that
// would actually delete something.
func executePrune(ctx context.Context, cfg *config.Config, repo deployments.Repository, format cli.OutputFormat) (*retention.Result, error) {
	prunerCfg := &retention.PrunerConfig{
		Environment: cfg.Prune.Environment,
		Policy: retention.Policy{
			KeepCount:         *cfg.Prune.KeepCount,
			ExcludeID:         cfg.Prune.ExcludeID,
			ExcludeMostRecent: cfg.Prune.ExcludeMostRecent,
		},
		DryRun:      cfg.Prune.DryRun,
		Concurrency: cfg.Prune.Concurrency,
	}
	if format == cli.FormatText {
		prunerCfg.Progress = cli.NewProgressReporter(nil, "Deleting")
	}
	if !pruneFlags.yes && !cfg.Prune.DryRun && format == cli.FormatText {
		prunerCfg.Confirm = confirmSelection(os.Stdin, os.Stderr, cfg.Prune.Environment)
	}

	return retention.NewPruner(repo, prunerCfg).Run(ctx)
}

// confirmSelection builds a confirmation hook that lists the deletion
// candidates on w and reads a yes/no answer from r. Anything but an
// explicit yes declines.
func confirmSelection(r io.Reader, w io.Writer, environment string) func(*retention.Selection) bool {
	return func(selection *retention.Selection) bool {
		fmt.Fprintf(w, "About to delete %d deployments from %q:\n", len(selection.ToDelete), environment)
		for _, dep := range selection.ToDelete {
			fmt.Fprintf(w, "  - deployment %d (created %s)\n", dep.ID, dep.CreatedAt.Format(time.RFC3339))
		}
		fmt.Fprint(w, "Proceed? [y/N]: ")

		scanner := bufio.NewScanner(r)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}
}

// recordRun writes the run to the audit trail and pushes run metrics,
// when each is enabled. Both are best-effort: failures are logged as
// warnings and never change the command outcome. A fresh context is used
// so that a run canceled mid-deletion is still recorded.
func recordRun(cfg *config.Config, result *retention.Result) {
	ctx := context.Background()

	if cfg.Audit.Enabled {
		store, err := audit.NewSQLiteStorage(&audit.SQLiteConfig{
			Path:         cfg.Audit.SQLitePath,
			MaxOpenConns: cfg.Audit.MaxOpenConns,
			MaxIdleConns: cfg.Audit.MaxIdleConns,
			DisableWAL:   cfg.Audit.DisableWAL,
			BusyTimeout:  cfg.Audit.BusyTimeout,
		})
		if err != nil {
			slog.Warn("failed to open audit storage", "error", err)
		} else {
			if err := store.Record(ctx, audit.NewRunRecord(result)); err != nil {
				slog.Warn("failed to record prune run", "run_id", result.RunID, "error", err)
			}
			if err := store.Close(); err != nil {
				slog.Warn("failed to close audit storage", "error", err)
			}
		}
	}

	if cfg.Telemetry.Metrics.Enabled {
		collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
		collector.RecordRun(result.Environment, string(result.Status),
			result.Summary.Deleted, result.Summary.Errors, result.Summary.Kept,
			result.Duration)
		if err := metrics.NewPusher(&cfg.Telemetry.Metrics, collector).Push(ctx, result.Environment); err != nil {
			slog.Warn("failed to push metrics", "run_id", result.RunID, "error", err)
		}
	}
}
