package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/saturn/pkg/audit"
	"mercator-hq/saturn/pkg/audit/export"
	"mercator-hq/saturn/pkg/cli"
	"mercator-hq/saturn/pkg/config"
)

var historyFlags struct {
	environment string
	status      string
	since       string
	limit       int
	format      string
	output      string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded prune runs",
	Long: `History lists prune runs recorded in the local audit trail, newest
first.

The audit trail is written by prune runs when audit is enabled in the
configuration; history only reads it.

The text and json formats render a display envelope with the total run
count. The csv format, and json written with --output, carry the bare
records for spreadsheets and downstream tooling.

Examples:
  # The 20 most recent runs
  saturn history

  # Runs against production that actually deleted something
  saturn history --environment production --status completed

  # Runs since a point in time, as JSON
  saturn history --since 2025-06-01T00:00:00Z --format json

  # Export the production trail to CSV
  saturn history --environment production --limit 1000 --format csv --output runs.csv`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyFlags.environment, "environment", "e", "", "filter by environment")
	historyCmd.Flags().StringVar(&historyFlags.status, "status", "", "filter by run status (completed, dry_run, nothing_to_delete, no_deployments, aborted)")
	historyCmd.Flags().StringVar(&historyFlags.since, "since", "", "only runs started at or after this RFC3339 timestamp")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum number of runs to show")
	historyCmd.Flags().StringVarP(&historyFlags.format, "format", "f", "text", "output format (text, json, csv)")
	historyCmd.Flags().StringVarP(&historyFlags.output, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	switch historyFlags.format {
	case "", "text", "json", "csv":
	default:
		return cli.NewConfigError("format",
			fmt.Sprintf("unknown output format %q (supported: text, json, csv)", historyFlags.format))
	}

	query, err := buildHistoryQuery()
	if err != nil {
		return cli.NewConfigError("since", err.Error())
	}

	store, err := audit.NewSQLiteStorage(&audit.SQLiteConfig{
		Path:         cfg.Audit.SQLitePath,
		MaxOpenConns: cfg.Audit.MaxOpenConns,
		MaxIdleConns: cfg.Audit.MaxIdleConns,
		DisableWAL:   cfg.Audit.DisableWAL,
		BusyTimeout:  cfg.Audit.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("failed to open audit storage: %w", err))
	}
	defer store.Close()

	ctx := cli.SetupSignalHandler()

	records, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	total, err := store.Count(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	output := io.Writer(os.Stdout)
	toFile := false
	if historyFlags.output != "" {
		f, err := os.Create(historyFlags.output)
		if err != nil {
			return cli.NewCommandError("history", fmt.Errorf("failed to create output file: %w", err))
		}
		defer f.Close()
		output = f
		toFile = true
	}

	switch historyFlags.format {
	case "json":
		if toFile {
			// File exports hold the raw records; the envelope with
			// total_runs is stdout display only.
			return export.NewJSONExporter(true).Export(ctx, records, output)
		}
		return outputHistoryJSON(output, records, total)
	case "csv":
		return export.NewCSVExporter(true).Export(ctx, records, output)
	default:
		return outputHistoryText(output, records, total)
	}
}

// buildHistoryQuery assembles the audit query from the command flags.
func buildHistoryQuery() (*audit.Query, error) {
	query := &audit.Query{
		Environment: historyFlags.environment,
		Status:      historyFlags.status,
		Limit:       historyFlags.limit,
	}
	if historyFlags.since != "" {
		ts, err := time.Parse(time.RFC3339, historyFlags.since)
		if err != nil {
			return nil, fmt.Errorf("invalid --since value %q: %v", historyFlags.since, err)
		}
		query.Since = &ts
	}
	return query, nil
}

func outputHistoryText(output io.Writer, records []*audit.RunRecord, total int64) error {
	fmt.Fprintf(output, "Total runs: %d\n", total)
	fmt.Fprintln(output)

	if len(records) == 0 {
		fmt.Fprintln(output, "No runs recorded.")
		return nil
	}

	for i, record := range records {
		if i > 0 {
			fmt.Fprintln(output)
		}

		fmt.Fprintf(output, "Run ID: %s\n", record.ID)
		fmt.Fprintf(output, "Environment: %s\n", record.Environment)
		fmt.Fprintf(output, "Started: %s\n", record.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(output, "Status: %s\n", record.Status)
		if record.DryRun {
			fmt.Fprintln(output, "Dry Run: yes")
		}
		fmt.Fprintf(output, "Keep Count: %d\n", record.KeepCount)
		if record.ExcludeID != nil {
			fmt.Fprintf(output, "Excluded ID: %d\n", *record.ExcludeID)
		}
		if record.ExcludeMostRecent {
			fmt.Fprintln(output, "Exclude Most Recent: yes")
		}
		fmt.Fprintf(output, "Deployments: kept %d, deleted %d, failed %d\n",
			record.KeptCount, record.DeletedCount, record.ErrorCount)
	}

	return nil
}

func outputHistoryJSON(output io.Writer, records []*audit.RunRecord, total int64) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	result := map[string]interface{}{
		"total_runs": total,
		"runs":       records,
	}

	return encoder.Encode(result)
}
