package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"mercator-hq/saturn/pkg/audit"
)

// CSVExporter exports run records to CSV format.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes run records to the provided writer in CSV format. The
// column layout follows the audit SQLite schema; per-deployment outcomes
// are flattened into a single JSON column.
func (e *CSVExporter) Export(ctx context.Context, records []*audit.RunRecord, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(headerRow()); err != nil {
			return audit.NewExportError("csv", len(records), err)
		}
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writer.Write(recordToRow(record)); err != nil {
			return audit.NewExportError("csv", len(records), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return audit.NewExportError("csv", len(records), err)
	}

	return nil
}

// headerRow returns the CSV header row.
func headerRow() []string {
	return []string{
		"id", "environment",
		"started_at", "completed_at",
		"keep_count", "exclude_id", "exclude_most_recent", "dry_run",
		"status",
		"kept_count", "deleted_count", "error_count",
		"outcomes",
	}
}

// recordToRow converts a run record to a CSV row.
func recordToRow(record *audit.RunRecord) []string {
	excludeID := ""
	if record.ExcludeID != nil {
		excludeID = fmt.Sprintf("%d", *record.ExcludeID)
	}

	outcomes := ""
	if len(record.Outcomes) > 0 {
		data, _ := json.Marshal(record.Outcomes)
		outcomes = string(data)
	}

	return []string{
		record.ID,
		record.Environment,
		record.StartedAt.Format(time.RFC3339),
		record.CompletedAt.Format(time.RFC3339),
		fmt.Sprintf("%d", record.KeepCount),
		excludeID,
		fmt.Sprintf("%t", record.ExcludeMostRecent),
		fmt.Sprintf("%t", record.DryRun),
		record.Status,
		fmt.Sprintf("%d", record.KeptCount),
		fmt.Sprintf("%d", record.DeletedCount),
		fmt.Sprintf("%d", record.ErrorCount),
		outcomes,
	}
}
