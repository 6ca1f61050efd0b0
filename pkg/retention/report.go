package retention

import (
	"fmt"
	"io"
	"time"
)

// Describe returns a one-line human description of the policy, suitable
// for reports and confirmation prompts.
func (p Policy) Describe() string {
	desc := fmt.Sprintf("keep the %d most recent", p.KeepCount)
	switch {
	case p.ExcludeID != nil:
		desc += fmt.Sprintf(", set aside deployment %d", *p.ExcludeID)
	case p.ExcludeMostRecent:
		desc += ", set aside the most recent"
	}
	return desc
}

// RenderText writes a human-readable report of the run to w. JSON output
// goes through the regular struct tags instead.
func (r *Result) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "Retention run %s\n", r.RunID)
	fmt.Fprintf(w, "Environment: %s\n", r.Environment)
	fmt.Fprintf(w, "Policy: %s\n", r.Policy.Describe())
	fmt.Fprintf(w, "Status: %s\n", r.Status)
	fmt.Fprintf(w, "Started: %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintln(w)

	if r.Status == StatusNoDeployments {
		fmt.Fprintln(w, "No deployments found.")
		return nil
	}

	if r.Selection.Excluded != nil {
		fmt.Fprintf(w, "Excluded: deployment %d (created %s)\n",
			r.Selection.Excluded.ID,
			r.Selection.Excluded.CreatedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Kept: %d\n", r.Summary.Kept)

	switch r.Status {
	case StatusNothingToDelete:
		fmt.Fprintln(w, "Nothing to delete: every deployment fits the retention window.")

	case StatusDryRun:
		fmt.Fprintf(w, "Would delete: %d\n", len(r.Selection.ToDelete))
		for _, dep := range r.Selection.ToDelete {
			fmt.Fprintf(w, "  - deployment %d (created %s)\n",
				dep.ID, dep.CreatedAt.Format(time.RFC3339))
		}

	case StatusAborted:
		fmt.Fprintf(w, "Aborted: %d deployments were left in place.\n",
			len(r.Selection.ToDelete))

	default:
		fmt.Fprintf(w, "Deleted: %d\n", r.Summary.Deleted)
		if r.Summary.Errors > 0 {
			fmt.Fprintf(w, "Failed: %d\n", r.Summary.Errors)
			for _, outcome := range r.Outcomes {
				if outcome.Deleted {
					continue
				}
				fmt.Fprintf(w, "  ✗ deployment %d: %s\n", outcome.ID, outcome.Error)
			}
		}
	}

	return nil
}
