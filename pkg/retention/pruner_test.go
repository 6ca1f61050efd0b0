package retention

import (
	"context"
	"errors"
	"testing"

	"mercator-hq/saturn/pkg/deployments"
)

// TestPruner_Run tests a full retention pass over an environment with
// more deployments than the keep count.
func TestPruner_Run(t *testing.T) {
	repo, _ := seedRepository("production", 15)

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if result.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", result.Status, StatusCompleted)
	}
	if result.Summary.Deleted != 5 || result.Summary.Errors != 0 || result.Summary.Kept != 10 {
		t.Errorf("summary = %+v, want deleted=5 errors=0 kept=10", result.Summary)
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}
	if repo.Size("production") != 10 {
		t.Errorf("expected 10 deployments to remain, got %d", repo.Size("production"))
	}
}

// TestPruner_NothingToDelete tests the short-circuit when every
// deployment already fits the retention window.
func TestPruner_NothingToDelete(t *testing.T) {
	repo, _ := seedRepository("production", 5)

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if result.Status != StatusNothingToDelete {
		t.Errorf("status = %s, want %s", result.Status, StatusNothingToDelete)
	}
	if result.Summary.Deleted != 0 || result.Summary.Kept != 5 {
		t.Errorf("summary = %+v, want deleted=0 kept=5", result.Summary)
	}
	if len(repo.DeleteCalls()) != 0 {
		t.Errorf("expected no delete calls, got %v", repo.DeleteCalls())
	}
}

// TestPruner_EmptyEnvironment tests the short-circuit for an environment
// with no deployments at all.
func TestPruner_EmptyEnvironment(t *testing.T) {
	repo := deployments.NewMemoryRepository()

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "staging",
		Policy:      Policy{KeepCount: 10},
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if result.Status != StatusNoDeployments {
		t.Errorf("status = %s, want %s", result.Status, StatusNoDeployments)
	}
	if result.Summary != (Summary{}) {
		t.Errorf("summary = %+v, want all zero", result.Summary)
	}
	if len(repo.DeleteCalls()) != 0 {
		t.Errorf("expected no delete calls, got %v", repo.DeleteCalls())
	}
}

// TestPruner_ListingFailure tests that a listing failure aborts the run
// before anything is deleted.
func TestPruner_ListingFailure(t *testing.T) {
	repo, _ := seedRepository("production", 15)
	repo.FailListing(errors.New("status 503"))

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
	})

	result, err := pruner.Run(context.Background())
	if err == nil {
		t.Fatal("expected Run() to fail")
	}
	if result != nil {
		t.Errorf("expected nil result on listing failure, got %+v", result)
	}

	var listingErr *deployments.ListingError
	if !errors.As(err, &listingErr) {
		t.Errorf("expected ListingError, got %T: %v", err, err)
	}
	if len(repo.DeleteCalls()) != 0 {
		t.Errorf("expected no delete calls after listing failure, got %v", repo.DeleteCalls())
	}
	if repo.Size("production") != 15 {
		t.Errorf("expected all 15 deployments untouched, got %d", repo.Size("production"))
	}
}

// TestPruner_DryRun tests that a dry run computes the partition without
// deleting anything.
func TestPruner_DryRun(t *testing.T) {
	repo, _ := seedRepository("production", 15)

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
		DryRun:      true,
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if result.Status != StatusDryRun {
		t.Errorf("status = %s, want %s", result.Status, StatusDryRun)
	}
	if len(result.Selection.ToDelete) != 5 {
		t.Errorf("expected 5 would-delete deployments, got %d", len(result.Selection.ToDelete))
	}
	if result.Summary.Deleted != 0 || result.Summary.Kept != 10 {
		t.Errorf("summary = %+v, want deleted=0 kept=10", result.Summary)
	}
	if len(repo.DeleteCalls()) != 0 {
		t.Errorf("expected no delete calls in dry run, got %v", repo.DeleteCalls())
	}
	if repo.Size("production") != 15 {
		t.Errorf("expected all 15 deployments to remain, got %d", repo.Size("production"))
	}
}

// TestPruner_PartialFailure tests that individual deletion failures do
// not fail the run.
func TestPruner_PartialFailure(t *testing.T) {
	repo, _ := seedRepository("production", 15)
	repo.FailDeletion(2, errors.New("status 500"))

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() must not fail on per-item errors: %v", err)
	}

	if result.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", result.Status, StatusCompleted)
	}
	if result.Summary.Deleted != 4 || result.Summary.Errors != 1 || result.Summary.Kept != 10 {
		t.Errorf("summary = %+v, want deleted=4 errors=1 kept=10", result.Summary)
	}
	if len(result.Outcomes) != 5 {
		t.Errorf("expected 5 outcomes, got %d", len(result.Outcomes))
	}
}

// TestPruner_ExcludeMostRecent tests a full run where the newest
// deployment is pinned outside the retention window.
func TestPruner_ExcludeMostRecent(t *testing.T) {
	repo, _ := seedRepository("production", 3)

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 1, ExcludeMostRecent: true},
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if result.Selection.Excluded == nil || result.Selection.Excluded.ID != 3 {
		t.Fatalf("expected deployment 3 excluded, got %+v", result.Selection.Excluded)
	}
	if result.Summary.Deleted != 1 || result.Summary.Kept != 1 {
		t.Errorf("summary = %+v, want deleted=1 kept=1", result.Summary)
	}
	if repo.Size("production") != 2 {
		t.Errorf("expected 2 deployments to remain, got %d", repo.Size("production"))
	}

	remaining, err := repo.List(context.Background(), "production")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	for _, dep := range remaining {
		if dep.ID == 1 {
			t.Error("oldest deployment should have been deleted")
		}
	}
}

// TestPruner_Idempotent tests that a second run over the same environment
// deletes nothing further.
func TestPruner_Idempotent(t *testing.T) {
	repo, _ := seedRepository("production", 15)

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
	})

	first, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() failed: %v", err)
	}
	if first.Summary.Deleted != 5 {
		t.Fatalf("first run deleted %d, want 5", first.Summary.Deleted)
	}

	second, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() failed: %v", err)
	}

	if second.Status != StatusNothingToDelete {
		t.Errorf("second run status = %s, want %s", second.Status, StatusNothingToDelete)
	}
	if second.Summary.Deleted != 0 {
		t.Errorf("second run deleted %d deployments, want 0", second.Summary.Deleted)
	}
	if first.RunID == second.RunID {
		t.Error("expected distinct run IDs")
	}
}

// TestPruner_ConfirmDeclined tests that a declined confirmation stops the
// run before any deletion.
func TestPruner_ConfirmDeclined(t *testing.T) {
	repo, _ := seedRepository("production", 15)

	var sawSelection *Selection
	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
		Confirm: func(selection *Selection) bool {
			sawSelection = selection
			return false
		},
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if result.Status != StatusAborted {
		t.Errorf("status = %s, want %s", result.Status, StatusAborted)
	}
	if sawSelection == nil || len(sawSelection.ToDelete) != 5 {
		t.Errorf("confirm saw selection %+v, want 5 candidates", sawSelection)
	}
	if len(repo.DeleteCalls()) != 0 {
		t.Errorf("expected no delete calls after decline, got %v", repo.DeleteCalls())
	}
	if repo.Size("production") != 15 {
		t.Errorf("expected all 15 deployments to remain, got %d", repo.Size("production"))
	}
}

// TestPruner_ConfirmAccepted tests that an accepted confirmation lets the
// deletion batch proceed.
func TestPruner_ConfirmAccepted(t *testing.T) {
	repo, _ := seedRepository("production", 15)

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
		Confirm:     func(*Selection) bool { return true },
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if result.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", result.Status, StatusCompleted)
	}
	if result.Summary.Deleted != 5 {
		t.Errorf("deleted %d deployments, want 5", result.Summary.Deleted)
	}
}

// TestPruner_ConfirmSkippedOnDryRun tests that dry runs never consult the
// confirmation hook.
func TestPruner_ConfirmSkippedOnDryRun(t *testing.T) {
	repo, _ := seedRepository("production", 15)

	pruner := NewPruner(repo, &PrunerConfig{
		Environment: "production",
		Policy:      Policy{KeepCount: 10},
		DryRun:      true,
		Confirm: func(*Selection) bool {
			t.Error("confirm must not run on a dry run")
			return false
		},
	})

	result, err := pruner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if result.Status != StatusDryRun {
		t.Errorf("status = %s, want %s", result.Status, StatusDryRun)
	}
}
