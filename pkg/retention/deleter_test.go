package retention

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"mercator-hq/saturn/pkg/deployments"
)

// seedRepository creates a memory repository holding n deployments in env
// and returns the repository plus the full deployment list.
func seedRepository(env string, n int) (*deployments.MemoryRepository, []deployments.Deployment) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deps := makeDeployments(base, n)

	repo := deployments.NewMemoryRepository()
	repo.Seed(env, deps...)

	return repo, deps
}

// TestDeleter_DeletesAll tests that every deployment in the batch is
// attempted and removed, in batch order.
func TestDeleter_DeletesAll(t *testing.T) {
	repo, deps := seedRepository("production", 5)
	deleter := NewDeleter(repo, nil)

	outcomes := deleter.Execute(context.Background(), deps)

	if len(outcomes) != 5 {
		t.Fatalf("expected 5 outcomes, got %d", len(outcomes))
	}
	for _, outcome := range outcomes {
		if !outcome.Deleted {
			t.Errorf("deployment %d not deleted: %s", outcome.ID, outcome.Error)
		}
		if outcome.Error != "" {
			t.Errorf("unexpected error for deployment %d: %s", outcome.ID, outcome.Error)
		}
	}

	if !slices.Equal(repo.DeleteCalls(), ids(deps)) {
		t.Errorf("attempt order = %v, want %v", repo.DeleteCalls(), ids(deps))
	}
	if repo.Size("production") != 0 {
		t.Errorf("expected empty repository, %d deployments remain", repo.Size("production"))
	}
}

// TestDeleter_FaultIsolation tests that one failing deletion neither
// stops the batch nor affects other outcomes.
func TestDeleter_FaultIsolation(t *testing.T) {
	repo, deps := seedRepository("production", 5)
	repo.FailDeletion(3, errors.New("status 500"))

	deleter := NewDeleter(repo, nil)
	outcomes := deleter.Execute(context.Background(), deps)

	if len(outcomes) != 5 {
		t.Fatalf("expected 5 outcomes, got %d", len(outcomes))
	}
	if calls := repo.DeleteCalls(); len(calls) != 5 {
		t.Errorf("expected all 5 deletions attempted, got %d", len(calls))
	}

	for _, outcome := range outcomes {
		if outcome.ID == 3 {
			if outcome.Deleted {
				t.Error("deployment 3 reported deleted despite scripted failure")
			}
			if outcome.Error == "" {
				t.Error("failed outcome missing error message")
			}
			continue
		}
		if !outcome.Deleted {
			t.Errorf("deployment %d should have been deleted: %s", outcome.ID, outcome.Error)
		}
	}

	summary := Summarize(outcomes, 10)
	if summary.Deleted != 4 || summary.Errors != 1 || summary.Kept != 10 {
		t.Errorf("summary = %+v, want deleted=4 errors=1 kept=10", summary)
	}
}

// TestDeleter_EmptyBatch tests that an empty batch produces no outcomes
// and no repository calls.
func TestDeleter_EmptyBatch(t *testing.T) {
	repo, _ := seedRepository("production", 3)
	deleter := NewDeleter(repo, nil)

	outcomes := deleter.Execute(context.Background(), nil)

	if len(outcomes) != 0 {
		t.Errorf("expected no outcomes, got %d", len(outcomes))
	}
	if len(repo.DeleteCalls()) != 0 {
		t.Errorf("expected no delete calls, got %v", repo.DeleteCalls())
	}
}

// TestDeleter_Parallel tests bounded-parallel execution: exactly one
// outcome per deployment regardless of interleaving, with failures
// isolated per item.
func TestDeleter_Parallel(t *testing.T) {
	repo, deps := seedRepository("production", 20)
	repo.FailDeletion(4, errors.New("status 500"))
	repo.FailDeletion(17, errors.New("timeout"))

	deleter := NewDeleter(repo, &DeleterConfig{Concurrency: 4})
	outcomes := deleter.Execute(context.Background(), deps)

	if len(outcomes) != 20 {
		t.Fatalf("expected 20 outcomes, got %d", len(outcomes))
	}

	seen := make(map[int64]int)
	for _, outcome := range outcomes {
		seen[outcome.ID]++
	}
	for _, dep := range deps {
		if seen[dep.ID] != 1 {
			t.Errorf("deployment %d has %d outcomes, want exactly 1", dep.ID, seen[dep.ID])
		}
	}

	summary := Summarize(outcomes, 0)
	if summary.Deleted != 18 || summary.Errors != 2 {
		t.Errorf("summary = %+v, want deleted=18 errors=2", summary)
	}
}

// TestDeleter_ContextCancelled tests that a cancelled context still
// yields one outcome per deployment, with unattempted items recorded as
// failures.
func TestDeleter_ContextCancelled(t *testing.T) {
	repo, deps := seedRepository("production", 4)
	deleter := NewDeleter(repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := deleter.Execute(ctx, deps)

	if len(outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(outcomes))
	}
	for _, outcome := range outcomes {
		if outcome.Deleted {
			t.Errorf("deployment %d deleted after cancellation", outcome.ID)
		}
		if outcome.Error == "" {
			t.Errorf("deployment %d missing cancellation error", outcome.ID)
		}
	}
	if len(repo.DeleteCalls()) != 0 {
		t.Errorf("expected no delete calls after cancellation, got %v", repo.DeleteCalls())
	}
}

// recordingProgress captures progress calls for assertions.
type recordingProgress struct {
	mu       sync.Mutex
	total    int64
	updates  []int64
	finished bool
}

func (p *recordingProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
}

func (p *recordingProgress) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, current)
}

func (p *recordingProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = true
}

func (p *recordingProgress) Error(err error) {}

// TestDeleter_ReportsProgress tests that the deleter drives its progress
// reporter across the batch.
func TestDeleter_ReportsProgress(t *testing.T) {
	repo, deps := seedRepository("production", 3)
	progress := &recordingProgress{}

	deleter := NewDeleter(repo, &DeleterConfig{Progress: progress})
	deleter.Execute(context.Background(), deps)

	if progress.total != 3 {
		t.Errorf("progress total = %d, want 3", progress.total)
	}
	if len(progress.updates) != 3 {
		t.Errorf("expected 3 progress updates, got %d", len(progress.updates))
	}
	if !progress.finished {
		t.Error("progress reporter never finished")
	}
}

// TestSummarize tests outcome aggregation.
func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []Outcome
		kept     int
		want     Summary
	}{
		{
			name: "all deleted",
			outcomes: []Outcome{
				{ID: 1, Deleted: true},
				{ID: 2, Deleted: true},
			},
			kept: 10,
			want: Summary{Deleted: 2, Errors: 0, Kept: 10},
		},
		{
			name: "mixed results",
			outcomes: []Outcome{
				{ID: 1, Deleted: true},
				{ID: 2, Error: "status 500"},
				{ID: 3, Deleted: true},
			},
			kept: 5,
			want: Summary{Deleted: 2, Errors: 1, Kept: 5},
		},
		{
			name:     "no outcomes",
			outcomes: nil,
			kept:     3,
			want:     Summary{Kept: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.outcomes, tt.kept)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
