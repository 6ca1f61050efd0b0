package audit

import (
	"testing"
	"time"

	"mercator-hq/saturn/pkg/retention"
)

func TestNewRunRecord(t *testing.T) {
	startedAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	excludeID := int64(7)

	result := &retention.Result{
		RunID:       "d3b07384-d9a0-4c2b-8f3a-000000000001",
		Environment: "production",
		Status:      retention.StatusCompleted,
		Policy: retention.Policy{
			KeepCount: 5,
			ExcludeID: &excludeID,
		},
		Outcomes: []retention.Outcome{
			{ID: 10, Deleted: true},
			{ID: 11, Error: "boom"},
		},
		Summary:   retention.Summary{Deleted: 1, Errors: 1, Kept: 5},
		StartedAt: startedAt,
		Duration:  4 * time.Second,
	}

	record := NewRunRecord(result)

	if record.ID != result.RunID {
		t.Errorf("Expected ID %s, got %s", result.RunID, record.ID)
	}
	if record.Environment != "production" {
		t.Errorf("Expected environment production, got %s", record.Environment)
	}
	if record.Status != "completed" {
		t.Errorf("Expected status completed, got %s", record.Status)
	}
	if record.KeepCount != 5 {
		t.Errorf("Expected keep count 5, got %d", record.KeepCount)
	}
	if record.ExcludeID == nil || *record.ExcludeID != 7 {
		t.Errorf("Expected exclude ID 7, got %v", record.ExcludeID)
	}
	if !record.StartedAt.Equal(startedAt) {
		t.Errorf("Expected StartedAt %v, got %v", startedAt, record.StartedAt)
	}
	if want := startedAt.Add(4 * time.Second); !record.CompletedAt.Equal(want) {
		t.Errorf("Expected CompletedAt %v, got %v", want, record.CompletedAt)
	}
	if record.DeletedCount != 1 || record.ErrorCount != 1 || record.KeptCount != 5 {
		t.Errorf("Unexpected counts: deleted=%d errors=%d kept=%d",
			record.DeletedCount, record.ErrorCount, record.KeptCount)
	}
	if len(record.Outcomes) != 2 {
		t.Errorf("Expected 2 outcomes, got %d", len(record.Outcomes))
	}
}

func TestNewRunRecord_DryRun(t *testing.T) {
	result := &retention.Result{
		RunID:       "d3b07384-d9a0-4c2b-8f3a-000000000002",
		Environment: "staging",
		Status:      retention.StatusDryRun,
		DryRun:      true,
		Policy:      retention.Policy{KeepCount: 10, ExcludeMostRecent: true},
		Summary:     retention.Summary{Kept: 10},
		StartedAt:   time.Now(),
	}

	record := NewRunRecord(result)

	if !record.DryRun {
		t.Error("Expected dry run flag carried over")
	}
	if !record.ExcludeMostRecent {
		t.Error("Expected exclude most recent flag carried over")
	}
	if record.Status != "dry_run" {
		t.Errorf("Expected status dry_run, got %s", record.Status)
	}
	if record.ExcludeID != nil {
		t.Errorf("Expected nil exclude ID, got %v", *record.ExcludeID)
	}
}
