package retention

import (
	"slices"

	"mercator-hq/saturn/pkg/deployments"
)

// Policy describes which of an environment's deployments to keep.
type Policy struct {
	// KeepCount is the number of most recent deployments to retain after
	// exclusion. 0 keeps nothing.
	KeepCount int `json:"keep_count"`

	// ExcludeID pins the deployment with this ID outside the retention
	// window. Takes precedence over ExcludeMostRecent. An ID not present
	// in the listing excludes nothing.
	ExcludeID *int64 `json:"exclude_id,omitempty"`

	// ExcludeMostRecent pins the newest deployment outside the retention
	// window. Ignored when ExcludeID is set.
	ExcludeMostRecent bool `json:"exclude_most_recent,omitempty"`
}

// Selection is the partition produced by Select. Every input deployment
// lands in exactly one of Excluded, Kept, or ToDelete.
type Selection struct {
	// Excluded is the deployment pinned outside the retention window,
	// nil when the policy excluded nothing.
	Excluded *deployments.Deployment `json:"excluded,omitempty"`

	// Kept holds the most recent KeepCount deployments after exclusion,
	// newest first.
	Kept []deployments.Deployment `json:"kept"`

	// ToDelete holds the remainder, newest first. Every deployment here
	// is older than every deployment in Kept.
	ToDelete []deployments.Deployment `json:"to_delete"`
}

// Select partitions an environment's deployments according to policy.
//
// Deployments are ordered newest first by creation time; equal timestamps
// keep their input order. The exclusion target is removed from the ordered
// list before the keep window applies, so an exclusion never consumes a
// retention slot. Select is pure: it performs no I/O and never mutates its
// input.
func Select(deps []deployments.Deployment, policy Policy) Selection {
	ordered := slices.Clone(deps)
	slices.SortStableFunc(ordered, func(a, b deployments.Deployment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	var selection Selection

	remaining := ordered
	if idx := excludeIndex(ordered, policy); idx >= 0 {
		excluded := ordered[idx]
		selection.Excluded = &excluded
		remaining = slices.Delete(ordered, idx, idx+1)
	}

	keep := policy.KeepCount
	if keep < 0 {
		keep = 0
	}
	if keep > len(remaining) {
		keep = len(remaining)
	}

	selection.Kept = remaining[:keep]
	selection.ToDelete = remaining[keep:]

	return selection
}

// excludeIndex resolves the policy's exclusion target to an index into the
// ordered list, or -1 when nothing is excluded. When ExcludeID is set it
// is authoritative: an absent ID means no exclusion, not a fallback to
// ExcludeMostRecent.
func excludeIndex(ordered []deployments.Deployment, policy Policy) int {
	if policy.ExcludeID != nil {
		for i, d := range ordered {
			if d.ID == *policy.ExcludeID {
				return i
			}
		}
		return -1
	}

	if policy.ExcludeMostRecent && len(ordered) > 0 {
		return 0
	}

	return -1
}
