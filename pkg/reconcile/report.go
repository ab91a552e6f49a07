package reconcile

import (
	"fmt"

	"github.com/keywarden/keywarden/pkg/settings"
)

// Status is the per-entry outcome of an apply pass.
type Status string

const (
	// StatusApplied means a value was created or rewritten (or would be,
	// in a dry run).
	StatusApplied Status = "applied"
	// StatusUnchanged means the stored state already matched.
	StatusUnchanged Status = "unchanged"
	// StatusRemoved means an absent-entry's value was deleted (or would
	// be, in a dry run).
	StatusRemoved Status = "removed"
	// StatusFailed means the entry could not be enforced.
	StatusFailed Status = "failed"
)

// Result is the outcome of enforcing a single catalog entry.
type Result struct {
	Setting settings.Setting
	Status  Status
	Err     error
}

// Report collects per-entry results for one apply pass. Entries appear in
// catalog order.
type Report struct {
	Results []Result
	DryRun  bool
}

func (r *Report) add(s settings.Setting, status Status, err error) {
	r.Results = append(r.Results, Result{Setting: s, Status: status, Err: err})
}

// Count returns the number of entries with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any entry failed. A run with failures should exit
// non-zero; partial failures are never silently discarded.
func (r *Report) Failed() bool {
	return r.Count(StatusFailed) > 0
}

// Changed reports whether any entry was (or would be) modified.
func (r *Report) Changed() bool {
	return r.Count(StatusApplied)+r.Count(StatusRemoved) > 0
}

// Summary returns a one-line aggregate, e.g.
// "3 applied, 14 unchanged, 1 removed, 0 failed".
func (r *Report) Summary() string {
	return fmt.Sprintf("%d applied, %d unchanged, %d removed, %d failed",
		r.Count(StatusApplied), r.Count(StatusUnchanged),
		r.Count(StatusRemoved), r.Count(StatusFailed))
}
