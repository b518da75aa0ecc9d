package engine

import (
	"time"

	"github.com/user/schemasync/internal/db"
)

// Outcome classifies what happened to a single planned operation.
type Outcome string

const (
	OutcomeApplied          Outcome = "applied"
	OutcomeAlreadySatisfied Outcome = "already-satisfied"
	OutcomeFailed           Outcome = "failed"
)

// Result pairs an operation with its outcome. Reason is set for failed
// operations and for synthesized satisfaction entries.
type Result struct {
	Operation Operation
	Outcome   Outcome
	Reason    string
}

// Report is the full record of one reconciliation run. Per-operation
// failures live here as data; they are never raised as errors, so
// callers must inspect the report to learn of partial problems.
type Report struct {
	Profile        string
	ProfileVersion string
	DatabasePath   string
	StartedAt      time.Time
	FinishedAt     time.Time
	Backup         *db.BackupRecord
	Results        []Result
}

// Summary aggregates outcome counts.
type Summary struct {
	Applied          int
	AlreadySatisfied int
	Failed           int
}

// Summary returns the outcome counts for the run.
func (r *Report) Summary() Summary {
	var s Summary
	for _, result := range r.Results {
		switch result.Outcome {
		case OutcomeApplied:
			s.Applied++
		case OutcomeAlreadySatisfied:
			s.AlreadySatisfied++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}

// Failures returns the failed results in run order.
func (r *Report) Failures() []Result {
	var failures []Result
	for _, result := range r.Results {
		if result.Outcome == OutcomeFailed {
			failures = append(failures, result)
		}
	}
	return failures
}

// Converged reports whether the run found nothing to do and nothing
// failed: the live schema already satisfied the profile.
func (r *Report) Converged() bool {
	s := r.Summary()
	return s.Applied == 0 && s.Failed == 0
}
