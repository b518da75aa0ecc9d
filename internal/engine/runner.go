package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/schemasync/internal/db"
	"github.com/user/schemasync/internal/schema"
	"github.com/user/schemasync/internal/validate"
)

// Phase is the runner's position in the run state machine.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseBackingUp Phase = "backing-up"
	PhasePlanning  Phase = "planning"
	PhaseExecuting Phase = "executing"
	PhaseDone      Phase = "done"
	PhaseAborted   Phase = "aborted"
)

// Fatal error kinds. Per-operation failures are report data, never
// errors; only these abort a run.
var (
	// ErrBackupFailed aborts the run before any mutation. Silent
	// continuation here would risk irrecoverable data loss on a later
	// failed migration.
	ErrBackupFailed = errors.New("backup failed")
	// ErrInspectFailed aborts the run: planning cannot proceed without a
	// trustworthy snapshot.
	ErrInspectFailed = errors.New("schema inspection failed")
	// ErrDatabaseLocked aborts the run when another process holds the
	// run lock.
	ErrDatabaseLocked = errors.New("database locked")
)

// Options configures a reconciliation run.
type Options struct {
	DatabasePath string
	Profile      *schema.Profile
	Logger       *slog.Logger
}

// Runner orchestrates one reconciliation run:
//
//	Idle → Backing-Up → Planning → Executing → Done
//	Idle → Backing-Up → Aborted
//
// There is no Failed terminal state distinct from Done: individual
// operation failures still reach Done carrying a report that documents
// them. A Runner is single-use and synchronous; it assumes exclusive
// access to the database file and enforces it with a file lock.
type Runner struct {
	opts   Options
	logger *slog.Logger
	phase  Phase
}

// NewRunner validates the options and creates a runner in the Idle phase.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Profile == nil {
		return nil, fmt.Errorf("no profile selected")
	}
	if err := opts.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if err := validate.ValidateDatabasePath(opts.DatabasePath); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{opts: opts, logger: logger, phase: PhaseIdle}, nil
}

// Phase returns the runner's current phase.
func (r *Runner) Phase() Phase {
	return r.phase
}

// Plan computes the operations a run would apply, without taking a
// backup or mutating anything. The snapshot is taken fresh and
// discarded, same as in a full run.
func (r *Runner) Plan(ctx context.Context) ([]Operation, error) {
	manager := db.NewManager()
	if err := manager.Open(ctx, r.opts.DatabasePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspectFailed, err)
	}
	defer manager.Close()

	snapshot, err := db.NewInspector(manager.DB()).Snapshot(ctx, r.opts.Profile.TableNames())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInspectFailed, err)
	}

	return NewPlanner().Plan(r.opts.Profile, snapshot), nil
}

// Run executes the full reconciliation pass and returns its report.
// Only a lock, backup, or inspection failure returns an error; every
// other problem is recorded in the report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		Profile:        r.opts.Profile.Name,
		ProfileVersion: r.opts.Profile.Version,
		DatabasePath:   r.opts.DatabasePath,
		StartedAt:      time.Now(),
	}

	lock, err := db.AcquireLock(r.opts.DatabasePath)
	if err != nil {
		r.phase = PhaseAborted
		return nil, fmt.Errorf("%w: %v", ErrDatabaseLocked, err)
	}
	defer lock.Release()

	// Backup must complete (or be explicitly skipped because no prior
	// file exists) before any mutating statement runs.
	r.phase = PhaseBackingUp
	r.logger.Info("backing up database", "path", r.opts.DatabasePath)

	backup, err := db.NewBackupManager(r.opts.DatabasePath).Backup(ctx)
	if err != nil {
		r.phase = PhaseAborted
		return nil, fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}
	report.Backup = backup

	manager := db.NewManager()
	if err := manager.Open(ctx, r.opts.DatabasePath); err != nil {
		r.phase = PhaseAborted
		return nil, fmt.Errorf("%w: %v", ErrInspectFailed, err)
	}
	defer manager.Close()

	r.phase = PhasePlanning
	snapshot, err := db.NewInspector(manager.DB()).Snapshot(ctx, r.opts.Profile.TableNames())
	if err != nil {
		r.phase = PhaseAborted
		return nil, fmt.Errorf("%w: %v", ErrInspectFailed, err)
	}

	ops := NewPlanner().Plan(r.opts.Profile, snapshot)
	r.logger.Info("plan computed", "profile", r.opts.Profile.Name, "operations", len(ops))

	r.phase = PhaseExecuting
	executed := NewExecutor(manager.DB(), r.logger).Execute(ctx, ops)
	report.Results = r.assembleResults(executed)
	report.FinishedAt = time.Now()

	r.phase = PhaseDone
	summary := report.Summary()
	r.logger.Info("run complete",
		"applied", summary.Applied,
		"already_satisfied", summary.AlreadySatisfied,
		"failed", summary.Failed)

	return report, nil
}

// assembleResults orders results by profile declaration and synthesizes
// a table-level already-satisfied entry for each declared table that
// needed no operations, so a fully converged re-run reports per-table
// satisfaction instead of an empty report.
func (r *Runner) assembleResults(executed []Result) []Result {
	byTable := make(map[string][]Result)
	for _, result := range executed {
		byTable[result.Operation.TableName] = append(byTable[result.Operation.TableName], result)
	}

	var results []Result
	for _, table := range r.opts.Profile.Tables {
		if tableResults, ok := byTable[table.Name]; ok {
			results = append(results, tableResults...)
			continue
		}
		results = append(results, Result{
			Operation: CreateTable(table),
			Outcome:   OutcomeAlreadySatisfied,
			Reason:    "table and all declared columns present",
		})
	}

	return results
}
