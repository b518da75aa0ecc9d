package engine

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
)

// Executor applies planned operations against a live handle. Execution
// is best-effort per operation: a failed statement is recorded and the
// batch continues, so one broken column cannot block unrelated tables.
type Executor struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewExecutor creates a new executor
func NewExecutor(database *sql.DB, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{db: database, logger: logger}
}

// Execute runs each operation in planner order and records its outcome.
func (e *Executor) Execute(ctx context.Context, ops []Operation) []Result {
	results := make([]Result, 0, len(ops))

	for _, op := range ops {
		results = append(results, e.executeOne(ctx, op))
	}

	return results
}

func (e *Executor) executeOne(ctx context.Context, op Operation) Result {
	_, err := e.db.ExecContext(ctx, op.SQL())
	if err == nil {
		e.logger.Debug("operation applied", "operation", op.String())
		return Result{Operation: op, Outcome: OutcomeApplied}
	}

	// A concurrently created table or column (race, stale snapshot) means
	// the desired state already holds; that is satisfaction, not failure.
	if isAlreadySatisfied(err) {
		e.logger.Debug("operation already satisfied", "operation", op.String())
		return Result{Operation: op, Outcome: OutcomeAlreadySatisfied}
	}

	e.logger.Warn("operation failed", "operation", op.String(), "error", err)
	return Result{Operation: op, Outcome: OutcomeFailed, Reason: err.Error()}
}

func isAlreadySatisfied(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column name") ||
		strings.Contains(msg, "already exists")
}
