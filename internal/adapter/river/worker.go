package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// ChangeWorker records change jobs in the structured log, giving an audit
// trail of every write that reached the store.
type ChangeWorker struct {
	river.WorkerDefaults[ChangeJobArgs]
	Logger *slog.Logger
}

// Work processes a single change job.
func (w *ChangeWorker) Work(ctx context.Context, job *river.Job[ChangeJobArgs]) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "record changed",
		"kind", job.Args.Collection,
		"action", job.Args.Action,
		"record_id", job.Args.ID,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
