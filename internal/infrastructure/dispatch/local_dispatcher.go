package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"prepmate/internal/bootstrap/logging"
	"prepmate/internal/errs"
	"prepmate/internal/ports"
)

// LocalDispatcher runs feedback jobs on in-process goroutines. It backs
// single-binary deployments where no broker is configured, with the same
// accept-and-return contract as the NATS path.
type LocalDispatcher struct {
	runner JobRunner

	wg sync.WaitGroup
}

var _ ports.Dispatcher = (*LocalDispatcher)(nil)

func NewLocalDispatcher(runner JobRunner) (*LocalDispatcher, error) {
	if runner == nil {
		return nil, errors.New("job runner is required")
	}
	return &LocalDispatcher{runner: runner}, nil
}

func (d *LocalDispatcher) Dispatch(ctx context.Context, job ports.FeedbackJob) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if strings.TrimSpace(job.InterviewID) == "" {
		return errors.New("interview id is required")
	}

	// The job must outlive the accepting request, so it runs on a fresh
	// context that only shares the request's logger.
	jobCtx := logging.WithLogger(context.Background(), logging.Logger(ctx))
	jobCtx = logging.WithAttrs(jobCtx,
		slog.String("job_id", job.JobID),
		slog.String("interview_id", job.InterviewID),
	)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.runner.Run(jobCtx, job); err != nil {
			logging.Error(jobCtx, "feedback job failed", slog.Any("err", errs.Loggable(err)))
			return
		}
		logging.Info(jobCtx, "feedback job completed")
	}()
	return nil
}

// Wait blocks until all accepted jobs finish. Used on shutdown and in tests.
func (d *LocalDispatcher) Wait() {
	d.wg.Wait()
}
