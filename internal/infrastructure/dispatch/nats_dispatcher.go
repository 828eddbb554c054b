package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"prepmate/internal/bootstrap/logging"
	"prepmate/internal/errs"
	"prepmate/internal/ports"
)

const DefaultSubject = "prepmate.feedback.jobs"

// NATSDispatcher publishes feedback jobs to a NATS subject and returns as
// soon as the broker accepts the message. No durable result store backs
// this path: a published job that later fails is only visible in the
// worker's logs.
type NATSDispatcher struct {
	conn    *nats.Conn
	subject string
}

var _ ports.Dispatcher = (*NATSDispatcher)(nil)

func NewNATSDispatcher(conn *nats.Conn, subject string) (*NATSDispatcher, error) {
	if conn == nil {
		return nil, errors.New("nats connection is required")
	}
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}
	return &NATSDispatcher{conn: conn, subject: subject}, nil
}

func (d *NATSDispatcher) Dispatch(ctx context.Context, job ports.FeedbackJob) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if strings.TrimSpace(job.InterviewID) == "" {
		return errors.New("interview id is required")
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return errs.Wrap(err, "marshal feedback job")
	}
	if err := d.conn.Publish(d.subject, payload); err != nil {
		return errs.Wrap(err, "publish feedback job")
	}

	logging.Info(ctx, "feedback job dispatched",
		slog.String("job_id", job.JobID),
		slog.String("interview_id", job.InterviewID),
		slog.String("subject", d.subject),
	)
	return nil
}

// JobRunner executes one feedback job. Satisfied by the feedback service.
type JobRunner interface {
	Run(ctx context.Context, job ports.FeedbackJob) error
}

// Subscribe attaches a best-effort worker to the job subject. Failed jobs
// are logged and dropped; there is no retry or dead-letter handling.
func Subscribe(ctx context.Context, conn *nats.Conn, subject string, runner JobRunner) (*nats.Subscription, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if conn == nil {
		return nil, errors.New("nats connection is required")
	}
	if runner == nil {
		return nil, errors.New("job runner is required")
	}
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}

	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		var job ports.FeedbackJob
		if err := json.Unmarshal(msg.Data, &job); err != nil {
			logging.Error(ctx, "discard undecodable feedback job", slog.Any("err", errs.Loggable(err)))
			return
		}

		jobCtx := logging.WithAttrs(ctx,
			slog.String("job_id", job.JobID),
			slog.String("interview_id", job.InterviewID),
		)
		if err := runner.Run(jobCtx, job); err != nil {
			logging.Error(jobCtx, "feedback job failed", slog.Any("err", errs.Loggable(err)))
			return
		}
		logging.Info(jobCtx, "feedback job completed")
	})
	if err != nil {
		return nil, errs.Wrap(err, "subscribe feedback jobs")
	}
	return sub, nil
}
