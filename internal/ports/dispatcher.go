package ports

import "context"

// JobUtterance mirrors one transcript line inside a queued feedback job.
type JobUtterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// FeedbackJob is a fire-and-forget request to run the feedback pipeline.
type FeedbackJob struct {
	JobID       string         `json:"job_id"`
	InterviewID string         `json:"interview_id"`
	Transcript  []JobUtterance `json:"transcript"`
}

// Dispatcher accepts a feedback job and returns as soon as the job is
// handed off. Completion is best-effort: there is no durable result store
// and a caller cannot learn of async failures through this interface.
type Dispatcher interface {
	Dispatch(ctx context.Context, job FeedbackJob) error
}
