package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"prepmate/internal/bootstrap/logging"
	domainfeedback "prepmate/internal/domain/feedback"
	"prepmate/internal/errs"
	"prepmate/internal/ports"
)

const (
	completionMaxTokens   = 2500
	completionTemperature = 0.7
)

var (
	// ErrUpstreamModel marks a failed or rejected completion request.
	// The pipeline makes exactly one attempt; there is no retry.
	ErrUpstreamModel = errors.New("upstream model request failed")

	// ErrPersistence marks a failed insert. Writes already applied in the
	// same run are NOT rolled back; callers relying on status polling may
	// observe the partial state.
	ErrPersistence = errors.New("feedback persistence failed")

	errInterviewIDRequired = errors.New("interview id is required")
)

// Service runs the interview-feedback pipeline: normalize transcript,
// render prompt, call the completion model, parse the response, persist the
// result keyed to the interview.
type Service struct {
	repo      ports.InterviewRepository
	completer ports.Completer
	timeout   time.Duration
}

// NewService wires the feedback pipeline. timeout bounds the completion
// call; zero disables the pipeline-enforced deadline.
func NewService(repo ports.InterviewRepository, completer ports.Completer, timeout time.Duration) *Service {
	return &Service{
		repo:      repo,
		completer: completer,
		timeout:   timeout,
	}
}

type GenerateFeedbackInput struct {
	InterviewID string
	Transcript  []domainfeedback.Utterance
}

type GenerateFeedbackResult struct {
	DetailsID uint64
	Items     []Item
	Summary   Summary
}

// GenerateFeedback runs the whole pipeline for one transcript and stores the
// outcome. On success the parsed result is both returned and durable.
// Running it twice for the same interview appends a second details row;
// history is kept, never superseded.
func (s *Service) GenerateFeedback(ctx context.Context, input GenerateFeedbackInput) (GenerateFeedbackResult, error) {
	if ctx == nil {
		return GenerateFeedbackResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return GenerateFeedbackResult{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return GenerateFeedbackResult{}, errors.New("interview repository is required")
	}
	if s.completer == nil {
		return GenerateFeedbackResult{}, errors.New("completer is required")
	}

	interviewID := strings.TrimSpace(input.InterviewID)
	if interviewID == "" {
		return GenerateFeedbackResult{}, errInterviewIDRequired
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "usecase.feedback"),
		slog.String("interview_id", interviewID),
	)

	exchanges := domainfeedback.Normalize(input.Transcript)
	logging.Info(logCtx, "transcript normalized",
		slog.Int("utterances", len(input.Transcript)),
		slog.Int("exchanges", len(exchanges)),
	)

	raw, err := s.Generate(logCtx, exchanges)
	if err != nil {
		return GenerateFeedbackResult{}, err
	}

	result := ParseResponse(raw)
	logging.Info(logCtx, "model response parsed",
		slog.Int("items", len(result.Items)),
		slog.Bool("score_valid", result.Summary.ScoreValid),
	)
	if len(result.Items) != len(exchanges) {
		// Best-effort association is positional; a count mismatch is worth
		// noticing but is not an error.
		logging.Warn(logCtx, "feedback item count does not match exchanges",
			slog.Int("items", len(result.Items)),
			slog.Int("exchanges", len(exchanges)),
		)
	}

	details, err := s.persist(logCtx, interviewID, result)
	if err != nil {
		return GenerateFeedbackResult{}, err
	}

	return GenerateFeedbackResult{
		DetailsID: details.DetailsID,
		Items:     result.Items,
		Summary:   result.Summary,
	}, nil
}

// Generate renders the prompt for the given exchanges and returns the raw
// completion text. An empty completion is returned as an empty string, not
// an error; the parser downstream turns it into an empty result.
func (s *Service) Generate(ctx context.Context, exchanges []domainfeedback.Exchange) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if s.completer == nil {
		return "", errors.New("completer is required")
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.completer.Complete(callCtx, ports.CompletionRequest{
		System:      systemInstruction,
		Prompt:      BuildFeedbackPrompt(exchanges),
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		return "", errs.Wrap(fmt.Errorf("%w: %w", ErrUpstreamModel, err), "request completion")
	}
	return strings.TrimSpace(raw), nil
}

// persist writes the details row, each feedback row, then the summary row as
// a dependent chain of single inserts. The first failure aborts the chain
// and is reported with its stage; earlier inserts from the same run stay.
func (s *Service) persist(ctx context.Context, interviewID string, result Result) (ports.InterviewDetails, error) {
	details, err := s.repo.CreateInterviewDetails(ctx, interviewID, nowUTCString())
	if err != nil {
		return ports.InterviewDetails{}, errs.Wrap(fmt.Errorf("%w: %w", ErrPersistence, err), "insert interview details")
	}

	for i, item := range result.Items {
		if err := s.repo.CreateFeedback(ctx, ports.FeedbackCreate{
			DetailsID:   details.DetailsID,
			Label:       string(item.Label),
			Question:    item.Question,
			Answer:      item.Answer,
			Feedback:    item.Feedback,
			Category:    item.Category,
			Suggestions: item.Suggestions,
		}); err != nil {
			return ports.InterviewDetails{}, errs.Wrap(fmt.Errorf("%w: %w", ErrPersistence, err), fmt.Sprintf("insert feedback %d", i))
		}
	}

	if err := s.repo.CreateSummary(ctx, ports.SummaryCreate{
		DetailsID:                details.DetailsID,
		RelevantResponses:        result.Summary.RelevantResponses,
		ClarityAndStructure:      result.Summary.ClarityAndStructure,
		ProfessionalLanguage:     result.Summary.ProfessionalLanguage,
		InitialIdeas:             result.Summary.InitialIdeas,
		AdditionalNotableAspects: result.Summary.AdditionalNotableAspects,
		Score:                    result.Summary.Score,
	}); err != nil {
		return ports.InterviewDetails{}, errs.Wrap(fmt.Errorf("%w: %w", ErrPersistence, err), "insert summary")
	}

	logging.Info(ctx, "feedback persisted",
		slog.Uint64("details_id", details.DetailsID),
		slog.Int("items", len(result.Items)),
	)
	return details, nil
}

// GetInterview reads one interview for status checks. The caller-supplied id
// is trusted; ownership checks live outside the pipeline.
func (s *Service) GetInterview(ctx context.Context, interviewID string) (ports.Interview, error) {
	if ctx == nil {
		return ports.Interview{}, errors.New("context is required")
	}
	if s.repo == nil {
		return ports.Interview{}, errors.New("interview repository is required")
	}

	interviewID = strings.TrimSpace(interviewID)
	if interviewID == "" {
		return ports.Interview{}, errInterviewIDRequired
	}
	return s.repo.GetInterview(ctx, interviewID)
}

// ListRuns returns every stored feedback run for an interview, newest data
// included; regenerated feedback shows up as additional rows.
func (s *Service) ListRuns(ctx context.Context, interviewID string) ([]ports.InterviewDetails, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if s.repo == nil {
		return nil, errors.New("interview repository is required")
	}

	interviewID = strings.TrimSpace(interviewID)
	if interviewID == "" {
		return nil, errInterviewIDRequired
	}
	return s.repo.ListInterviewDetails(ctx, interviewID)
}

// Run executes one queued feedback job. It adapts the wire-shaped job onto
// the pipeline so dispatchers can stay ignorant of domain types.
func (s *Service) Run(ctx context.Context, job ports.FeedbackJob) error {
	transcript := make([]domainfeedback.Utterance, 0, len(job.Transcript))
	for _, u := range job.Transcript {
		transcript = append(transcript, domainfeedback.Utterance{
			Speaker: domainfeedback.ParseSpeaker(u.Speaker),
			Text:    u.Text,
		})
	}

	_, err := s.GenerateFeedback(ctx, GenerateFeedbackInput{
		InterviewID: job.InterviewID,
		Transcript:  transcript,
	})
	return err
}

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
