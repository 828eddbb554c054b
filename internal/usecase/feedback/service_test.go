package feedback

import (
	"context"
	"errors"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	domainfeedback "prepmate/internal/domain/feedback"
	"prepmate/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "prepmate/internal/infrastructure/persistence/sqlite/repository"
	"prepmate/internal/ports"
)

const modelResponse = "Label: Good\nQuestion: Are you ready?\nYour Answer: Yes.\nFeedback: Concise.\nCategory: Conciseness\nSuggestions for improvement: None\n\n" +
	"Relevant Responses: Well aligned\nClarity and Structure: Clear\nProfessional Language: Professional\nInitial Ideas: Some\nAdditional Notable Aspects: None\nScore: 8/10"

type stubCompleter struct {
	response string
	err      error
	prompts  []string
}

func (s *stubCompleter) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	s.prompts = append(s.prompts, req.Prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func setupRepo(t *testing.T) ports.InterviewRepository {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Interview{},
		&model.InterviewDetails{},
		&model.Feedback{},
		&model.Summary{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return sqliterepo.NewInterviewRepository(db)
}

func sampleTranscript() []domainfeedback.Utterance {
	return []domainfeedback.Utterance{
		{Speaker: domainfeedback.SpeakerInterviewer, Text: "Are you ready?"},
		{Speaker: domainfeedback.SpeakerInterviewee, Text: "Yes."},
	}
}

func TestGenerateFeedbackFullPipeline(t *testing.T) {
	repo := setupRepo(t)
	completer := &stubCompleter{response: modelResponse}
	svc := NewService(repo, completer, 0)
	ctx := context.Background()

	result, err := svc.GenerateFeedback(ctx, GenerateFeedbackInput{
		InterviewID: "iv-1",
		Transcript:  sampleTranscript(),
	})
	if err != nil {
		t.Fatalf("GenerateFeedback() error = %v", err)
	}

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Label != domainfeedback.LabelGood {
		t.Errorf("label = %q", result.Items[0].Label)
	}
	if result.Summary.Score != "8/10" || !result.Summary.ScoreValid {
		t.Errorf("summary score = %+v", result.Summary)
	}

	rows, err := repo.ListFeedback(ctx, result.DetailsID)
	if err != nil {
		t.Fatalf("ListFeedback() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Question != "Are you ready?" {
		t.Fatalf("persisted feedback rows = %+v", rows)
	}

	summary, found, err := repo.GetSummary(ctx, result.DetailsID)
	if err != nil || !found {
		t.Fatalf("GetSummary() = (%v, %v)", found, err)
	}
	if summary.RelevantResponses != "Well aligned" {
		t.Errorf("summary row = %+v", summary)
	}

	if len(completer.prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(completer.prompts))
	}
}

func TestGenerateFeedbackAppendsHistory(t *testing.T) {
	repo := setupRepo(t)
	svc := NewService(repo, &stubCompleter{response: modelResponse}, 0)
	ctx := context.Background()

	input := GenerateFeedbackInput{InterviewID: "iv-repeat", Transcript: sampleTranscript()}
	if _, err := svc.GenerateFeedback(ctx, input); err != nil {
		t.Fatalf("first run error = %v", err)
	}
	if _, err := svc.GenerateFeedback(ctx, input); err != nil {
		t.Fatalf("second run error = %v", err)
	}

	runs, err := svc.ListRuns(ctx, "iv-repeat")
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	// Regeneration appends; nothing is deduplicated or superseded.
	if len(runs) != 2 {
		t.Fatalf("expected 2 details rows, got %d", len(runs))
	}
	if runs[0].DetailsID == runs[1].DetailsID {
		t.Fatal("details rows must be independent")
	}
}

func TestGenerateFeedbackUpstreamFailure(t *testing.T) {
	repo := setupRepo(t)
	svc := NewService(repo, &stubCompleter{err: errors.New("status 500")}, 0)
	ctx := context.Background()

	_, err := svc.GenerateFeedback(ctx, GenerateFeedbackInput{
		InterviewID: "iv-err",
		Transcript:  sampleTranscript(),
	})
	if !errors.Is(err, ErrUpstreamModel) {
		t.Fatalf("expected ErrUpstreamModel, got %v", err)
	}

	runs, listErr := svc.ListRuns(ctx, "iv-err")
	if listErr != nil {
		t.Fatalf("ListRuns() error = %v", listErr)
	}
	if len(runs) != 0 {
		t.Fatalf("nothing may be persisted after an upstream failure, got %d rows", len(runs))
	}
}

func TestGenerateFeedbackEmptyCompletion(t *testing.T) {
	repo := setupRepo(t)
	svc := NewService(repo, &stubCompleter{response: ""}, 0)
	ctx := context.Background()

	result, err := svc.GenerateFeedback(ctx, GenerateFeedbackInput{
		InterviewID: "iv-empty",
		Transcript:  sampleTranscript(),
	})
	if err != nil {
		t.Fatalf("GenerateFeedback() error = %v", err)
	}
	// An empty completion is "no feedback produced", not an error: the run
	// is still recorded with zero items and an all-empty summary.
	if len(result.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(result.Items))
	}
	runs, err := svc.ListRuns(ctx, "iv-empty")
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected 1 details row, got %d (err %v)", len(runs), err)
	}
}

// summaryFailRepo fails only the summary insert, after details and feedback
// rows have been written.
type summaryFailRepo struct {
	ports.InterviewRepository
}

func (r *summaryFailRepo) CreateSummary(context.Context, ports.SummaryCreate) error {
	return errors.New("summary insert rejected")
}

func TestSummaryFailureLeavesPartialWrites(t *testing.T) {
	inner := setupRepo(t)
	repo := &summaryFailRepo{InterviewRepository: inner}
	svc := NewService(repo, &stubCompleter{response: modelResponse}, 0)
	ctx := context.Background()

	_, err := svc.GenerateFeedback(ctx, GenerateFeedbackInput{
		InterviewID: "iv-partial",
		Transcript:  sampleTranscript(),
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	// Details and feedback rows survive; there is no compensating rollback.
	runs, listErr := inner.ListInterviewDetails(ctx, "iv-partial")
	if listErr != nil {
		t.Fatalf("ListInterviewDetails() error = %v", listErr)
	}
	if len(runs) != 1 {
		t.Fatalf("details row must remain after summary failure, got %d", len(runs))
	}

	rows, listErr := inner.ListFeedback(ctx, runs[0].DetailsID)
	if listErr != nil {
		t.Fatalf("ListFeedback() error = %v", listErr)
	}
	if len(rows) != 1 {
		t.Fatalf("feedback rows must remain after summary failure, got %d", len(rows))
	}

	_, found, sumErr := inner.GetSummary(ctx, runs[0].DetailsID)
	if sumErr != nil {
		t.Fatalf("GetSummary() error = %v", sumErr)
	}
	if found {
		t.Fatal("summary must not exist after its insert failed")
	}
}

type detailsFailRepo struct {
	ports.InterviewRepository
	feedbackCalls int
}

func (r *detailsFailRepo) CreateInterviewDetails(context.Context, string, string) (ports.InterviewDetails, error) {
	return ports.InterviewDetails{}, errors.New("details insert rejected")
}

func (r *detailsFailRepo) CreateFeedback(context.Context, ports.FeedbackCreate) error {
	r.feedbackCalls++
	return nil
}

func TestDetailsFailureAbortsChain(t *testing.T) {
	repo := &detailsFailRepo{InterviewRepository: setupRepo(t)}
	svc := NewService(repo, &stubCompleter{response: modelResponse}, 0)

	_, err := svc.GenerateFeedback(context.Background(), GenerateFeedbackInput{
		InterviewID: "iv-details-fail",
		Transcript:  sampleTranscript(),
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if repo.feedbackCalls != 0 {
		t.Fatalf("no feedback insert may be attempted after details failure, got %d", repo.feedbackCalls)
	}
}
