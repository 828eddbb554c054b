package repository

import (
	"context"
	"errors"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"prepmate/internal/infrastructure/persistence/sqlite/model"
	"prepmate/internal/ports"
)

func setupRepository(t *testing.T) *InterviewRepository {
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
	return NewInterviewRepository(db)
}

func TestCreateAndGetInterview(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.CreateInterview(ctx, ports.Interview{
		ID:            "iv-repo-1",
		UserID:        "user-1",
		Type:          "personal",
		QuestionsJSON: `["Why Go?"]`,
		CreatedAt:     "2026-08-30T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("CreateInterview() error = %v", err)
	}

	got, err := repo.GetInterview(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetInterview() error = %v", err)
	}
	if got.UserID != "user-1" || got.QuestionsJSON != `["Why Go?"]` {
		t.Fatalf("unexpected interview: %+v", got)
	}
}

func TestGetInterviewNotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.GetInterview(context.Background(), "missing")
	if !errors.Is(err, ports.ErrInterviewNotFound) {
		t.Fatalf("expected ErrInterviewNotFound, got %v", err)
	}
}

func TestFeedbackRunChain(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	details, err := repo.CreateInterviewDetails(ctx, "iv-repo-2", "2026-08-30T11:00:00Z")
	if err != nil {
		t.Fatalf("CreateInterviewDetails() error = %v", err)
	}
	if details.DetailsID == 0 {
		t.Fatal("expected generated details id")
	}

	for _, q := range []string{"Q1?", "Q2?"} {
		if err := repo.CreateFeedback(ctx, ports.FeedbackCreate{
			DetailsID:   details.DetailsID,
			Label:       "GOOD",
			Question:    q,
			Answer:      "A",
			Feedback:    "fine",
			Category:    "Conciseness",
			Suggestions: "None",
		}); err != nil {
			t.Fatalf("CreateFeedback(%q) error = %v", q, err)
		}
	}

	if err := repo.CreateSummary(ctx, ports.SummaryCreate{
		DetailsID:         details.DetailsID,
		RelevantResponses: "aligned",
		Score:             "7/10",
	}); err != nil {
		t.Fatalf("CreateSummary() error = %v", err)
	}

	rows, err := repo.ListFeedback(ctx, details.DetailsID)
	if err != nil {
		t.Fatalf("ListFeedback() error = %v", err)
	}
	if len(rows) != 2 || rows[0].Question != "Q1?" || rows[1].Question != "Q2?" {
		t.Fatalf("feedback rows out of order: %+v", rows)
	}

	summary, found, err := repo.GetSummary(ctx, details.DetailsID)
	if err != nil || !found {
		t.Fatalf("GetSummary() = (%v, %v)", found, err)
	}
	if summary.Score != "7/10" {
		t.Fatalf("summary = %+v", summary)
	}

	runs, err := repo.ListInterviewDetails(ctx, "iv-repo-2")
	if err != nil {
		t.Fatalf("ListInterviewDetails() error = %v", err)
	}
	if len(runs) != 1 || runs[0].DetailsID != details.DetailsID {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestGetSummaryMissing(t *testing.T) {
	repo := setupRepository(t)

	_, found, err := repo.GetSummary(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if found {
		t.Fatal("expected found=false for missing summary")
	}
}
