package ports

import (
	"context"
	"errors"
)

var ErrInterviewNotFound = errors.New("interview not found")

// Interview is the persisted interview record the feedback pipeline attaches
// results to. Questions carries the generated question list as a JSON array.
type Interview struct {
	ID            string
	UserID        string
	Type          string
	QuestionsJSON string
	CreatedAt     string
}

// InterviewDetails anchors one feedback-generation run to an interview.
type InterviewDetails struct {
	DetailsID   uint64
	InterviewID string
	CreatedAt   string
}

type FeedbackCreate struct {
	DetailsID   uint64
	Label       string
	Question    string
	Answer      string
	Feedback    string
	Category    string
	Suggestions string
}

type FeedbackRow struct {
	FeedbackID  uint64
	DetailsID   uint64
	Label       string
	Question    string
	Answer      string
	Feedback    string
	Category    string
	Suggestions string
}

type SummaryCreate struct {
	DetailsID                uint64
	RelevantResponses        string
	ClarityAndStructure      string
	ProfessionalLanguage     string
	InitialIdeas             string
	AdditionalNotableAspects string
	Score                    string
}

type SummaryRow struct {
	SummaryID uint64
	SummaryCreate
}

type InterviewReadRepository interface {
	GetInterview(ctx context.Context, interviewID string) (Interview, error)
	ListInterviewDetails(ctx context.Context, interviewID string) ([]InterviewDetails, error)
	ListFeedback(ctx context.Context, detailsID uint64) ([]FeedbackRow, error)
	GetSummary(ctx context.Context, detailsID uint64) (SummaryRow, bool, error)
}

// InterviewRepository persists interviews and feedback-run records.
//
// CreateInterviewDetails, CreateFeedback and CreateSummary are deliberately
// separate single-row inserts: the feedback pipeline sequences them itself
// and accepts partial writes (see usecase/feedback).
type InterviewRepository interface {
	InterviewReadRepository
	CreateInterview(ctx context.Context, interview Interview) (Interview, error)
	CreateInterviewDetails(ctx context.Context, interviewID string, createdAt string) (InterviewDetails, error)
	CreateFeedback(ctx context.Context, input FeedbackCreate) error
	CreateSummary(ctx context.Context, input SummaryCreate) error
}
