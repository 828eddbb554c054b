package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"prepmate/internal/errs"
	"prepmate/internal/infrastructure/persistence/sqlite/model"
	"prepmate/internal/ports"
)

type InterviewRepository struct {
	db *gorm.DB
}

var _ ports.InterviewRepository = (*InterviewRepository)(nil)

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

func (r *InterviewRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *InterviewRepository) CreateInterview(ctx context.Context, interview ports.Interview) (ports.Interview, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Interview{}, err
	}

	row := model.Interview{
		InterviewID: interview.ID,
		UserID:      interview.UserID,
		Type:        interview.Type,
		Questions:   interview.QuestionsJSON,
		CreatedAt:   interview.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Interview{}, errs.Wrap(err, "insert interview")
	}
	return mapInterview(row), nil
}

func (r *InterviewRepository) GetInterview(ctx context.Context, interviewID string) (ports.Interview, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Interview{}, err
	}

	var row model.Interview
	if err := db.Where("interview_id = ?", interviewID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Interview{}, ports.ErrInterviewNotFound
		}
		return ports.Interview{}, errs.Wrap(err, "query interview")
	}
	return mapInterview(row), nil
}

func (r *InterviewRepository) CreateInterviewDetails(ctx context.Context, interviewID string, createdAt string) (ports.InterviewDetails, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.InterviewDetails{}, err
	}

	row := model.InterviewDetails{
		InterviewID: interviewID,
		CreatedAt:   createdAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.InterviewDetails{}, errs.Wrap(err, "insert interview details")
	}
	return ports.InterviewDetails{
		DetailsID:   row.DetailsID,
		InterviewID: row.InterviewID,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (r *InterviewRepository) ListInterviewDetails(ctx context.Context, interviewID string) ([]ports.InterviewDetails, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.InterviewDetails
	if err := db.
		Where("fk_interview_id = ?", interviewID).
		Order("details_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query interview details")
	}

	items := make([]ports.InterviewDetails, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.InterviewDetails{
			DetailsID:   row.DetailsID,
			InterviewID: row.InterviewID,
			CreatedAt:   row.CreatedAt,
		})
	}
	return items, nil
}

func (r *InterviewRepository) CreateFeedback(ctx context.Context, input ports.FeedbackCreate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.Feedback{
		DetailsID:   input.DetailsID,
		Label:       input.Label,
		Question:    input.Question,
		Answer:      input.Answer,
		Feedback:    input.Feedback,
		Category:    input.Category,
		Suggestions: input.Suggestions,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert feedback")
	}
	return nil
}

func (r *InterviewRepository) ListFeedback(ctx context.Context, detailsID uint64) ([]ports.FeedbackRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Feedback
	if err := db.
		Where("fk_interview_details_id = ?", detailsID).
		Order("feedback_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query feedback")
	}

	items := make([]ports.FeedbackRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.FeedbackRow{
			FeedbackID:  row.FeedbackID,
			DetailsID:   row.DetailsID,
			Label:       row.Label,
			Question:    row.Question,
			Answer:      row.Answer,
			Feedback:    row.Feedback,
			Category:    row.Category,
			Suggestions: row.Suggestions,
		})
	}
	return items, nil
}

func (r *InterviewRepository) CreateSummary(ctx context.Context, input ports.SummaryCreate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.Summary{
		DetailsID:                input.DetailsID,
		RelevantResponses:        input.RelevantResponses,
		ClarityAndStructure:      input.ClarityAndStructure,
		ProfessionalLanguage:     input.ProfessionalLanguage,
		InitialIdeas:             input.InitialIdeas,
		AdditionalNotableAspects: input.AdditionalNotableAspects,
		Score:                    input.Score,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert summary")
	}
	return nil
}

func (r *InterviewRepository) GetSummary(ctx context.Context, detailsID uint64) (ports.SummaryRow, bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.SummaryRow{}, false, err
	}

	var row model.Summary
	if err := db.Where("fk_interview_details_id = ?", detailsID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SummaryRow{}, false, nil
		}
		return ports.SummaryRow{}, false, errs.Wrap(err, "query summary")
	}

	return ports.SummaryRow{
		SummaryID: row.SummaryID,
		SummaryCreate: ports.SummaryCreate{
			DetailsID:                row.DetailsID,
			RelevantResponses:        row.RelevantResponses,
			ClarityAndStructure:      row.ClarityAndStructure,
			ProfessionalLanguage:     row.ProfessionalLanguage,
			InitialIdeas:             row.InitialIdeas,
			AdditionalNotableAspects: row.AdditionalNotableAspects,
			Score:                    row.Score,
		},
	}, true, nil
}

func mapInterview(row model.Interview) ports.Interview {
	return ports.Interview{
		ID:            row.InterviewID,
		UserID:        row.UserID,
		Type:          row.Type,
		QuestionsJSON: row.Questions,
		CreatedAt:     row.CreatedAt,
	}
}
