package model

type InterviewDetails struct {
	DetailsID   uint64 `gorm:"column:details_id;primaryKey;autoIncrement"`
	InterviewID string `gorm:"column:fk_interview_id;type:text;not null;index"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
}

func (InterviewDetails) TableName() string {
	return "interview_details"
}
