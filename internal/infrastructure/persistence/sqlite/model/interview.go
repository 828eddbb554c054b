package model

type Interview struct {
	InterviewID string `gorm:"column:interview_id;primaryKey"`
	UserID      string `gorm:"column:fk_user_id;type:text;not null;index"`
	Type        string `gorm:"column:type;type:text;not null"`
	Questions   string `gorm:"column:questions;type:text;not null"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
}

func (Interview) TableName() string {
	return "interviews"
}
