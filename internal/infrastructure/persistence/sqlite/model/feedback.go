package model

type Feedback struct {
	FeedbackID  uint64 `gorm:"column:feedback_id;primaryKey;autoIncrement"`
	DetailsID   uint64 `gorm:"column:fk_interview_details_id;not null;index"`
	Label       string `gorm:"column:label;type:text;not null"`
	Question    string `gorm:"column:question;type:text;not null"`
	Answer      string `gorm:"column:answer;type:text;not null"`
	Feedback    string `gorm:"column:feedback;type:text;not null"`
	Category    string `gorm:"column:category;type:text;not null"`
	Suggestions string `gorm:"column:suggestion_for_improvement;type:text;not null"`
}

func (Feedback) TableName() string {
	return "feedback"
}
