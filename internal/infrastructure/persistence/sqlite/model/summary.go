package model

type Summary struct {
	SummaryID                uint64 `gorm:"column:summary_id;primaryKey;autoIncrement"`
	DetailsID                uint64 `gorm:"column:fk_interview_details_id;not null;index"`
	RelevantResponses        string `gorm:"column:relevant_responses;type:text;not null"`
	ClarityAndStructure      string `gorm:"column:clarity_and_structure;type:text;not null"`
	ProfessionalLanguage     string `gorm:"column:professional_language;type:text;not null"`
	InitialIdeas             string `gorm:"column:initial_ideas;type:text;not null"`
	AdditionalNotableAspects string `gorm:"column:additional_notable_aspects;type:text;not null"`
	Score                    string `gorm:"column:score;type:text;not null"`
}

func (Summary) TableName() string {
	return "summaries"
}
