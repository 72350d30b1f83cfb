package models

type Answer struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ParticipantID   uint   `gorm:"not null;uniqueIndex:idx_answer_unique" json:"participant_id"`
	QuestionID      uint   `gorm:"not null;uniqueIndex:idx_answer_unique" json:"question_id"`
	SubmittedAnswer string `gorm:"size:500;not null" json:"submitted_answer"`
}
