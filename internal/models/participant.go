package models

import "time"

type Participant struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CompetitionID   uint       `gorm:"not null;uniqueIndex:idx_comp_identity" json:"competition_id"`
	IdentifiersHash string     `gorm:"size:32;not null;uniqueIndex:idx_comp_identity" json:"-"`
	PasswordHash    string     `gorm:"size:32;not null" json:"-"`
	LeaveAttempts   int        `gorm:"not null;default:0" json:"leave_attempts"`
	LastAttempt     time.Time  `json:"last_attempt"`
	Submitted       bool       `gorm:"not null;default:false" json:"submitted"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	JoinedAt        time.Time  `json:"joined_at"`
}

// IdentifierValue keeps the raw field values that hashed into
// Participant.IdentifiersHash, for re-verification and host review.
type IdentifierValue struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ParticipantID uint   `gorm:"not null;index" json:"participant_id"`
	Name          string `gorm:"size:100;not null" json:"name"`
	Value         string `gorm:"size:255;not null" json:"value"`
}
