package models

import "time"

type Competition struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Code           string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	StartAt        time.Time `gorm:"not null" json:"start_at"`
	EndAt          time.Time `gorm:"not null" json:"end_at"`
	ReleasedScores bool      `gorm:"not null;default:false" json:"released_scores"`
	CreatedAt      time.Time `json:"created_at"`
}

// IdentifierField is a host-declared field participants must fill in to
// identify themselves (e.g. "Name", "School ID"). Pattern is an anchored
// regular expression the value must match.
type IdentifierField struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CompetitionID uint   `gorm:"not null;index" json:"competition_id"`
	Name          string `gorm:"size:100;not null" json:"name"`
	Pattern       string `gorm:"size:255;not null;default:''" json:"pattern"`
	OrderNum      int    `gorm:"not null;default:0" json:"order_num"`
}
