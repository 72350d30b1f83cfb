package models

type Question struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	CompetitionID uint     `gorm:"not null;index" json:"competition_id"`
	Type          string   `gorm:"size:10;not null" json:"type"`
	Text          string   `gorm:"type:text;not null" json:"text"`
	Diagram       string   `gorm:"size:500;default:''" json:"diagram,omitempty"`
	Answer        string   `gorm:"size:500;not null" json:"-"`
	Points        int      `gorm:"not null;default:1" json:"-"`
	OrderNum      int      `gorm:"not null;default:0" json:"order_num"`
	Options       []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

const (
	QuestionTypeMCQ  = "mcq"
	QuestionTypeFill = "fill"
)

type Option struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:500;not null" json:"text"`
	OrderNum   int    `gorm:"not null;default:0" json:"order_num"`
}
