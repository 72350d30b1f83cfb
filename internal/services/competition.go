package services

import (
	"errors"
	"strings"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"

	"gorm.io/gorm"
)

type CompetitionService struct {
	db *gorm.DB
}

func NewCompetitionService(db *gorm.DB) *CompetitionService {
	return &CompetitionService{db: db}
}

// NormalizeCode canonicalizes a join code: the token is case- and
// space-insensitive.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, " ", ""))
}

// ValidateCode looks up a competition by its join code.
func (s *CompetitionService) ValidateCode(code string) (*models.Competition, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrInvalidCode
	}

	var competition models.Competition
	err := s.db.Where("code = ?", normalized).First(&competition).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}
	return &competition, nil
}

// IdentifierFields returns the host-declared identity fields in order.
func (s *CompetitionService) IdentifierFields(competitionID uint) ([]models.IdentifierField, error) {
	var fields []models.IdentifierField
	err := s.db.Where("competition_id = ?", competitionID).
		Order("order_num ASC, id ASC").
		Find(&fields).Error
	if err != nil {
		return nil, err
	}
	return fields, nil
}

// ExamContent returns the competition's questions with options, ordered.
// Answers and points never serialize (withheld at the model), so the exam
// payload is safe to hand to an active participant.
func (s *CompetitionService) ExamContent(competitionID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("competition_id = ?", competitionID).
		Order("order_num ASC, id ASC").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC, id ASC")
		}).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Participant fetches one participant scoped to a competition.
func (s *CompetitionService) Participant(competitionID, participantID uint) (*models.Participant, error) {
	var participant models.Participant
	err := s.db.Where("id = ? AND competition_id = ?", participantID, competitionID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}
