package services

import (
	"errors"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"

	"gorm.io/gorm"
)

// ReviewService is the host-facing read surface: who took part, what they
// submitted, and how they scored. JSON reads only, no release gate.
type ReviewService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewReviewService(db *gorm.DB, scoring *ScoringService) *ReviewService {
	return &ReviewService{db: db, scoring: scoring}
}

type ParticipantSummary struct {
	ID            uint              `json:"id"`
	Identifiers   map[string]string `json:"identifiers"`
	Submitted     bool              `json:"submitted"`
	SubmittedAt   *time.Time        `json:"submitted_at,omitempty"`
	LeaveAttempts int               `json:"leave_attempts"`
	Total         int               `json:"total"`
	Max           int               `json:"max"`
}

// Participants lists a competition's participants with their identifier
// values and reconstructed scores.
func (s *ReviewService) Participants(competitionID uint) ([]ParticipantSummary, error) {
	var competition models.Competition
	err := s.db.First(&competition, competitionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var participants []models.Participant
	err = s.db.Where("competition_id = ?", competitionID).
		Order("joined_at ASC, id ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ParticipantSummary, len(participants))
	for i, p := range participants {
		reviews, err := s.scoring.HostReviewAnswers(competitionID, p.ID)
		if err != nil {
			return nil, err
		}

		summary := ParticipantSummary{
			ID:            p.ID,
			Identifiers:   map[string]string{},
			Submitted:     p.Submitted,
			SubmittedAt:   p.SubmittedAt,
			LeaveAttempts: p.LeaveAttempts,
		}
		for _, r := range reviews {
			summary.Total += r.PointsAwarded
			summary.Max += r.PointsPossible
		}

		var values []models.IdentifierValue
		if err := s.db.Where("participant_id = ?", p.ID).Find(&values).Error; err != nil {
			return nil, err
		}
		for _, v := range values {
			summary.Identifiers[v.Name] = v.Value
		}
		summaries[i] = summary
	}
	return summaries, nil
}
