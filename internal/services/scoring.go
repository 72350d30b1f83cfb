package services

import (
	"errors"
	"strings"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"

	"gorm.io/gorm"
)

// ScoringService reconstructs a participant's score strictly from persisted
// rows: stored answers joined against the canonical question answers. It
// never consults anything a client kept in memory.
type ScoringService struct {
	db *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{db: db}
}

type ScoreResult struct {
	Total       int               `json:"total"`
	Max         int               `json:"max"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	Identifiers map[string]string `json:"identifiers"`
}

type AnswerReview struct {
	QuestionID      uint   `json:"question_id"`
	QuestionText    string `json:"question_text"`
	Type            string `json:"type"`
	SubmittedAnswer string `json:"submitted_answer"`
	CorrectAnswer   string `json:"correct_answer"`
	PointsAwarded   int    `json:"points_awarded"`
	PointsPossible  int    `json:"points_possible"`
}

// Score totals a participant's result. Fails with ErrScoresNotReleased
// until the host releases scores.
func (s *ScoringService) Score(competitionID, participantID uint) (*ScoreResult, error) {
	if err := s.requireRelease(competitionID); err != nil {
		return nil, err
	}
	return s.score(competitionID, participantID)
}

// ReviewAnswers returns the per-question breakdown, release-gated the same
// way as Score.
func (s *ScoringService) ReviewAnswers(competitionID, participantID uint) ([]AnswerReview, error) {
	if err := s.requireRelease(competitionID); err != nil {
		return nil, err
	}
	return s.review(competitionID, participantID)
}

// HostReviewAnswers is the host-side breakdown; hosts review submissions
// before scores are released, so there is no release gate here. Callers
// must have authenticated the host.
func (s *ScoringService) HostReviewAnswers(competitionID, participantID uint) ([]AnswerReview, error) {
	return s.review(competitionID, participantID)
}

func (s *ScoringService) requireRelease(competitionID uint) error {
	var competition models.Competition
	err := s.db.First(&competition, competitionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !competition.ReleasedScores {
		return ErrScoresNotReleased
	}
	return nil
}

func (s *ScoringService) score(competitionID, participantID uint) (*ScoreResult, error) {
	var participant models.Participant
	err := s.db.Where("id = ? AND competition_id = ?", participantID, competitionID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	reviews, err := s.review(competitionID, participantID)
	if err != nil {
		return nil, err
	}

	result := &ScoreResult{
		SubmittedAt: participant.SubmittedAt,
		Identifiers: map[string]string{},
	}
	for _, r := range reviews {
		result.Total += r.PointsAwarded
		result.Max += r.PointsPossible
	}

	var values []models.IdentifierValue
	if err := s.db.Where("participant_id = ?", participantID).Find(&values).Error; err != nil {
		return nil, err
	}
	for _, v := range values {
		result.Identifiers[v.Name] = v.Value
	}
	return result, nil
}

func (s *ScoringService) review(competitionID, participantID uint) ([]AnswerReview, error) {
	var questions []models.Question
	err := s.db.Where("competition_id = ?", competitionID).
		Order("order_num ASC, id ASC").
		Preload("Options").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	var answers []models.Answer
	if err := s.db.Where("participant_id = ?", participantID).Find(&answers).Error; err != nil {
		return nil, err
	}
	byQuestion := make(map[uint]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.SubmittedAnswer
	}

	reviews := make([]AnswerReview, len(questions))
	for i, q := range questions {
		submitted := byQuestion[q.ID]
		reviews[i] = AnswerReview{
			QuestionID:      q.ID,
			QuestionText:    q.Text,
			Type:            q.Type,
			SubmittedAnswer: submitted,
			CorrectAnswer:   q.Answer,
			PointsAwarded:   awardPoints(q, submitted),
			PointsPossible:  q.Points,
		}
	}
	return reviews, nil
}

// awardPoints compares a stored answer against the canonical one. fill is a
// trimmed case-insensitive equality; mcq additionally requires the
// submitted value to be one of the question's options.
func awardPoints(q models.Question, submitted string) int {
	if submitted == "" {
		return 0
	}

	matches := strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.Answer))

	if q.Type == models.QuestionTypeMCQ {
		member := false
		for _, opt := range q.Options {
			if opt.Text == submitted {
				member = true
				break
			}
		}
		if !member {
			return 0
		}
	}

	if matches {
		return q.Points
	}
	return 0
}
