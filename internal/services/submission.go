package services

import (
	"errors"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"

	"gorm.io/gorm"
)

// SubmissionService accepts a participant's final answer set at most once.
// Three independent triggers call it (manual click, countdown expiry,
// integrity force-submit); the one-way submitted flag, flipped with a
// compare-and-swap inside the same transaction as the answer insert, is the
// sole concurrency guard. Redundant calls fail with ErrAlreadySubmitted,
// which callers treat as success-equivalent.
type SubmissionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db, now: time.Now}
}

// Submit persists the answer set and marks the participant submitted, all in
// one transaction: a crash cannot leave answers behind without the flag.
// Unknown question ids are rejected before anything is written.
func (s *SubmissionService) Submit(competitionID, participantID uint, answers map[uint]string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var participant models.Participant
		err := tx.Where("id = ? AND competition_id = ?", participantID, competitionID).
			First(&participant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if participant.Submitted {
			return ErrAlreadySubmitted
		}

		questionIDs := make([]uint, 0, len(answers))
		for id := range answers {
			questionIDs = append(questionIDs, id)
		}
		if len(questionIDs) > 0 {
			var known int64
			err = tx.Model(&models.Question{}).
				Where("competition_id = ? AND id IN ?", competitionID, questionIDs).
				Count(&known).Error
			if err != nil {
				return err
			}
			if known != int64(len(questionIDs)) {
				return ErrValidation
			}
		}

		// The swap on submitted = false serializes racing submits: the
		// loser sees zero rows and rolls back before inserting anything.
		res := tx.Model(&models.Participant{}).
			Where("id = ? AND submitted = ?", participantID, false).
			Updates(map[string]interface{}{
				"submitted":    true,
				"submitted_at": s.now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadySubmitted
		}

		if len(answers) == 0 {
			return nil
		}
		rows := make([]models.Answer, 0, len(answers))
		for questionID, submitted := range answers {
			rows = append(rows, models.Answer{
				ParticipantID:   participantID,
				QuestionID:      questionID,
				SubmittedAnswer: submitted,
			})
		}
		return tx.Create(&rows).Error
	})
}
