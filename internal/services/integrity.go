package services

import (
	"errors"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"

	"gorm.io/gorm"
)

// StrikeCooldown is how long after the last recorded absence a re-entry
// still counts as the same absence. Rapid tab-switch flicker charges once.
const StrikeCooldown = 5 * time.Second

// StrikeForceLevel is the level at which the caller must force-submit.
const StrikeForceLevel = 3

type StrikeResult struct {
	Charged bool `json:"charged"`
	Level   int  `json:"level"`
}

// IntegrityService tracks exam-focus loss server-side. The client only
// reports visibility events; every cooldown and escalation decision happens
// here against the stored (leave_attempts, last_attempt) pair.
type IntegrityService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewIntegrityService(db *gorm.DB) *IntegrityService {
	return &IntegrityService{db: db, now: time.Now}
}

// Strike charges one focus-loss attempt unless the previous one is still
// inside the cooldown. The increment is a compare-and-swap on the stored
// counter: two racing strikes that read the same count can only land one
// charge, the loser is absorbed as cooldown.
//
// Levels escalate 1 (warning), 2 (final warning), 3 (force submission) and
// stay at 3 for every later charge.
func (s *IntegrityService) Strike(participantID uint) (StrikeResult, error) {
	var participant models.Participant
	err := s.db.First(&participant, participantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StrikeResult{}, ErrNotFound
	}
	if err != nil {
		return StrikeResult{}, err
	}

	if participant.Submitted {
		return StrikeResult{}, nil
	}

	now := s.now()
	if now.Sub(participant.LastAttempt) < StrikeCooldown {
		return StrikeResult{}, nil
	}

	res := s.db.Model(&models.Participant{}).
		Where("id = ? AND leave_attempts = ? AND submitted = ?",
			participantID, participant.LeaveAttempts, false).
		Updates(map[string]interface{}{
			"leave_attempts": participant.LeaveAttempts + 1,
			"last_attempt":   now,
		})
	if res.Error != nil {
		return StrikeResult{}, res.Error
	}
	if res.RowsAffected == 0 {
		// A concurrent strike won the swap; this one is the same absence.
		return StrikeResult{}, nil
	}

	level := participant.LeaveAttempts + 1
	if level > StrikeForceLevel {
		level = StrikeForceLevel
	}
	return StrikeResult{Charged: true, Level: level}, nil
}

// Leave records the moment the exam view went hidden, without charging.
// The next Strike on return then measures the cooldown from when the
// participant left, not from when they came back.
func (s *IntegrityService) Leave(participantID uint) error {
	res := s.db.Model(&models.Participant{}).
		Where("id = ?", participantID).
		Update("last_attempt", s.now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
