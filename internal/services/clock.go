package services

import (
	"errors"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"

	"gorm.io/gorm"
)

// CompetitionStatus is the authoritative view of a competition's window,
// computed from the stored timestamps against the server clock at the moment
// of the call. It is never cached across requests and never derived from
// anything a client sent.
type CompetitionStatus struct {
	Exists         bool      `json:"exists"`
	Started        bool      `json:"started"`
	Ended          bool      `json:"ended"`
	ScoresReleased bool      `json:"scores_released"`
	CompetitionID  uint      `json:"competition_id"`
	Name           string    `json:"name"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
}

type ClockService struct {
	db *gorm.DB

	// now is swappable so the window logic is testable at fixed instants.
	now func() time.Time
}

func NewClockService(db *gorm.DB) *ClockService {
	return &ClockService{db: db, now: time.Now}
}

// Resolve reads the competition fresh and compares its window against the
// current instant. A missing competition is reported through Exists, not an
// error; only store failures error.
func (s *ClockService) Resolve(competitionID uint) (CompetitionStatus, error) {
	var competition models.Competition
	err := s.db.First(&competition, competitionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CompetitionStatus{}, nil
	}
	if err != nil {
		return CompetitionStatus{}, err
	}

	now := s.now()
	return CompetitionStatus{
		Exists:         true,
		Started:        !now.Before(competition.StartAt),
		Ended:          !now.Before(competition.EndAt),
		ScoresReleased: competition.ReleasedScores,
		CompetitionID:  competition.ID,
		Name:           competition.Name,
		StartAt:        competition.StartAt,
		EndAt:          competition.EndAt,
	}, nil
}

// InGrace reports whether the current instant is within the trailing slack
// after the window closes. Submits triggered by the countdown hitting zero
// arrive a beat after end_at; they are accepted inside this margin.
func (s *ClockService) InGrace(status CompetitionStatus) bool {
	return s.now().Before(status.EndAt.Add(SubmitGrace))
}

// SubmitGrace bounds how late a timeout-triggered submit may land.
const SubmitGrace = 30 * time.Second
