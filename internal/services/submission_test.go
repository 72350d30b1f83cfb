package services

import (
	"errors"
	"testing"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"
)

func TestSubmitExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	competition := createCompetition(t, db, "c1", time.Now().Add(-time.Hour), time.Now().Add(time.Hour), false)
	participant := createParticipant(t, db, competition.ID, map[string]string{"Name": "Ada"})
	question := createFillQuestion(t, db, competition.ID, "42", 5)

	svc := NewSubmissionService(db)
	answers := map[uint]string{question.ID: "42"}

	if err := svc.Submit(competition.ID, participant.ID, answers); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	err := svc.Submit(competition.ID, participant.ID, answers)
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}

	var count int64
	db.Model(&models.Answer{}).Where("participant_id = ?", participant.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 answer row, got %d", count)
	}

	var stored models.Participant
	if err := db.First(&stored, participant.ID).Error; err != nil {
		t.Fatalf("reload participant: %v", err)
	}
	if !stored.Submitted {
		t.Fatalf("expected submitted flag set")
	}
	if stored.SubmittedAt == nil {
		t.Fatalf("expected submitted_at recorded")
	}
}

func TestSubmitRejectsForeignQuestion(t *testing.T) {
	db := newTestDB(t)
	competition := createCompetition(t, db, "c1", time.Now().Add(-time.Hour), time.Now().Add(time.Hour), false)
	other := createCompetition(t, db, "c2", time.Now().Add(-time.Hour), time.Now().Add(time.Hour), false)
	participant := createParticipant(t, db, competition.ID, map[string]string{"Name": "Ada"})
	foreign := createFillQuestion(t, db, other.ID, "42", 5)

	svc := NewSubmissionService(db)
	err := svc.Submit(competition.ID, participant.ID, map[uint]string{foreign.ID: "42"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var stored models.Participant
	if err := db.First(&stored, participant.ID).Error; err != nil {
		t.Fatalf("reload participant: %v", err)
	}
	if stored.Submitted {
		t.Fatalf("rejected submit must not flip the flag")
	}

	var count int64
	db.Model(&models.Answer{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected submit must not insert rows, got %d", count)
	}
}

func TestSubmitEmptyAnswerSet(t *testing.T) {
	// A force-submit can arrive with nothing answered; the flag still
	// flips so the participant is terminal.
	db := newTestDB(t)
	competition := createCompetition(t, db, "c1", time.Now().Add(-time.Hour), time.Now().Add(time.Hour), false)
	participant := createParticipant(t, db, competition.ID, map[string]string{"Name": "Ada"})

	svc := NewSubmissionService(db)
	if err := svc.Submit(competition.ID, participant.ID, nil); err != nil {
		t.Fatalf("empty submit: %v", err)
	}

	var stored models.Participant
	if err := db.First(&stored, participant.ID).Error; err != nil {
		t.Fatalf("reload participant: %v", err)
	}
	if !stored.Submitted {
		t.Fatalf("expected submitted flag set")
	}
}

func TestSubmitUnknownParticipant(t *testing.T) {
	db := newTestDB(t)
	competition := createCompetition(t, db, "c1", time.Now().Add(-time.Hour), time.Now().Add(time.Hour), false)

	svc := NewSubmissionService(db)
	if err := svc.Submit(competition.ID, 9999, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitWrongCompetitionScope(t *testing.T) {
	db := newTestDB(t)
	competition := createCompetition(t, db, "c1", time.Now().Add(-time.Hour), time.Now().Add(time.Hour), false)
	other := createCompetition(t, db, "c2", time.Now().Add(-time.Hour), time.Now().Add(time.Hour), false)
	participant := createParticipant(t, db, competition.ID, map[string]string{"Name": "Ada"})

	svc := NewSubmissionService(db)
	if err := svc.Submit(other.ID, participant.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong competition, got %v", err)
	}
}
