package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "spring-olympiad", want: "spring-olympiad"},
		{in: "  Spring-Olympiad  ", want: "spring-olympiad"},
		{in: "SPRING OLYMPIAD", want: "springolympiad"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Fatalf("NormalizeCode(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestValidateCode(t *testing.T) {
	db := newTestDB(t)
	competition := createCompetition(t, db, "spring-olympiad", time.Now(), time.Now().Add(time.Hour), false)

	svc := NewCompetitionService(db)

	found, err := svc.ValidateCode("  Spring-Olympiad ")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if found.ID != competition.ID {
		t.Fatalf("expected competition %d, got %d", competition.ID, found.ID)
	}

	if _, err := svc.ValidateCode("no-such-code"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if _, err := svc.ValidateCode("   "); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode for blank input, got %v", err)
	}
}

func TestIdentifierFieldsOrdered(t *testing.T) {
	db := newTestDB(t)
	competition := createCompetition(t, db, "c1", time.Now(), time.Now().Add(time.Hour), false)

	db.Create(&models.IdentifierField{CompetitionID: competition.ID, Name: "School ID", OrderNum: 1})
	db.Create(&models.IdentifierField{CompetitionID: competition.ID, Name: "Name", OrderNum: 0})

	svc := NewCompetitionService(db)
	fields, err := svc.IdentifierFields(competition.ID)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 2 || fields[0].Name != "Name" || fields[1].Name != "School ID" {
		t.Fatalf("expected host-declared order, got %+v", fields)
	}
}

func TestExamContentWithholdsAnswers(t *testing.T) {
	db := newTestDB(t)
	competition := createCompetition(t, db, "c1", time.Now(), time.Now().Add(time.Hour), false)
	createFillQuestion(t, db, competition.ID, "42", 5)

	svc := NewCompetitionService(db)
	questions, err := svc.ExamContent(competition.ID)
	if err != nil {
		t.Fatalf("exam content: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	// The canonical answer is loaded for scoring but must never serialize.
	data, err := json.Marshal(questions[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "42") {
		t.Fatalf("serialized question leaked the canonical answer: %s", data)
	}
}
