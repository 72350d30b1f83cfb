package services

import (
	"errors"
	"testing"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"
)

func newIntegrityFixture(t *testing.T) (*IntegrityService, models.Participant, func(time.Time)) {
	t.Helper()

	db := newTestDB(t)
	competition := createCompetition(t, db, "c1", time.Now().Add(-time.Hour), time.Now().Add(time.Hour), false)
	participant := createParticipant(t, db, competition.ID, map[string]string{"Name": "Ada"})

	svc := NewIntegrityService(db)
	setNow := func(now time.Time) {
		svc.now = func() time.Time { return now }
	}
	return svc, participant, setNow
}

func TestStrikeEscalation(t *testing.T) {
	svc, participant, setNow := newIntegrityFixture(t)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Qualifying charges spaced past the cooldown escalate 1, 2, 3 and
	// then stay at 3.
	wantLevels := []int{1, 2, 3, 3, 3}
	for i, want := range wantLevels {
		setNow(base.Add(time.Duration(i) * 10 * time.Second))
		result, err := svc.Strike(participant.ID)
		if err != nil {
			t.Fatalf("strike %d: %v", i+1, err)
		}
		if !result.Charged {
			t.Fatalf("strike %d: expected a charge", i+1)
		}
		if result.Level != want {
			t.Fatalf("strike %d: expected level %d, got %d", i+1, want, result.Level)
		}
	}
}

func TestStrikeCooldownAbsorbs(t *testing.T) {
	svc, participant, setNow := newIntegrityFixture(t)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	setNow(base)
	first, err := svc.Strike(participant.ID)
	if err != nil {
		t.Fatalf("first strike: %v", err)
	}
	if !first.Charged || first.Level != 1 {
		t.Fatalf("expected charged level 1, got %+v", first)
	}

	// Within the cooldown: same absence, no new charge.
	setNow(base.Add(3 * time.Second))
	second, err := svc.Strike(participant.ID)
	if err != nil {
		t.Fatalf("second strike: %v", err)
	}
	if second.Charged || second.Level != 0 {
		t.Fatalf("expected absorbed strike, got %+v", second)
	}

	// Past the cooldown again: a new charge, exactly one increment.
	setNow(base.Add(8 * time.Second))
	third, err := svc.Strike(participant.ID)
	if err != nil {
		t.Fatalf("third strike: %v", err)
	}
	if !third.Charged || third.Level != 2 {
		t.Fatalf("expected charged level 2, got %+v", third)
	}
}

func TestLeaveAnchorsCooldownAtDeparture(t *testing.T) {
	svc, participant, setNow := newIntegrityFixture(t)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	setNow(base)
	if _, err := svc.Strike(participant.ID); err != nil {
		t.Fatalf("initial strike: %v", err)
	}

	// Participant leaves 10s later; the cooldown now measures from the
	// departure, so a return 2s after leaving is absorbed.
	setNow(base.Add(10 * time.Second))
	if err := svc.Leave(participant.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}

	setNow(base.Add(12 * time.Second))
	result, err := svc.Strike(participant.ID)
	if err != nil {
		t.Fatalf("strike on return: %v", err)
	}
	if result.Charged {
		t.Fatalf("return within cooldown of departure must not charge, got %+v", result)
	}

	// A later return, past the cooldown of the departure, does charge.
	setNow(base.Add(16 * time.Second))
	result, err = svc.Strike(participant.ID)
	if err != nil {
		t.Fatalf("late strike: %v", err)
	}
	if !result.Charged || result.Level != 2 {
		t.Fatalf("expected charged level 2, got %+v", result)
	}
}

func TestStrikeIgnoresSubmitted(t *testing.T) {
	svc, participant, setNow := newIntegrityFixture(t)
	setNow(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	if err := svc.db.Model(&models.Participant{}).Where("id = ?", participant.ID).
		Update("submitted", true).Error; err != nil {
		t.Fatalf("mark submitted: %v", err)
	}

	result, err := svc.Strike(participant.ID)
	if err != nil {
		t.Fatalf("strike: %v", err)
	}
	if result.Charged {
		t.Fatalf("submitted participant must not be charged")
	}
}

func TestStrikeUnknownParticipant(t *testing.T) {
	svc, _, _ := newIntegrityFixture(t)

	if _, err := svc.Strike(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Leave(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from leave, got %v", err)
	}
}
