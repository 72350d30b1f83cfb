package services

import (
	"testing"
	"time"
)

func TestClockResolve(t *testing.T) {
	db := newTestDB(t)

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	competition := createCompetition(t, db, "c1", start, end, false)

	clock := NewClockService(db)

	tests := []struct {
		name    string
		now     time.Time
		started bool
		ended   bool
	}{
		{name: "before window", now: start.Add(-time.Minute)},
		{name: "at start", now: start, started: true},
		{name: "mid window", now: start.Add(20 * time.Minute), started: true},
		{name: "at end", now: end, started: true, ended: true},
		{name: "after end", now: end.Add(time.Hour), started: true, ended: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = func() time.Time { return tt.now }

			status, err := clock.Resolve(competition.ID)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if !status.Exists {
				t.Fatalf("expected competition to exist")
			}
			if status.Started != tt.started {
				t.Fatalf("started: expected %v, got %v", tt.started, status.Started)
			}
			if status.Ended != tt.ended {
				t.Fatalf("ended: expected %v, got %v", tt.ended, status.Ended)
			}
		})
	}
}

func TestClockResolveMissing(t *testing.T) {
	db := newTestDB(t)
	clock := NewClockService(db)

	status, err := clock.Resolve(999)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if status.Exists {
		t.Fatalf("expected Exists=false for unknown competition")
	}
}

func TestClockInGrace(t *testing.T) {
	db := newTestDB(t)
	clock := NewClockService(db)

	end := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	status := CompetitionStatus{Exists: true, EndAt: end}

	clock.now = func() time.Time { return end.Add(10 * time.Second) }
	if !clock.InGrace(status) {
		t.Fatalf("expected 10s past end to be within grace")
	}

	clock.now = func() time.Time { return end.Add(SubmitGrace) }
	if clock.InGrace(status) {
		t.Fatalf("expected grace to close at end+%v", SubmitGrace)
	}
}
