package services

import (
	"testing"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Host{},
		&models.Competition{},
		&models.IdentifierField{},
		&models.Participant{},
		&models.IdentifierValue{},
		&models.Question{},
		&models.Option{},
		&models.Answer{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createCompetition(t *testing.T, db *gorm.DB, code string, start, end time.Time, released bool) models.Competition {
	t.Helper()

	competition := models.Competition{
		Name:           "Test Competition",
		Code:           code,
		StartAt:        start,
		EndAt:          end,
		ReleasedScores: released,
	}
	if err := db.Create(&competition).Error; err != nil {
		t.Fatalf("create competition: %v", err)
	}
	return competition
}

func createParticipant(t *testing.T, db *gorm.DB, competitionID uint, fields map[string]string) models.Participant {
	t.Helper()

	participant := models.Participant{
		CompetitionID:   competitionID,
		IdentifiersHash: Fingerprint(fields),
		PasswordHash:    CredentialHash("hunter2"),
		JoinedAt:        time.Now(),
	}
	if err := db.Create(&participant).Error; err != nil {
		t.Fatalf("create participant: %v", err)
	}
	return participant
}

func createFillQuestion(t *testing.T, db *gorm.DB, competitionID uint, answer string, points int) models.Question {
	t.Helper()

	question := models.Question{
		CompetitionID: competitionID,
		Type:          models.QuestionTypeFill,
		Text:          "What is the answer?",
		Answer:        answer,
		Points:        points,
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return question
}
