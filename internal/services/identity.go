package services

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"

	"gorm.io/gorm"
)

// IdentityService resolves participant identity without accounts: a digest of
// the host-declared identifier fields is the dedup key, and a separate digest
// of the chosen password is an existence check on re-entry.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// Fingerprint digests a field set deterministically: names sorted
// lexicographically, rendered as name:value joined by commas. Insertion
// order never changes the result.
//
// md5 without salt is kept for compatibility with hashes already stored by
// the system this replaces; it is a dedup key, not a security boundary.
func Fingerprint(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + ":" + fields[name]
	}

	sum := md5.Sum([]byte(strings.Join(pairs, ",")))
	return hex.EncodeToString(sum[:])
}

// CredentialHash digests the participant password. Same compatibility
// caveat as Fingerprint: unsalted, a weak existence check only.
func CredentialHash(secret string) string {
	sum := md5.Sum([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether a participant with this field set already exists in
// the competition. It never creates state.
func (s *IdentityService) Verify(competitionID uint, fields map[string]string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Participant{}).
		Where("competition_id = ? AND identifiers_hash = ?", competitionID, Fingerprint(fields)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Register is the single write path for identity: create-or-authenticate.
// If a participant with the same fingerprint exists, the password hash must
// match (re-entry); otherwise the participant and its raw identifier values
// are created in one transaction. Calling it repeatedly with identical
// inputs always lands on the same participant row.
func (s *IdentityService) Register(competitionID uint, fields map[string]string, secret string) (*models.Participant, error) {
	fingerprint := Fingerprint(fields)
	credential := CredentialHash(secret)

	participant, err := s.register(competitionID, fingerprint, credential, fields)
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return participant, err
	}

	// Lost a race against an identical concurrent register: the unique
	// (competition_id, identifiers_hash) index fired. Authenticate against
	// the row the winner created.
	return s.authenticate(competitionID, fingerprint, credential)
}

func (s *IdentityService) register(competitionID uint, fingerprint, credential string, fields map[string]string) (*models.Participant, error) {
	var existing models.Participant
	err := s.db.Where("competition_id = ? AND identifiers_hash = ?", competitionID, fingerprint).
		First(&existing).Error
	if err == nil {
		if existing.PasswordHash != credential {
			return nil, ErrWrongCredential
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	participant := models.Participant{
		CompetitionID:   competitionID,
		IdentifiersHash: fingerprint,
		PasswordHash:    credential,
		JoinedAt:        time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}
		values := make([]models.IdentifierValue, 0, len(fields))
		for name, value := range fields {
			values = append(values, models.IdentifierValue{
				ParticipantID: participant.ID,
				Name:          name,
				Value:         value,
			})
		}
		if len(values) == 0 {
			return nil
		}
		return tx.Create(&values).Error
	})
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (s *IdentityService) authenticate(competitionID uint, fingerprint, credential string) (*models.Participant, error) {
	var existing models.Participant
	err := s.db.Where("competition_id = ? AND identifiers_hash = ?", competitionID, fingerprint).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if existing.PasswordHash != credential {
		return nil, ErrWrongCredential
	}
	return &existing, nil
}

// VerifyWithSecret re-verifies a participant by fields plus password, for
// fetching results from a fresh browser or device. Both hashes must match
// the stored row; a miss of either is reported as ErrNotFound so the
// response does not reveal which part was wrong.
func (s *IdentityService) VerifyWithSecret(competitionID uint, fields map[string]string, secret string) (*models.Participant, error) {
	var existing models.Participant
	err := s.db.Where(
		"competition_id = ? AND identifiers_hash = ? AND password_hash = ?",
		competitionID, Fingerprint(fields), CredentialHash(secret),
	).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
