package services

import "errors"

// Service errors are sentinels so handlers can map them to HTTP responses
// with errors.Is. Store failures are returned as-is and rendered generically.
var (
	ErrInvalidCode       = errors.New("invalid competition code")
	ErrNotFound          = errors.New("not found")
	ErrWrongCredential   = errors.New("wrong password")
	ErrAlreadySubmitted  = errors.New("already submitted")
	ErrScoresNotReleased = errors.New("scores not released")
	ErrCompetitionEnded  = errors.New("competition ended")
	ErrNotStarted        = errors.New("competition not started")
	ErrValidation        = errors.New("validation failed")
)
