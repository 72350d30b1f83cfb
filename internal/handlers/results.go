package handlers

import (
	"net/http"

	"github.com/WildHonestFur/Quantix-Arena/internal/services"
	"github.com/WildHonestFur/Quantix-Arena/internal/session"

	"github.com/gin-gonic/gin"
)

// ResultsHandler serves post-release score views. The participant proves
// who they are again (fields plus password) instead of relying on an exam
// session surviving, so results work from a new browser or device.
type ResultsHandler struct {
	identity     *services.IdentityService
	competitions *services.CompetitionService
	scoring      *services.ScoringService
	sessions     *session.Manager
}

func NewResultsHandler(identity *services.IdentityService, competitions *services.CompetitionService, scoring *services.ScoringService, sessions *session.Manager) *ResultsHandler {
	return &ResultsHandler{identity: identity, competitions: competitions, scoring: scoring, sessions: sessions}
}

type ResultsVerifyRequest struct {
	Identifiers map[string]string `json:"identifiers" binding:"required"`
	Password    string            `json:"password" binding:"required"`
}

// Verify godoc
// @Summary      Re-verify identity for results
// @Description  Fields plus password must match the stored participant; opens a fresh participant-scope session
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        request body ResultsVerifyRequest true "Identifier values and password"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/results/verify [post]
func (h *ResultsHandler) Verify(c *gin.Context) {
	competitionID := c.GetUint("competition_id")

	var req ResultsVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	declared, err := h.competitions.IdentifierFields(competitionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if msg := validateIdentifiers(declared, req.Identifiers); msg != "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}

	participant, err := h.identity.VerifyWithSecret(competitionID, req.Identifiers, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.sessions.Issue(session.ScopeParticipant, participant.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	session.SetCookie(c, session.CookieParticipant, token)

	c.JSON(http.StatusOK, MessageResponse{Message: "verified"})
}

// Score godoc
// @Summary      Total score
// @Description  Total and maximum points, available only after the host releases scores
// @Tags         results
// @Produce      json
// @Success      200 {object} services.ScoreResult
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/results/score [get]
func (h *ResultsHandler) Score(c *gin.Context) {
	competitionID := c.GetUint("competition_id")
	participantID := c.GetUint("participant_id")

	result, err := h.scoring.Score(competitionID, participantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Answers godoc
// @Summary      Per-question review
// @Description  Submitted answer, canonical answer and awarded points per question, release-gated like the score
// @Tags         results
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/results/answers [get]
func (h *ResultsHandler) Answers(c *gin.Context) {
	competitionID := c.GetUint("competition_id")
	participantID := c.GetUint("participant_id")

	reviews, err := h.scoring.ReviewAnswers(competitionID, participantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": reviews})
}
