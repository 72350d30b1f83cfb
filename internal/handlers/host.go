package handlers

import (
	"net/http"
	"strconv"

	"github.com/WildHonestFur/Quantix-Arena/internal/services"

	"github.com/gin-gonic/gin"
)

type HostHandler struct {
	review  *services.ReviewService
	scoring *services.ScoringService
}

func NewHostHandler(review *services.ReviewService, scoring *services.ScoringService) *HostHandler {
	return &HostHandler{review: review, scoring: scoring}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// Participants godoc
// @Summary      List a competition's participants
// @Description  Identifiers, submission state, strike count and reconstructed score per participant
// @Tags         host
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Competition ID"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/host/competitions/{id}/participants [get]
func (h *HostHandler) Participants(c *gin.Context) {
	competitionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	summaries, err := h.review.Participants(competitionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": summaries})
}

// ParticipantAnswers godoc
// @Summary      One participant's answer review
// @Description  Host review is not gated on score release
// @Tags         host
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Competition ID"
// @Param        pid path int true "Participant ID"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/host/competitions/{id}/participants/{pid}/answers [get]
func (h *HostHandler) ParticipantAnswers(c *gin.Context) {
	competitionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	participantID, ok := pathID(c, "pid")
	if !ok {
		return
	}

	reviews, err := h.scoring.HostReviewAnswers(competitionID, participantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": reviews})
}
