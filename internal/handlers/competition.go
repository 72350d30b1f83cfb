package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/services"
	"github.com/WildHonestFur/Quantix-Arena/internal/session"

	"github.com/gin-gonic/gin"
)

type CompetitionHandler struct {
	competitions *services.CompetitionService
	clock        *services.ClockService
	sessions     *session.Manager
}

func NewCompetitionHandler(competitions *services.CompetitionService, clock *services.ClockService, sessions *session.Manager) *CompetitionHandler {
	return &CompetitionHandler{competitions: competitions, clock: clock, sessions: sessions}
}

type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required" example:"spring-olympiad"`
}

type ValidateCodeResponse struct {
	Valid          bool `json:"valid"`
	CompetitionID  uint `json:"competition_id"`
	Ended          bool `json:"ended"`
	ScoresReleased bool `json:"scores_released"`
}

// ValidateCode godoc
// @Summary      Validate a join code
// @Description  Resolve a join code to a competition and open a competition-scope session
// @Tags         competitions
// @Accept       json
// @Produce      json
// @Param        request body ValidateCodeRequest true "Join code"
// @Success      200 {object} ValidateCodeResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/competitions/validate [post]
func (h *CompetitionHandler) ValidateCode(c *gin.Context) {
	var req ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	competition, err := h.competitions.ValidateCode(req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.sessions.Issue(session.ScopeCompetition, competition.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	session.SetCookie(c, session.CookieCompetition, token)

	status, err := h.clock.Resolve(competition.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ValidateCodeResponse{
		Valid:          true,
		CompetitionID:  competition.ID,
		Ended:          status.Ended,
		ScoresReleased: status.ScoresReleased,
	})
}

// Fields godoc
// @Summary      List identifier fields
// @Description  The host-declared fields a participant fills in to identify themselves
// @Tags         competitions
// @Produce      json
// @Param        id path int true "Competition ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/competitions/{id}/fields [get]
func (h *CompetitionHandler) Fields(c *gin.Context) {
	competitionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid competition id"})
		return
	}

	fields, err := h.competitions.IdentifierFields(uint(competitionID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

type WindowResponse struct {
	Name    string    `json:"name"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	State   string    `json:"state"`
}

// Window godoc
// @Summary      Competition window
// @Description  Authoritative start/end instants plus the current session state; clients re-poll this while waiting for the start
// @Tags         competitions
// @Produce      json
// @Param        id path int true "Competition ID"
// @Success      200 {object} WindowResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/competitions/{id}/window [get]
func (h *CompetitionHandler) Window(c *gin.Context) {
	competitionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid competition id"})
		return
	}

	status, err := h.clock.Resolve(uint(competitionID))
	if err != nil {
		respondError(c, err)
		return
	}
	if !status.Exists {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "competition not found"})
		return
	}

	c.JSON(http.StatusOK, WindowResponse{
		Name:    status.Name,
		StartAt: status.StartAt,
		EndAt:   status.EndAt,
		State:   string(services.ResolveGate(status, false)),
	})
}
