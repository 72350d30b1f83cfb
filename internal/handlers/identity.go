package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"
	"github.com/WildHonestFur/Quantix-Arena/internal/services"
	"github.com/WildHonestFur/Quantix-Arena/internal/session"

	"github.com/gin-gonic/gin"
)

type IdentityHandler struct {
	identity     *services.IdentityService
	competitions *services.CompetitionService
	sessions     *session.Manager
}

func NewIdentityHandler(identity *services.IdentityService, competitions *services.CompetitionService, sessions *session.Manager) *IdentityHandler {
	return &IdentityHandler{identity: identity, competitions: competitions, sessions: sessions}
}

type VerifyIdentityRequest struct {
	Identifiers map[string]string `json:"identifiers" binding:"required"`
}

type RegisterIdentityRequest struct {
	Identifiers map[string]string `json:"identifiers" binding:"required"`
	Password    string            `json:"password" binding:"required,min=1,max=100"`
}

// validateIdentifiers checks a submitted field set against the host-declared
// fields: every declared field present and matching its pattern, no extras.
// Runs before any identity write so malformed input never reaches the store.
func validateIdentifiers(declared []models.IdentifierField, submitted map[string]string) string {
	if len(submitted) != len(declared) {
		return "identifier fields do not match the competition's requirements"
	}
	for _, field := range declared {
		value, ok := submitted[field.Name]
		if !ok {
			return "missing field: " + field.Name
		}
		if value == "" {
			return "empty field: " + field.Name
		}
		if field.Pattern == "" {
			continue
		}
		re, err := regexp.Compile("^(?:" + field.Pattern + ")$")
		if err != nil {
			continue
		}
		if !re.MatchString(value) {
			return "invalid value for field: " + field.Name
		}
	}
	return ""
}

func (h *IdentityHandler) declaredFields(c *gin.Context) ([]models.IdentifierField, uint, bool) {
	competitionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid competition id"})
		return nil, 0, false
	}
	fields, err := h.competitions.IdentifierFields(uint(competitionID))
	if err != nil {
		respondError(c, err)
		return nil, 0, false
	}
	return fields, uint(competitionID), true
}

// Verify godoc
// @Summary      Check whether an identity already exists
// @Description  Looks a participant up by fingerprint; creates nothing
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        id path int true "Competition ID"
// @Param        request body VerifyIdentityRequest true "Identifier values"
// @Success      200 {object} map[string]bool
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/competitions/{id}/verify [post]
func (h *IdentityHandler) Verify(c *gin.Context) {
	var req VerifyIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	declared, competitionID, ok := h.declaredFields(c)
	if !ok {
		return
	}
	if msg := validateIdentifiers(declared, req.Identifiers); msg != "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}

	exists, err := h.identity.Verify(competitionID, req.Identifiers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// Register godoc
// @Summary      Register or re-enter
// @Description  Create-or-authenticate: a fresh identity is created, a known one must present the same password. Opens the participant-scope session.
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        id path int true "Competition ID"
// @Param        request body RegisterIdentityRequest true "Identifier values and password"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/competitions/{id}/register [post]
func (h *IdentityHandler) Register(c *gin.Context) {
	var req RegisterIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	declared, competitionID, ok := h.declaredFields(c)
	if !ok {
		return
	}
	if msg := validateIdentifiers(declared, req.Identifiers); msg != "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}

	participant, err := h.identity.Register(competitionID, req.Identifiers, req.Password)
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

	c.JSON(http.StatusOK, MessageResponse{Message: "registered"})
}
