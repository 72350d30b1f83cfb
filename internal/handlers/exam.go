package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"
	"github.com/WildHonestFur/Quantix-Arena/internal/services"
	"github.com/WildHonestFur/Quantix-Arena/internal/ws"

	"github.com/gin-gonic/gin"
)

type ExamHandler struct {
	competitions *services.CompetitionService
	clock        *services.ClockService
	integrity    *services.IntegrityService
	submission   *services.SubmissionService
	hub          *ws.Hub
}

func NewExamHandler(competitions *services.CompetitionService, clock *services.ClockService, integrity *services.IntegrityService, submission *services.SubmissionService, hub *ws.Hub) *ExamHandler {
	return &ExamHandler{
		competitions: competitions,
		clock:        clock,
		integrity:    integrity,
		submission:   submission,
		hub:          hub,
	}
}

// sessionParticipant loads the participant the session middleware named,
// cross-checking that they belong to the competition the other cookie names.
func (h *ExamHandler) sessionParticipant(c *gin.Context) (*models.Participant, bool) {
	competitionID := c.GetUint("competition_id")
	participantID := c.GetUint("participant_id")

	participant, err := h.competitions.Participant(competitionID, participantID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return participant, true
}

type ExamContentResponse struct {
	Name      string            `json:"name"`
	EndAt     time.Time         `json:"end_at"`
	Questions []models.Question `json:"questions"`
}

// Content godoc
// @Summary      Exam content
// @Description  Questions with options for an active participant; canonical answers and points are withheld
// @Tags         exam
// @Produce      json
// @Success      200 {object} ExamContentResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/exam/content [get]
func (h *ExamHandler) Content(c *gin.Context) {
	participant, ok := h.sessionParticipant(c)
	if !ok {
		return
	}

	status, err := h.clock.Resolve(participant.CompetitionID)
	if err != nil {
		respondError(c, err)
		return
	}

	gate := services.ResolveGate(status, participant.Submitted)
	if !gate.CanEnterExam() {
		c.JSON(http.StatusForbidden, gin.H{"error": "exam not available", "state": gate})
		return
	}

	questions, err := h.competitions.ExamContent(participant.CompetitionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExamContentResponse{
		Name:      status.Name,
		EndAt:     status.EndAt,
		Questions: questions,
	})
}

type SubmitRequest struct {
	// Answers maps question id to the participant's final value.
	Answers map[uint]string `json:"answers"`
	// Trigger records what fired the submission: manual, timeout or
	// integrity. Informational; every trigger follows the same path.
	Trigger string `json:"trigger"`
}

type SubmitResponse struct {
	Submitted        bool `json:"submitted"`
	AlreadySubmitted bool `json:"already_submitted"`
}

// Submit godoc
// @Summary      Submit the answer set
// @Description  At most once per participant; a redundant call reports already_submitted and is success-equivalent
// @Tags         exam
// @Accept       json
// @Produce      json
// @Param        request body SubmitRequest true "Final answers"
// @Success      200 {object} SubmitResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/exam/submit [post]
func (h *ExamHandler) Submit(c *gin.Context) {
	participant, ok := h.sessionParticipant(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	status, err := h.clock.Resolve(participant.CompetitionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !status.Started {
		respondError(c, services.ErrNotStarted)
		return
	}
	if status.Ended && !h.clock.InGrace(status) {
		respondError(c, services.ErrCompetitionEnded)
		return
	}

	err = h.submission.Submit(participant.CompetitionID, participant.ID, req.Answers)
	if errors.Is(err, services.ErrAlreadySubmitted) {
		c.JSON(http.StatusOK, SubmitResponse{Submitted: true, AlreadySubmitted: true})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	eventType := ws.EventSubmitted
	if req.Trigger == "integrity" {
		eventType = ws.EventForceSubmit
	}
	h.hub.Broadcast(participant.CompetitionID, ws.Event{
		Type: eventType,
		Data: gin.H{"participant_id": participant.ID, "trigger": req.Trigger},
	})

	c.JSON(http.StatusOK, SubmitResponse{Submitted: true})
}

// Strike godoc
// @Summary      Charge a focus-loss strike
// @Description  Called when the exam view regains visibility; the server decides whether the absence counts
// @Tags         exam
// @Produce      json
// @Success      200 {object} services.StrikeResult
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/exam/strike [post]
func (h *ExamHandler) Strike(c *gin.Context) {
	participant, ok := h.sessionParticipant(c)
	if !ok {
		return
	}

	result, err := h.integrity.Strike(participant.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Charged {
		h.hub.Broadcast(participant.CompetitionID, ws.Event{
			Type: ws.EventStrike,
			Data: gin.H{"participant_id": participant.ID, "level": result.Level},
		})
	}

	c.JSON(http.StatusOK, result)
}

// Leave godoc
// @Summary      Record the exam view going hidden
// @Description  Anchors the strike cooldown at the moment of leaving; never charges by itself
// @Tags         exam
// @Produce      json
// @Success      200 {object} MessageResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/exam/leave [post]
func (h *ExamHandler) Leave(c *gin.Context) {
	participant, ok := h.sessionParticipant(c)
	if !ok {
		return
	}

	if err := h.integrity.Leave(participant.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "recorded"})
}
