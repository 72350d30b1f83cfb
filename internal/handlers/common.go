package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/WildHonestFur/Quantix-Arena/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// respondError maps service sentinels to HTTP responses. Anything
// unrecognized is a store or transport failure and renders as a generic
// message so driver details never reach a client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrWrongCredential):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrScoresNotReleased),
		errors.Is(err, services.ErrNotStarted),
		errors.Is(err, services.ErrCompetitionEnded):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "server error"})
	}
}
