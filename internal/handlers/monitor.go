package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/WildHonestFur/Quantix-Arena/internal/services"
	"github.com/WildHonestFur/Quantix-Arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// MonitorHandler upgrades host connections onto the proctor feed for one
// competition: live strike, forced-submit and submission events.
type MonitorHandler struct {
	hub         *ws.Hub
	authService *services.AuthService
}

func NewMonitorHandler(hub *ws.Hub, authService *services.AuthService) *MonitorHandler {
	return &MonitorHandler{hub: hub, authService: authService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleMonitor godoc
// @Summary      Proctor event feed
// @Description  WebSocket stream of strike and submission events for a competition. Host token passed as ?token= since browsers cannot set headers on WebSocket upgrades.
// @Tags         websocket
// @Param        id path int true "Competition ID"
// @Param        token query string true "Host token"
// @Router       /ws/competitions/{id}/monitor [get]
func (h *MonitorHandler) HandleMonitor(c *gin.Context) {
	competitionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid competition id"})
		return
	}

	if _, err := h.authService.ValidateToken(c.Query("token")); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	cid := uint(competitionID)
	h.hub.AddConnection(cid, conn)
	defer h.hub.RemoveConnection(cid, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
