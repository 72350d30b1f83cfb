package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is one proctor-feed message: a strike, a forced submit, or a
// completed submission for some participant.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	EventStrike      = "strike"
	EventForceSubmit = "forced_submit"
	EventSubmitted   = "submitted"
)

// Hub fans exam events out to host monitor connections, grouped per
// competition. Participants never connect here.
type Hub struct {
	mu           sync.RWMutex
	competitions map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		competitions: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(competitionID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.competitions[competitionID] == nil {
		h.competitions[competitionID] = make(map[*websocket.Conn]bool)
	}
	h.competitions[competitionID][conn] = true
	log.Printf("ws: monitor connected to competition %d (total: %d)", competitionID, len(h.competitions[competitionID]))
}

func (h *Hub) RemoveConnection(competitionID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.competitions[competitionID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.competitions, competitionID)
		}
		log.Printf("ws: monitor disconnected from competition %d", competitionID)
	}
}

func (h *Hub) Broadcast(competitionID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.competitions[competitionID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}
