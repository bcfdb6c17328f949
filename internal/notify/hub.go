// Package notify fans game events out to connected clients. The Hub
// keeps one websocket room per game; payloads go out as JSON envelopes
// of {event, payload}.
package notify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

// Envelope is the wire format for every pushed event.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

type client struct {
	gameID   string
	playerID string
	conn     *websocket.Conn
	send     chan []byte
	hub      *Hub
}

// Hub routes events to the sockets of a game room or a single player.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]struct{}
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*client]struct{}),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades an HTTP request into a room subscription. gameID and
// playerID come from the request (query parameters in the default
// server wiring); playerID may be empty for spectators.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID, playerID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			zap.String("game_id", gameID),
			zap.Error(err))
		return
	}
	c := &client{
		gameID:   gameID,
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		hub:      h,
	}

	h.mu.Lock()
	room, ok := h.rooms[gameID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[gameID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("client joined room",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID))

	go c.writePump()
	go c.readPump()
}

// Broadcast sends an event to every socket in the game's room.
func (h *Hub) Broadcast(gameID, event string, payload any) {
	msg, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		h.logger.Error("event not serializable",
			zap.String("event", event),
			zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[gameID] {
		c.enqueue(msg)
	}
}

// ToPlayer sends an event to every socket the player holds in the room.
func (h *Hub) ToPlayer(gameID, playerID, event string, payload any) {
	msg, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		h.logger.Error("event not serializable",
			zap.String("event", event),
			zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[gameID] {
		if c.playerID == playerID {
			c.enqueue(msg)
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.gameID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.gameID)
		}
	}
	h.mu.Unlock()
}

func (c *client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
		// Slow consumer: drop the connection rather than the whole room.
		c.hub.logger.Warn("dropping slow websocket client",
			zap.String("game_id", c.gameID),
			zap.String("player_id", c.playerID))
		c.hub.remove(c)
		close(c.send)
	}
}

// readPump discards inbound frames; commands arrive over HTTP. It exists
// to process control frames and detect closure.
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
