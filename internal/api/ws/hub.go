package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mankomania-server/internal/session"
)

const (
	EventClientCount = "client_count"
	EventError       = "error"

	writeWait = 5 * time.Second
)

// GameService resolves running sessions for inbound commands.
type GameService interface {
	Controller(gameID string) (*session.Controller, bool)
}

type client struct {
	id   string
	conn *websocket.Conn

	// gorilla connections allow one concurrent writer
	wmu sync.Mutex
}

func (cl *client) send(msg envelope) error {
	cl.wmu.Lock()
	defer cl.wmu.Unlock()
	_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteJSON(msg)
}

type envelope struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

type inbound struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// Hub keeps the connected clients of every game and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	games   GameService
	log     *zap.SugaredLogger
	clients atomic.Int64
}

func NewHub(games GameService, log *zap.SugaredLogger) *Hub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		games: games,
		log:   log,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClientCount is the number of open connections across all games.
func (h *Hub) ClientCount() int64 {
	return h.clients.Load()
}

func (h *Hub) HandleWS(c *gin.Context) {
	gameID := c.Query("game_id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "game", gameID, "err", err)
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn}
	h.join(gameID, cl)
	defer h.leave(gameID, cl)

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warnw("websocket read failed", "game", gameID, "client", cl.id, "err", err)
			}
			return
		}
		h.dispatch(gameID, cl, msg)
	}
}

func (h *Hub) join(gameID string, cl *client) {
	h.mu.Lock()
	if _, ok := h.rooms[gameID]; !ok {
		h.rooms[gameID] = make(map[*client]struct{})
	}
	h.rooms[gameID][cl] = struct{}{}
	n := len(h.rooms[gameID])
	h.mu.Unlock()

	h.clients.Add(1)
	h.log.Infow("client connected", "game", gameID, "client", cl.id, "clients", n)
	h.Broadcast(gameID, EventClientCount, gin.H{"count": n})
}

func (h *Hub) leave(gameID string, cl *client) {
	if !h.remove(gameID, cl) {
		return
	}
	h.mu.RLock()
	n := len(h.rooms[gameID])
	h.mu.RUnlock()

	h.log.Infow("client disconnected", "game", gameID, "client", cl.id, "clients", n)
	if n > 0 {
		h.Broadcast(gameID, EventClientCount, gin.H{"count": n})
	}
}

// remove drops cl from the game and closes it. It reports whether cl was
// still registered.
func (h *Hub) remove(gameID string, cl *client) bool {
	h.mu.Lock()
	clients, ok := h.rooms[gameID]
	if ok {
		_, ok = clients[cl]
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.rooms, gameID)
		}
	}
	h.mu.Unlock()

	if ok {
		h.clients.Add(-1)
		_ = cl.conn.Close()
	}
	return ok
}

// Broadcast sends an event to every client of the game. Clients that fail
// to receive it are dropped.
func (h *Hub) Broadcast(gameID string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.rooms[gameID]))
	for cl := range h.rooms[gameID] {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	msg := envelope{Action: action, Data: data}
	for _, cl := range targets {
		if err := cl.send(msg); err != nil {
			h.log.Warnw("broadcast failed", "game", gameID, "client", cl.id, "action", action, "err", err)
			h.remove(gameID, cl)
		}
	}
}

func (h *Hub) reply(gameID string, cl *client, action string, data interface{}) {
	if err := cl.send(envelope{Action: action, Data: data}); err != nil {
		h.log.Warnw("reply failed", "game", gameID, "client", cl.id, "action", action, "err", err)
	}
}

func (h *Hub) fail(gameID string, cl *client, msg string) {
	h.reply(gameID, cl, EventError, gin.H{"error": msg})
}

func (h *Hub) dispatch(gameID string, cl *client, msg inbound) {
	ctrl, ok := h.games.Controller(gameID)
	if !ok {
		h.fail(gameID, cl, "game not started")
		return
	}

	switch msg.Action {
	case "roll_dice":
		var req struct {
			PlayerID string `json:"player_id"`
		}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			h.fail(gameID, cl, "invalid roll_dice payload")
			return
		}
		if _, err := ctrl.RollDice(req.PlayerID); err != nil {
			h.log.Infow("roll ignored", "game", gameID, "player", req.PlayerID, "err", err)
			h.fail(gameID, cl, err.Error())
		}
	case "move":
		var req struct {
			PlayerID string `json:"player_id"`
			Steps    int    `json:"steps"`
		}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			h.fail(gameID, cl, "invalid move payload")
			return
		}
		if _, err := ctrl.MovePlayer(req.PlayerID, req.Steps); err != nil {
			h.log.Infow("move ignored", "game", gameID, "player", req.PlayerID, "err", err)
			h.fail(gameID, cl, err.Error())
		}
	case "state":
		h.reply(gameID, cl, session.EventGameState, ctrl.Snapshot())
	default:
		h.log.Infow("unknown action", "game", gameID, "client", cl.id, "action", msg.Action)
		h.fail(gameID, cl, "unknown action: "+msg.Action)
	}
}
