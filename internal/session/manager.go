package session

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"mankomania-server/internal/config"
	"mankomania-server/internal/game"
	"mankomania-server/internal/lottery"
)

// Game is a lobby that turns into a running session once started.
type Game struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	players    []*game.Player
	controller *Controller
}

func NewGame(id string) *Game {
	return &Game{ID: id, CreatedAt: time.Now()}
}

// Store keeps games by id. GetOrCreate must create at most one game per id.
type Store interface {
	GetGame(id string) (*Game, bool)
	GetOrCreate(id string) (g *Game, created bool)
}

type Manager struct {
	store     Store
	cfg       config.Config
	out       Broadcaster
	log       *zap.SugaredLogger
	pickFirst func(n int) int
}

func NewManager(s Store, cfg config.Config, out Broadcaster, log *zap.SugaredLogger) *Manager {
	if out == nil {
		out = nopBroadcaster{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Manager{store: s, cfg: cfg, out: out, log: log, pickFirst: rand.IntN}
}

// SetBroadcaster wires the hub in after construction; the hub itself needs
// the manager to resolve games.
func (m *Manager) SetBroadcaster(out Broadcaster) {
	m.out = out
}

// SetFirstPlayerPicker replaces the uniform random choice of the first player.
func (m *Manager) SetFirstPlayerPicker(pick func(n int) int) {
	m.pickFirst = pick
}

// CreateLobby opens a lobby under a fresh code with host as its first player.
func (m *Manager) CreateLobby(hostName string) (LobbyState, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return LobbyState{}, ErrInvalidPlayerName
	}
	var code string
	for {
		code = randCode(6)
		if _, created := m.store.GetOrCreate(code); created {
			break
		}
	}
	if !m.JoinGame(code, hostName) {
		return LobbyState{}, fmt.Errorf("join lobby %s", code)
	}
	state, _ := m.LobbyState(code)
	return state, nil
}

// JoinGame adds a player to the lobby, creating the lobby on first join. It
// rejects empty and duplicate names, full lobbies and started games.
func (m *Manager) JoinGame(gameID, playerName string) bool {
	playerName = strings.TrimSpace(playerName)
	if gameID == "" || playerName == "" {
		return false
	}
	g, _ := m.store.GetOrCreate(gameID)

	g.mu.Lock()
	if g.controller != nil || len(g.players) >= m.cfg.Lobby.MaxPlayers {
		g.mu.Unlock()
		m.log.Infow("join rejected", "game", gameID, "player", playerName)
		return false
	}
	for _, p := range g.players {
		if p.Name == playerName {
			g.mu.Unlock()
			m.log.Infow("duplicate player name", "game", gameID, "player", playerName)
			return false
		}
	}
	g.players = append(g.players, game.NewPlayer(playerName))
	state := m.lobbyState(g)
	g.mu.Unlock()

	m.log.Infow("player joined", "game", gameID, "player", playerName, "players", len(state.Players))
	m.out.Broadcast(gameID, EventLobbyUpdated, state)
	return true
}

func (m *Manager) Players(gameID string) []string {
	state, _ := m.LobbyState(gameID)
	return state.Players
}

func (m *Manager) LobbyState(gameID string) (LobbyState, bool) {
	g, ok := m.store.GetGame(gameID)
	if !ok {
		return LobbyState{GameID: gameID, Players: []string{}}, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return m.lobbyState(g), true
}

func (m *Manager) lobbyState(g *Game) LobbyState {
	names := make([]string, 0, len(g.players))
	for _, p := range g.players {
		names = append(names, p.Name)
	}
	n := len(names)
	return LobbyState{
		GameID:   g.ID,
		Players:  names,
		CanStart: g.controller == nil && n >= m.cfg.Lobby.MinPlayers && n <= m.cfg.Lobby.MaxPlayers,
		Started:  g.controller != nil,
	}
}

// StartSession turns a lobby into a running game. A zero board size falls
// back to the configured default.
func (m *Manager) StartSession(gameID string, boardSize int) (Started, error) {
	if boardSize == 0 {
		boardSize = m.cfg.Board.DefaultSize
	}
	if boardSize < 0 || boardSize > m.cfg.Board.MaxSize {
		return Started{}, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidBoardSize, boardSize, m.cfg.Board.MaxSize)
	}
	g, ok := m.store.GetGame(gameID)
	if !ok {
		return Started{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	ctrl, started, err := m.start(g, boardSize)
	if err != nil {
		return Started{}, err
	}
	m.log.Infow("session started", "game", gameID, "players", len(started.StartPositions), "boardSize", boardSize, "first", started.FirstPlayerIndex)
	m.out.Broadcast(gameID, EventGameStarted, started)
	ctrl.broadcastState()
	return started, nil
}

// start builds the controller under the lobby lock. The first turn is set
// before the controller becomes reachable through Controller.
func (m *Manager) start(g *Game, boardSize int) (*Controller, Started, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.controller != nil {
		return nil, Started{}, ErrAlreadyStarted
	}
	n := len(g.players)
	if n < m.cfg.Lobby.MinPlayers {
		return nil, Started{}, ErrNotEnoughPlayers
	}

	starts := make([]int, n)
	for i, p := range g.players {
		game.AssignStartingMoney(p)
		starts[i] = i * boardSize / n
		p.Position = starts[i]
	}
	first := m.pickFirst(n)

	lot := lottery.NewService(lottery.Rules{Fee: m.cfg.Lottery.Fee, Stake: m.cfg.Lottery.Stake})
	board := game.NewBoard(boardSize, m.layout(lot, starts))
	ctrl := NewController(g.ID, board, g.players, lot, m.out, m.log)
	ctrl.setFirst(first)
	g.controller = ctrl

	return ctrl, Started{GameID: g.ID, StartPositions: starts, FirstPlayerIndex: ctrl.current}, nil
}

func (m *Manager) layout(lot *lottery.Service, starts []int) game.Layout {
	b := m.cfg.Board
	landing := lottery.NewLandingAction(lot)
	return game.Layout{
		IsBranch:     func(i int) bool { return i%b.BranchInterval == 0 },
		BranchOffset: b.BranchOffset,
		Action: func(i int) (game.CellAction, game.CellType) {
			switch {
			case i%b.LotteryInterval == b.LotteryInterval/2:
				return landing, game.CellLottery
			case i%b.MinigameInterval == b.MinigameInterval/2:
				return game.MinigamePlaceholder{}, game.CellMinigame
			}
			return nil, ""
		},
		Starts: starts,
	}
}

func (m *Manager) Controller(gameID string) (*Controller, bool) {
	g, ok := m.store.GetGame(gameID)
	if !ok {
		return nil, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.controller, g.controller != nil
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}
