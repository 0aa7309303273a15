package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mankomania-server/internal/config"
	"mankomania-server/internal/game"
)

type mapStore struct {
	mu    sync.Mutex
	games map[string]*Game
}

func (s *mapStore) GetGame(id string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

func (s *mapStore) GetOrCreate(id string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.games[id]; ok {
		return g, false
	}
	g := NewGame(id)
	s.games[id] = g
	return g, true
}

func newManager(t *testing.T) (*Manager, *recorder) {
	t.Helper()
	rec := &recorder{}
	m := NewManager(&mapStore{games: map[string]*Game{}}, config.Default(), rec, zaptest.NewLogger(t).Sugar())
	m.SetFirstPlayerPicker(func(int) int { return 1 })
	return m, rec
}

func TestJoinGameRules(t *testing.T) {
	m, rec := newManager(t)

	assert.True(t, m.JoinGame("g", "Toni"))
	assert.False(t, m.JoinGame("g", "Toni"), "duplicate")
	assert.False(t, m.JoinGame("g", "  "), "empty name")
	assert.True(t, m.JoinGame("g", "Jorge"))
	assert.True(t, m.JoinGame("g", "Ana"))
	assert.True(t, m.JoinGame("g", "Lev"))
	assert.False(t, m.JoinGame("g", "Fifth"), "overflow")

	assert.Equal(t, []string{"Toni", "Jorge", "Ana", "Lev"}, m.Players("g"))
	assert.Equal(t, 4, len(rec.actions()))

	state, ok := m.LobbyState("g")
	require.True(t, ok)
	assert.True(t, state.CanStart)
	assert.False(t, state.Started)
}

func TestLobbyStateUnknown(t *testing.T) {
	m, _ := newManager(t)
	state, ok := m.LobbyState("missing")
	assert.False(t, ok)
	assert.Empty(t, state.Players)
	assert.Empty(t, m.Players("missing"))
}

func TestCreateLobby(t *testing.T) {
	m, _ := newManager(t)
	state, err := m.CreateLobby("Host")
	require.NoError(t, err)
	assert.Len(t, state.GameID, 6)
	assert.Equal(t, []string{"Host"}, state.Players)
	assert.False(t, state.CanStart)

	_, err = m.CreateLobby(" ")
	assert.ErrorIs(t, err, ErrInvalidPlayerName)
}

func TestStartSession(t *testing.T) {
	m, rec := newManager(t)
	for _, n := range []string{"A", "B", "C"} {
		require.True(t, m.JoinGame("g", n))
	}

	started, err := m.StartSession("g", 36)
	require.NoError(t, err)
	assert.Equal(t, Started{GameID: "g", StartPositions: []int{0, 12, 24}, FirstPlayerIndex: 1}, started)

	ctrl, ok := m.Controller("g")
	require.True(t, ok)
	assert.Equal(t, "B", ctrl.CurrentPlayer())

	state := ctrl.Snapshot()
	require.Len(t, state.Board, 36)
	for i, p := range state.Players {
		assert.Equal(t, game.StartingBalance, p.Balance)
		assert.Equal(t, started.StartPositions[i], p.Position)
		assert.Equal(t, i == 1, p.IsTurn)
	}
	assert.True(t, state.Board[10].HasBranch)
	assert.Equal(t, []int{15}, state.Board[10].BranchOptions)
	assert.Equal(t, game.CellLottery, state.Board[6].Type)
	assert.Equal(t, game.CellMinigame, state.Board[4].Type)
	assert.Equal(t, game.CellMinigame, state.Board[12].Type)
	assert.Equal(t, game.CellStart, state.Board[24].Type)

	actions := rec.actions()
	assert.Equal(t, []string{EventGameStarted, EventGameState}, actions[len(actions)-2:])

	_, err = m.StartSession("g", 36)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.False(t, m.JoinGame("g", "Late"))

	lobby, _ := m.LobbyState("g")
	assert.True(t, lobby.Started)
	assert.False(t, lobby.CanStart)
}

func TestStartSessionErrors(t *testing.T) {
	m, _ := newManager(t)

	_, err := m.StartSession("missing", 20)
	assert.ErrorIs(t, err, ErrGameNotFound)

	require.True(t, m.JoinGame("solo", "A"))
	_, err = m.StartSession("solo", config.Default().Board.MaxSize+1)
	assert.ErrorIs(t, err, ErrInvalidBoardSize)

	_, err = m.StartSession("solo", 20)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	_, err = m.StartSession("solo", -1)
	assert.ErrorIs(t, err, ErrInvalidBoardSize)

	_, ok := m.Controller("solo")
	assert.False(t, ok)
	_, ok = m.Controller("missing")
	assert.False(t, ok)
}

func TestStartSessionDefaultBoardSize(t *testing.T) {
	m, _ := newManager(t)
	require.True(t, m.JoinGame("g", "A"))
	require.True(t, m.JoinGame("g", "B"))

	started, err := m.StartSession("g", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 20}, started.StartPositions)

	ctrl, _ := m.Controller("g")
	assert.Len(t, ctrl.Snapshot().Board, config.Default().Board.DefaultSize)
}

func TestStartSessionConcurrentOnlyOnce(t *testing.T) {
	m, _ := newManager(t)
	require.True(t, m.JoinGame("g", "A"))
	require.True(t, m.JoinGame("g", "B"))

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.StartSession("g", 20); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestStartSessionOversizedBoardLeavesLobbyUsable(t *testing.T) {
	m, _ := newManager(t)
	require.True(t, m.JoinGame("g", "A"))
	require.True(t, m.JoinGame("g", "B"))

	_, err := m.StartSession("g", 1<<50)
	require.ErrorIs(t, err, ErrInvalidBoardSize)

	done := make(chan LobbyState, 1)
	go func() {
		state, _ := m.LobbyState("g")
		done <- state
	}()
	select {
	case state := <-done:
		assert.False(t, state.Started)
	case <-time.After(2 * time.Second):
		t.Fatal("lobby lock still held after rejected start")
	}

	_, err = m.StartSession("g", config.Default().Board.MaxSize)
	assert.NoError(t, err)
}

type hookBroadcaster func(gameID, action string, data interface{})

func (h hookBroadcaster) Broadcast(gameID, action string, data interface{}) { h(gameID, action, data) }

func TestStartSessionTurnSetBeforePublish(t *testing.T) {
	m, _ := newManager(t)
	require.True(t, m.JoinGame("g", "A"))
	require.True(t, m.JoinGame("g", "B"))

	var seen *GameState
	m.SetBroadcaster(hookBroadcaster(func(gameID, action string, _ interface{}) {
		if action != EventGameStarted {
			return
		}
		ctrl, ok := m.Controller(gameID)
		require.True(t, ok)
		state := ctrl.Snapshot()
		seen = &state
	}))

	_, err := m.StartSession("g", 20)
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "B", seen.CurrentPlayer)
	assert.False(t, seen.Players[0].IsTurn)
	assert.True(t, seen.Players[1].IsTurn)
}
