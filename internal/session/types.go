package session

import (
	"errors"

	"mankomania-server/internal/game"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrNotEnoughPlayers  = errors.New("not enough players to start")
	ErrAlreadyStarted    = errors.New("game already started")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrInvalidPlayerName = errors.New("player name required")
)

type MoveResult struct {
	OldPosition      int      `json:"oldPosition"`
	NewPosition      int      `json:"newPosition"`
	FieldType        string   `json:"fieldType"`
	FieldDescription string   `json:"fieldDescription"`
	PlayersOnField   []string `json:"playersOnField"`
}

// PlayerMoved is the payload of the player_moved event.
type PlayerMoved struct {
	PlayerID string `json:"playerId"`
	MoveResult
}

type DiceMoveResult struct {
	PlayerID         string   `json:"playerId"`
	Die1             int      `json:"die1"`
	Die2             int      `json:"die2"`
	Sum              int      `json:"sum"`
	FieldIndex       int      `json:"fieldIndex"`
	FieldType        string   `json:"fieldType"`
	FieldDescription string   `json:"fieldDescription"`
	PlayersOnField   []string `json:"playersOnField"`
}

type PlayerState struct {
	Name     string      `json:"name"`
	Position int         `json:"position"`
	Balance  int         `json:"balance"`
	Money    map[int]int `json:"money"`
	IsTurn   bool        `json:"isTurn"`
}

// GameState is the full snapshot pushed to clients after a change.
type GameState struct {
	GameID        string        `json:"gameId"`
	Players       []PlayerState `json:"players"`
	Board         []game.Cell   `json:"board"`
	CurrentPlayer string        `json:"currentPlayer"`
	LotteryPool   int           `json:"lotteryPool"`
}

type LobbyState struct {
	GameID   string   `json:"gameId"`
	Players  []string `json:"players"`
	CanStart bool     `json:"canStart"`
	Started  bool     `json:"started"`
}

type Started struct {
	GameID           string `json:"gameId"`
	StartPositions   []int  `json:"startPositions"`
	FirstPlayerIndex int    `json:"firstPlayerIndex"`
}

type LotteryUpdate struct {
	Player        string `json:"player"`
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	PoolAmount    int    `json:"poolAmount"`
	PlayerBalance int    `json:"playerBalance"`
}

const (
	noActionType        = "NoAction"
	noActionDescription = "No description available"
)

func stateOf(p *game.Player) PlayerState {
	money := make(map[int]int, len(p.Money))
	for k, v := range p.Money {
		money[k] = v
	}
	return PlayerState{
		Name:     p.Name,
		Position: p.Position,
		Balance:  p.Balance,
		Money:    money,
		IsTurn:   p.IsTurn,
	}
}
