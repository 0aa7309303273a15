package http

import "mankomania-server/internal/horserace"

// CreateLobbyRequest represents the payload for POST /lobby.
type CreateLobbyRequest struct {
	PlayerName string `json:"playerName"`
}

// JoinLobbyRequest represents the payload for joining an existing lobby.
type JoinLobbyRequest struct {
	PlayerName string `json:"playerName"`
}

// StartSessionRequest starts a lobby. A zero board size uses the server default.
type StartSessionRequest struct {
	BoardSize int `json:"boardSize"`
}

// MoveRequest represents a player move.
type MoveRequest struct {
	PlayerID string `json:"playerId"`
	Steps    int    `json:"steps"`
}

type HorseRaceRequest struct {
	Bets []horserace.Bet `json:"bets"`
}

type HorseRaceResponse struct {
	Winner  horserace.Color `json:"winner"`
	Payouts map[string]int  `json:"payouts"`
}
