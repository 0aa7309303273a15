package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mankomania-server/internal/horserace"
	"mankomania-server/internal/session"
)

// @Summary Create new lobby
// @Description Open a lobby with the host as its first player
// @Tags Lobby
// @Accept json
// @Produce json
// @Param request body http.CreateLobbyRequest true "Host info"
// @Success 200 {object} session.LobbyState
// @Router /lobby [post]
func CreateLobbyHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLobbyRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
			return
		}
		state, err := rm.CreateLobby(req.PlayerName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// @Summary Get lobby
// @Tags Lobby
// @Produce json
// @Param gameId path string true "Game ID"
// @Success 200 {object} session.LobbyState
// @Router /lobby/{gameId} [get]
func GetLobbyHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := rm.LobbyState(c.Param("gameId"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// @Summary Join lobby
// @Description Join a lobby, creating it on first join
// @Tags Lobby
// @Accept json
// @Produce json
// @Param gameId path string true "Game ID"
// @Param request body http.JoinLobbyRequest true "Player info"
// @Success 200 {object} session.LobbyState
// @Router /lobby/{gameId}/join [post]
func JoinLobbyHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("gameId")
		var req JoinLobbyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if !rm.JoinGame(gameID, req.PlayerName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not join game"})
			return
		}
		state, _ := rm.LobbyState(gameID)
		c.JSON(http.StatusOK, state)
	}
}

// @Summary Start session
// @Tags Lobby
// @Accept json
// @Produce json
// @Param gameId path string true "Game ID"
// @Param request body http.StartSessionRequest false "Board size"
// @Success 200 {object} session.Started
// @Router /lobby/{gameId}/start [post]
func StartSessionHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		started, err := rm.StartSession(c.Param("gameId"), req.BoardSize)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, started)
	}
}

// @Summary Player makes a move
// @Description Move a player by a number of steps and advance the turn
// @Tags Game
// @Accept json
// @Produce json
// @Param gameId path string true "Game ID"
// @Param request body http.MoveRequest true "Move data"
// @Success 200 {object} session.MoveResult
// @Router /move/{gameId} [post]
func MoveHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := rm.Controller(c.Param("gameId"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not started"})
			return
		}
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		res, err := ctrl.MovePlayer(req.PlayerID, req.Steps)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary Game state
// @Tags Game
// @Produce json
// @Param gameId path string true "Game ID"
// @Success 200 {object} session.GameState
// @Router /game/{gameId}/state [get]
func GameStateHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := rm.Controller(c.Param("gameId"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not started"})
			return
		}
		c.JSON(http.StatusOK, ctrl.Snapshot())
	}
}

// @Summary Run a horse race
// @Description Pick a winning horse and settle the bets
// @Tags Minigame
// @Accept json
// @Produce json
// @Param request body http.HorseRaceRequest true "Bets"
// @Success 200 {object} http.HorseRaceResponse
// @Router /horse-race/start [post]
func HorseRaceHandler(svc *horserace.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req HorseRaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		for i, b := range req.Bets {
			color, err := horserace.ParseColor(string(b.HorseColor))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if b.PlayerID == "" || b.Amount < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "bets need a playerId and a non-negative amount"})
				return
			}
			req.Bets[i].HorseColor = color
		}
		winner, payouts := svc.StartRace(req.Bets)
		c.JSON(http.StatusOK, HorseRaceResponse{Winner: winner, Payouts: payouts})
	}
}

func statusFor(err error) int {
	if errors.Is(err, session.ErrGameNotFound) || errors.Is(err, session.ErrPlayerNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
