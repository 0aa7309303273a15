package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mankomania-server/internal/api/ws"
	"mankomania-server/internal/config"
	"mankomania-server/internal/horserace"
	"mankomania-server/internal/session"
	"mankomania-server/internal/store"
)

// RequestLogger logs one line per request.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func SetupRouter(rm *session.Manager, mem *store.MemoryStore, hub *ws.Hub, horse *horserace.Service, cfg config.Config, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	// WebSocket for FE live updates
	r.GET("/ws", hub.HandleWS)

	// --- LOBBY ENDPOINTS ---
	r.POST("/lobby", CreateLobbyHandler(rm))
	r.GET("/lobby/:gameId", GetLobbyHandler(rm))
	r.POST("/lobby/:gameId/join", JoinLobbyHandler(rm))
	r.POST("/lobby/:gameId/start", StartSessionHandler(rm))

	// --- GAME ENDPOINTS ---
	r.POST("/move/:gameId", MoveHandler(rm))
	r.GET("/game/:gameId/state", GameStateHandler(rm))

	// --- LOTTERY ENDPOINTS ---
	lot := r.Group("/lottery/:gameId")
	lot.GET("/pool", LotteryPoolHandler(rm))
	lot.GET("/winners", LotteryWinnersHandler(rm))
	lot.POST("/payment/:playerId", LotteryPaymentHandler(rm))
	lot.POST("/land/:playerId", LotteryLandHandler(rm))
	lot.POST("/pay-with-notification/:playerId", LotteryPayWithNotificationHandler(rm))

	// --- MINIGAMES ---
	r.POST("/horse-race/start", HorseRaceHandler(horse))

	// --- CONFIG ENDPOINTS ---
	r.GET("/config/lottery", LotteryConfigHandler(cfg))
	r.GET("/healthz", HealthHandler(mem, hub))

	return r
}
