package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mankomania-server/internal/api/ws"
	"mankomania-server/internal/config"
	"mankomania-server/internal/store"
)

// @Summary Lottery rules
// @Description Returns the fee and stake every new session starts with
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config/lottery [get]
func LotteryConfigHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"fee":   cfg.Lottery.Fee,
			"stake": cfg.Lottery.Stake,
		})
	}
}

// @Summary Health check
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /healthz [get]
func HealthHandler(mem *store.MemoryStore, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"games":   len(mem.IDs()),
			"clients": hub.ClientCount(),
		})
	}
}
