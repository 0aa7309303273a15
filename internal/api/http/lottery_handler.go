package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mankomania-server/internal/session"
)

func controllerOr404(rm *session.Manager, c *gin.Context) (*session.Controller, bool) {
	ctrl, ok := rm.Controller(c.Param("gameId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not started"})
	}
	return ctrl, ok
}

// @Summary Lottery pool amount
// @Tags Lottery
// @Produce json
// @Param gameId path string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Router /lottery/{gameId}/pool [get]
func LotteryPoolHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := controllerOr404(rm, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"amount": ctrl.LotteryPool()})
	}
}

// @Summary Lottery winners
// @Tags Lottery
// @Produce json
// @Param gameId path string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Router /lottery/{gameId}/winners [get]
func LotteryWinnersHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := controllerOr404(rm, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"winners": ctrl.LotteryWinners()})
	}
}

// @Summary Pay the lottery fee
// @Description reason=goToField for a minigame entry, reason=passing for passing the lottery field
// @Tags Lottery
// @Produce json
// @Param gameId path string true "Game ID"
// @Param playerId path string true "Player ID"
// @Param reason query string true "goToField or passing"
// @Success 200 {object} map[string]interface{}
// @Router /lottery/{gameId}/payment/{playerId} [post]
func LotteryPaymentHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := controllerOr404(rm, c)
		if !ok {
			return
		}
		pay := ctrl.GoToField
		switch c.Query("reason") {
		case "goToField":
		case "passing":
			pay = ctrl.PassLottery
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "reason must be goToField or passing"})
			return
		}
		up, err := pay(c.Param("playerId"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       up.Success,
			"poolAmount":    up.PoolAmount,
			"playerBalance": up.PlayerBalance,
		})
	}
}

// @Summary Land on the lottery field
// @Tags Lottery
// @Produce json
// @Param gameId path string true "Game ID"
// @Param playerId path string true "Player ID"
// @Success 200 {object} session.LotteryUpdate
// @Router /lottery/{gameId}/land/{playerId} [post]
func LotteryLandHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := controllerOr404(rm, c)
		if !ok {
			return
		}
		up, err := ctrl.LandOnLottery(c.Param("playerId"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       up.Success,
			"message":       up.Message,
			"poolAmount":    up.PoolAmount,
			"playerBalance": up.PlayerBalance,
		})
	}
}

// @Summary Pay into the lottery with a message
// @Tags Lottery
// @Produce json
// @Param gameId path string true "Game ID"
// @Param playerId path string true "Player ID"
// @Param amount query int false "Amount, defaults to the lottery fee"
// @Param reason query string false "Reason shown to the players"
// @Success 200 {object} map[string]interface{}
// @Router /lottery/{gameId}/pay-with-notification/{playerId} [post]
func LotteryPayWithNotificationHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := controllerOr404(rm, c)
		if !ok {
			return
		}
		amount, err := strconv.Atoi(c.DefaultQuery("amount", strconv.Itoa(ctrl.LotteryFee())))
		if err != nil || amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer"})
			return
		}
		up, err := ctrl.PayWithNotification(c.Param("playerId"), amount, c.DefaultQuery("reason", "payment"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       up.Success,
			"message":       up.Message,
			"newPoolAmount": up.PoolAmount,
		})
	}
}
