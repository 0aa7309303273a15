package session

import (
	"fmt"

	"mankomania-server/internal/game"
	"mankomania-server/internal/lottery"
)

func (c *Controller) GoToField(playerID string) (LotteryUpdate, error) {
	return c.pay(playerID, func(p *game.Player) (bool, string) {
		return c.lottery.ProcessGoToField(p), ""
	})
}

func (c *Controller) PassLottery(playerID string) (LotteryUpdate, error) {
	return c.pay(playerID, func(p *game.Player) (bool, string) {
		return c.lottery.ProcessPassingLottery(p), ""
	})
}

func (c *Controller) LandOnLottery(playerID string) (LotteryUpdate, error) {
	return c.pay(playerID, func(p *game.Player) (bool, string) {
		res := c.lottery.ProcessLanding(p)
		return res.Success, res.Message
	})
}

func (c *Controller) PayWithNotification(playerID string, amount int, reason string) (LotteryUpdate, error) {
	return c.pay(playerID, func(p *game.Player) (bool, string) {
		return c.lottery.ProcessPaymentWithNotification(p, amount, reason)
	})
}

// LotteryFee is the amount charged by GoToField and PassLottery.
func (c *Controller) LotteryFee() int { return c.lottery.Rules().Fee }

func (c *Controller) LotteryPool() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lottery.PoolAmount()
}

func (c *Controller) LotteryWinners() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lottery.Winners()
}

func (c *Controller) LotteryTransactions() []lottery.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lottery.Transactions()
}

func (c *Controller) pay(playerID string, op func(p *game.Player) (bool, string)) (LotteryUpdate, error) {
	c.mu.Lock()
	p := c.find(playerID)
	if p == nil {
		c.mu.Unlock()
		return LotteryUpdate{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	ok, msg := op(p)
	update := LotteryUpdate{
		Player:        p.Name,
		Success:       ok,
		Message:       msg,
		PoolAmount:    c.lottery.PoolAmount(),
		PlayerBalance: p.Balance,
	}
	status := stateOf(p)
	c.mu.Unlock()

	c.log.Infow("lottery operation", "player", playerID, "success", ok, "message", msg, "pool", update.PoolAmount)
	c.emit(event{EventLottery, update}, event{EventPlayerStatus, status})
	return update, nil
}
