// Package lottery implements the shared lottery pool of a game session.
//
// A player is active while their balance is positive and they have not been
// declared a winner. Dropping to zero, or failing to pay the stake when landing
// on an empty pool, declares them a winner; winners never take part in the
// lottery again. Service is not safe for concurrent use; the owning session
// serializes access.
package lottery

import (
	"fmt"
	"sort"

	"mankomania-server/internal/game"
)

const (
	DefaultFee   = 5000
	DefaultStake = 50000
)

type Rules struct {
	Fee   int
	Stake int
}

func DefaultRules() Rules {
	return Rules{Fee: DefaultFee, Stake: DefaultStake}
}

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Service struct {
	rules   Rules
	pool    Pool
	winners map[string]struct{}
}

func NewService(rules Rules) *Service {
	if rules.Fee <= 0 {
		rules.Fee = DefaultFee
	}
	if rules.Stake <= 0 {
		rules.Stake = DefaultStake
	}
	return &Service{rules: rules, winners: map[string]struct{}{}}
}

func (s *Service) Rules() Rules { return s.rules }

// ProcessGoToField charges the minigame entry fee.
func (s *Service) ProcessGoToField(p *game.Player) bool {
	return s.ProcessPayIn(p, s.rules.Fee, "minigame entry")
}

// ProcessPassingLottery charges the fee for passing the lottery field.
func (s *Service) ProcessPassingLottery(p *game.Player) bool {
	return s.ProcessPayIn(p, s.rules.Fee, "passed lottery field")
}

// ProcessPayIn moves amount from the player into the pool. It fails without
// side effects for winners and for players who cannot cover the amount.
func (s *Service) ProcessPayIn(p *game.Player, amount int, reason string) bool {
	if s.IsWinner(p) || amount <= 0 || p.Balance < amount {
		return false
	}
	p.Balance -= amount
	s.pool.add(p.Name, amount, reason)
	if p.Balance == 0 {
		s.declareWinner(p)
	}
	return true
}

// ProcessLanding pays out a non-empty pool, or collects the stake into an
// empty one. A player unable to pay the stake is declared a winner.
func (s *Service) ProcessLanding(p *game.Player) Result {
	if s.IsWinner(p) {
		return Result{Success: false, Message: "Player has already won"}
	}

	if !s.pool.IsEmpty() {
		amount := s.pool.take(p.Name)
		p.Balance += amount
		return Result{Success: true, Message: fmt.Sprintf("Won %d from lottery!", amount)}
	}

	if p.Balance >= s.rules.Stake {
		p.Balance -= s.rules.Stake
		s.pool.add(p.Name, s.rules.Stake, "lottery stake")
		if p.Balance == 0 {
			s.declareWinner(p)
		}
		return Result{Success: true, Message: fmt.Sprintf("Paid %d", s.rules.Stake)}
	}

	s.declareWinner(p)
	return Result{Success: false, Message: "Player has won the game"}
}

func (s *Service) ProcessPaymentWithNotification(p *game.Player, amount int, reason string) (bool, string) {
	if s.ProcessPayIn(p, amount, reason) {
		return true, fmt.Sprintf("%s – %d added to the lottery", reason, amount)
	}
	return false, fmt.Sprintf("%s won", p.Name)
}

func (s *Service) IsWinner(p *game.Player) bool {
	if _, ok := s.winners[p.Name]; ok {
		return true
	}
	return p.Balance <= 0
}

func (s *Service) declareWinner(p *game.Player) {
	s.winners[p.Name] = struct{}{}
	p.Balance = 0
}

func (s *Service) PoolAmount() int { return s.pool.Amount() }

// Winners returns the declared winners sorted by name.
func (s *Service) Winners() []string {
	out := make([]string, 0, len(s.winners))
	for name := range s.winners {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Service) Transactions() []Transaction {
	return append([]Transaction(nil), s.pool.transactions...)
}
