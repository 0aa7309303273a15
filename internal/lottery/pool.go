package lottery

import "time"

// Pool is the shared lottery accumulator of one session.
type Pool struct {
	amount       int
	transactions []Transaction
}

type Transaction struct {
	Player string    `json:"player"`
	Amount int       `json:"amount"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

func (p *Pool) add(player string, amount int, reason string) {
	p.amount += amount
	p.transactions = append(p.transactions, Transaction{Player: player, Amount: amount, Reason: reason, At: time.Now()})
}

// take empties the pool and returns what it held.
func (p *Pool) take(player string) int {
	amount := p.amount
	p.amount = 0
	if amount > 0 {
		p.transactions = append(p.transactions, Transaction{Player: player, Amount: -amount, Reason: "payout", At: time.Now()})
	}
	return amount
}

func (p *Pool) Amount() int   { return p.amount }
func (p *Pool) IsEmpty() bool { return p.amount == 0 }
