package game

// Player is keyed by Name; there is no separate synthetic id.
type Player struct {
	Name        string       `json:"name"`
	Position    int          `json:"position"`
	Balance     int          `json:"balance"`
	Money       map[int]int  `json:"money"`
	IsTurn      bool         `json:"isTurn"`
	DiceHistory []DiceResult `json:"diceHistory"`
}

func NewPlayer(name string) *Player {
	return &Player{Name: name, Money: map[int]int{}}
}

func (p *Player) RecordDiceRoll(r DiceResult) {
	p.DiceHistory = append(p.DiceHistory, r)
}

// Notes returns the total value of the denominations the player holds.
func (p *Player) Notes() int {
	total := 0
	for value, count := range p.Money {
		total += value * count
	}
	return total
}
