package game

// StartingNotes is the bundle every player receives when a session starts.
var StartingNotes = map[int]int{
	5_000:   10,
	10_000:  5,
	50_000:  4,
	100_000: 7,
}

// StartingBalance is the value of StartingNotes.
const StartingBalance = 1_000_000

// AssignStartingMoney hands out the starting bundle. Players that already
// hold money are left alone and false is returned.
func AssignStartingMoney(p *Player) bool {
	if p.Balance > 0 {
		return false
	}
	p.Money = make(map[int]int, len(StartingNotes))
	for value, count := range StartingNotes {
		p.Money[value] = count
	}
	p.Balance = p.Notes()
	return true
}
