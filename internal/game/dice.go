package game

import "math/rand/v2"

type DiceResult struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

func (r DiceResult) Sum() int { return r.Die1 + r.Die2 }

type Dice interface {
	Roll() DiceResult
}

// TwoDice rolls two six-sided dice from the process-wide generator.
type TwoDice struct{}

func (TwoDice) Roll() DiceResult {
	return DiceResult{Die1: rand.IntN(6) + 1, Die2: rand.IntN(6) + 1}
}

// FixedDice always returns the same roll.
type FixedDice DiceResult

func (d FixedDice) Roll() DiceResult { return DiceResult(d) }
