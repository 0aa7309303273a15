// Package horserace settles the horse-race betting minigame. It does not
// touch player balances; callers apply the payouts.
package horserace

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

type Color string

const (
	Red    Color = "RED"
	Blue   Color = "BLUE"
	Green  Color = "GREEN"
	Yellow Color = "YELLOW"
)

var Colors = []Color{Red, Blue, Green, Yellow}

// ParseColor accepts any letter case.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Colors {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown horse color %q", s)
}

type Bet struct {
	PlayerID   string `json:"playerId"`
	HorseColor Color  `json:"horseColor"`
	Amount     int    `json:"amount"`
}

type Service struct {
	pick func(n int) int
}

func NewService() *Service {
	return &Service{pick: rand.IntN}
}

// NewServiceWithPicker is used where the winning horse must be predictable.
func NewServiceWithPicker(pick func(n int) int) *Service {
	return &Service{pick: pick}
}

func (s *Service) RunRace() Color {
	return Colors[s.pick(len(Colors))]
}

// CalculateWinnings pays double the stake on the winning horse and nothing
// otherwise. A later bet by the same player replaces the earlier entry.
func CalculateWinnings(bets []Bet, winner Color) map[string]int {
	out := make(map[string]int, len(bets))
	for _, b := range bets {
		if b.HorseColor == winner {
			out[b.PlayerID] = b.Amount * 2
		} else {
			out[b.PlayerID] = 0
		}
	}
	return out
}

func (s *Service) StartRace(bets []Bet) (Color, map[string]int) {
	winner := s.RunRace()
	return winner, CalculateWinnings(bets, winner)
}
