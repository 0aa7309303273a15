package game

import (
	"fmt"

	"go.uber.org/zap"
)

// Host is the handle a cell action receives from the session running it.
type Host interface {
	GameID() string
	Logger() *zap.SugaredLogger
	Player(name string) (*Player, bool)
}

// CellAction is an effect that fires when a player lands on a cell. New cell
// effects implement this interface.
type CellAction interface {
	Kind() string
	Description() string
	Execute(p *Player, h Host) error
}

// LandOn runs the attached action and marks the cell occupied. Action
// failures, including panics, are logged and dropped; occupancy is set either way.
func (c *Cell) LandOn(p *Player, h Host) {
	if c.Action != nil {
		if err := runAction(c.Action, p, h); err != nil {
			h.Logger().Warnw("cell action failed",
				"game", h.GameID(),
				"cell", c.Index,
				"action", c.Action.Kind(),
				"player", p.Name,
				"error", err,
			)
		}
	}
	c.State = CellOccupied
}

func runAction(a CellAction, p *Player, h Host) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panicked: %v", r)
		}
	}()
	return a.Execute(p, h)
}

// MinigamePlaceholder marks cells whose minigame is not built yet.
type MinigamePlaceholder struct{}

func (MinigamePlaceholder) Kind() string { return "MinigamePlaceholder" }

func (MinigamePlaceholder) Description() string {
	return "Minigame in progress – coming soon!"
}

func (MinigamePlaceholder) Execute(p *Player, h Host) error {
	h.Logger().Infow("minigame placeholder triggered", "game", h.GameID(), "player", p.Name, "cell", p.Position)
	return nil
}
